package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/recera/mview/internal/config"
	"github.com/spf13/cobra"
)

const sampleTemplate = `//mview:template
package templates

//mview:func Hello(name string)
div.greeting {
    h1 { "Hello" }
    p { {name} }
}
`

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create mview.yml and a sample template",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(dir)
		},
	}
	return cmd
}

func runInit(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}
	if err := config.DefaultConfig().Save(dir); err != nil {
		return err
	}
	log.Printf("📝 Created %s", cfgPath)

	samplePath := filepath.Join(dir, "hello.mv")
	if _, err := os.Stat(samplePath); os.IsNotExist(err) {
		if err := os.WriteFile(samplePath, []byte(sampleTemplate), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", samplePath, err)
		}
		log.Printf("📝 Created %s", samplePath)
	}

	log.Println("🎉 Run `mview gen` to compile templates")
	return nil
}
