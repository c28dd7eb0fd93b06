package main

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/recera/mview/cmd/mview/internal/ui"
	"github.com/recera/mview/internal/config"
	"github.com/recera/mview/internal/outfile"
	"github.com/recera/mview/pkg/mvgen"
	"github.com/spf13/cobra"
)

func newGenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen [paths...]",
		Short: "Compile .mv templates to Go source",
		Long: `Compiles every .mv file under the given paths (or the configured source
directory) into formatted Go source. Template problems are reported with
file positions and compilation continues across files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			return runGen(cfg, args)
		},
	}
	return cmd
}

func runGen(cfg *config.Config, paths []string) error {
	files, err := discoverTemplates(cfg, paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Println("🔍 No .mv templates found")
		return nil
	}

	failed := 0
	for _, path := range files {
		if _, err := compileTemplate(cfg, path); err != nil {
			failed++
			fmt.Fprint(os.Stderr, ui.RenderError(path, err))
		} else {
			log.Printf("✅ %s → %s", path, outputPath(cfg, path))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d templates failed", failed, len(files))
	}
	log.Printf("🎉 Compiled %d templates", len(files))
	return nil
}

// discoverTemplates resolves the .mv files named by paths: files are taken
// as-is, directories are walked recursively. With no paths the configured
// source directory is walked.
func discoverTemplates(cfg *config.Config, paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{cfg.SrcDir}
	}
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				// skip hidden and vendored trees
				name := d.Name()
				if path != p && (strings.HasPrefix(name, ".") || name == "vendor" || name == "node_modules") {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(path, ".mv") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", p, err)
		}
	}
	return files, nil
}

// compileTemplate compiles one .mv file and writes its .mv.go neighbor.
func compileTemplate(cfg *config.Config, path string) (*mvgen.FileResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	res := mvgen.CompileFile(path, string(data), cfg.BuilderImport)
	if err := res.Err(); err != nil {
		return res, err
	}
	out := outputPath(cfg, path)
	if err := outfile.Write(out, []byte(res.Code)); err != nil {
		return res, err
	}
	return res, nil
}

// outputPath maps name.mv to name.mv.go next to the template.
func outputPath(cfg *config.Config, path string) string {
	return strings.TrimSuffix(path, ".mv") + cfg.OutSuffix
}
