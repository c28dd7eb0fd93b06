package main

import (
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"github.com/recera/mview/cmd/mview/internal/ui"
	"github.com/recera/mview/internal/config"
	"github.com/spf13/cobra"
)

type watchServer struct {
	cfg     *config.Config
	paths   []string
	watcher *fsnotify.Watcher

	wsClients map[*websocket.Conn]bool
	wsMutex   sync.RWMutex
	upgrader  websocket.Upgrader

	program *tea.Program // set in interactive mode

	timerMu sync.Mutex
	timers  map[string]*time.Timer
}

func newWatchCommand() *cobra.Command {
	var serve bool
	var interactive bool

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Recompile templates on change",
		Long: `Watches .mv templates and recompiles them as they change. With --serve a
websocket live-reload endpoint broadcasts after every successful
regeneration; with --interactive a dashboard shows file statuses and
current diagnostics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			return runWatch(cfg, args, serve, interactive)
		},
	}

	cmd.Flags().BoolVar(&serve, "serve", false, "Serve a websocket live-reload endpoint")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Show the interactive dashboard")
	return cmd
}

func runWatch(cfg *config.Config, paths []string, serve, interactive bool) error {
	files, err := discoverTemplates(cfg, paths)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	ws := &watchServer{
		cfg:       cfg,
		paths:     paths,
		watcher:   watcher,
		wsClients: make(map[*websocket.Conn]bool),
		upgrader:  websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		timers:    make(map[string]*time.Timer),
	}
	if err := ws.addWatchDirs(); err != nil {
		return err
	}

	if serve {
		go ws.serveLiveReload()
	}

	if interactive {
		model := ui.New(files)
		ws.program = tea.NewProgram(model, tea.WithAltScreen())
		go func() {
			for _, f := range files {
				ws.compile(f)
			}
			ws.eventLoop()
		}()
		_, err := ws.program.Run()
		return err
	}

	log.Printf("👀 Watching %d templates (debounce %s)", len(files), cfg.Watch.Debounce())
	for _, f := range files {
		ws.compile(f)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
	go ws.eventLoop()
	<-done
	log.Println("👋 Stopping watcher")
	return nil
}

// addWatchDirs registers every directory under the watched roots. fsnotify
// watches are not recursive.
func (ws *watchServer) addWatchDirs() error {
	roots := ws.paths
	if len(roots) == 0 {
		roots = []string{ws.cfg.SrcDir}
	}
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", root, err)
		}
		if !info.IsDir() {
			root = filepath.Dir(root)
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return err
			}
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return ws.watcher.Add(path)
		})
		if err != nil {
			return fmt.Errorf("watching %s: %w", root, err)
		}
	}
	return nil
}

// eventLoop consumes watcher events, debouncing rapid sequences per file.
func (ws *watchServer) eventLoop() {
	for {
		select {
		case event, ok := <-ws.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if event.Op&fsnotify.Create != 0 {
					ws.watcher.Add(event.Name)
				}
				continue
			}
			if !strings.HasSuffix(event.Name, ".mv") {
				continue
			}
			ws.debounce(event.Name)

		case err, ok := <-ws.watcher.Errors:
			if !ok {
				return
			}
			if ws.program == nil {
				log.Printf("⚠️  Watcher error: %v", err)
			}
		}
	}
}

// debounce schedules a compile after the configured quiet period, resetting
// the timer on every further event for the same file.
func (ws *watchServer) debounce(path string) {
	ws.timerMu.Lock()
	defer ws.timerMu.Unlock()
	if t, ok := ws.timers[path]; ok {
		t.Reset(ws.cfg.Watch.Debounce())
		return
	}
	ws.timers[path] = time.AfterFunc(ws.cfg.Watch.Debounce(), func() {
		ws.timerMu.Lock()
		delete(ws.timers, path)
		ws.timerMu.Unlock()
		ws.compile(path)
	})
}

// compile recompiles one template and reports the result to the dashboard or
// the log, broadcasting a reload on success.
func (ws *watchServer) compile(path string) {
	if ws.program != nil {
		ws.program.Send(ui.FileChangedMsg{Path: path})
	}
	start := time.Now()
	_, err := compileTemplate(ws.cfg, path)
	elapsed := time.Since(start)

	if ws.program != nil {
		ws.program.Send(ui.FileCompiledMsg{Path: path, Err: err, Duration: elapsed})
	} else if err != nil {
		fmt.Fprint(os.Stderr, ui.RenderError(path, err))
	} else {
		log.Printf("✅ %s (%s)", path, elapsed.Round(time.Millisecond))
	}

	if err == nil {
		ws.broadcastReload()
	}
}

// serveLiveReload runs the websocket endpoint clients connect to for reload
// notifications.
func (ws *watchServer) serveLiveReload() {
	mux := http.NewServeMux()
	mux.HandleFunc("/livereload", func(w http.ResponseWriter, r *http.Request) {
		conn, err := ws.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		ws.wsMutex.Lock()
		ws.wsClients[conn] = true
		ws.wsMutex.Unlock()

		// drain until the client goes away
		go func() {
			defer func() {
				ws.wsMutex.Lock()
				delete(ws.wsClients, conn)
				ws.wsMutex.Unlock()
				conn.Close()
			}()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	})

	addr := ws.cfg.Watch.Serve
	if ws.program == nil {
		log.Printf("🔌 Live reload on ws://%s/livereload", addr)
	}
	if err := http.ListenAndServe(addr, mux); err != nil && ws.program == nil {
		log.Printf("⚠️  Live reload server stopped: %v", err)
	}
}

// broadcastReload tells every connected client to refresh.
func (ws *watchServer) broadcastReload() {
	ws.wsMutex.RLock()
	defer ws.wsMutex.RUnlock()
	for conn := range ws.wsClients {
		conn.WriteMessage(websocket.TextMessage, []byte("reload"))
	}
	if ws.program != nil {
		ws.program.Send(ui.ReloadMsg{Clients: len(ws.wsClients)})
	}
}
