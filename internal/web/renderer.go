// Package web renders the board's HTML pages and serves its static assets.
// Templates are embedded; pointing the renderer at a directory instead loads
// them from disk and re-parses them whenever a file there settles.
package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/listenupapp/board-server/internal/watcher"
)

//go:embed assets/templates/*.html assets/static/*
var embedded embed.FS

// HomeTemplate is the name of the home page template.
const HomeTemplate = "home.html"

// Renderer executes page templates.
type Renderer struct {
	fsys   fs.FS
	dir    string
	logger *slog.Logger

	mu   sync.RWMutex
	tmpl *template.Template

	watcher *watcher.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewRenderer parses templates from dir, or from the embedded copies when dir is empty.
func NewRenderer(dir string, logger *slog.Logger) (*Renderer, error) {
	r := &Renderer{dir: dir, logger: logger}

	if dir == "" {
		sub, err := fs.Sub(embedded, "assets")
		if err != nil {
			return nil, fmt.Errorf("open embedded assets: %w", err)
		}
		r.fsys = sub
	} else {
		if _, err := os.Stat(filepath.Join(dir, "templates")); err != nil {
			return nil, fmt.Errorf("template dir: %w", err)
		}
		r.fsys = os.DirFS(dir)
	}

	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload re-parses every template. On failure the previous set stays live.
func (r *Renderer) Reload() error {
	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(r.fsys, "templates/*.html")
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	r.mu.Lock()
	r.tmpl = tmpl
	r.mu.Unlock()
	return nil
}

// Render executes the named template into a buffer so a failing template
// never leaves a half-written page behind.
func (r *Renderer) Render(name string, data any) ([]byte, error) {
	r.mu.RLock()
	tmpl := r.tmpl
	r.mu.RUnlock()

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Static serves the files under static/.
func (r *Renderer) Static() http.Handler {
	sub, err := fs.Sub(r.fsys, "static")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

// Watch reloads templates whenever a file under the template directory
// settles. It is a no-op for embedded templates.
func (r *Renderer) Watch(ctx context.Context) error {
	if r.dir == "" {
		return nil
	}

	w, err := watcher.New(r.logger, watcher.Options{})
	if err != nil {
		return err
	}
	if err := w.Watch(r.dir); err != nil {
		_ = w.Stop()
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	r.watcher = w
	r.cancel = cancel

	r.wg.Add(2)
	go func() {
		defer r.wg.Done()
		_ = w.Start(ctx)
	}()
	go func() {
		defer r.wg.Done()
		r.reloadLoop(ctx, w)
	}()

	r.logger.Info("Watching templates for changes", "dir", r.dir)
	return nil
}

func (r *Renderer) reloadLoop(ctx context.Context, w *watcher.Watcher) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-w.Events():
			if filepath.Ext(ev.Path) != ".html" {
				continue
			}
			if err := r.Reload(); err != nil {
				r.logger.Warn("Template reload failed, keeping previous templates",
					"path", ev.Path, "error", err)
				continue
			}
			r.logger.Info("Templates reloaded", "path", ev.Path, "event", ev.Type.String())
		case err := <-w.Errors():
			r.logger.Warn("Template watcher error", "error", err)
		}
	}
}

// Close stops watching.
func (r *Renderer) Close() error {
	if r.cancel == nil {
		return nil
	}
	r.cancel()
	err := r.watcher.Stop()
	r.wg.Wait()
	return err
}
