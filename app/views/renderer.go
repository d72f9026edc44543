package views

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/loragriffin/blog-app/app/errs"
	"github.com/loragriffin/blog-app/app/logger"
	"github.com/loragriffin/blog-app/app/metrics"
	"github.com/rs/zerolog"
)

// Renderer holds every *.html file of one directory as a named template set.
// A template is addressed by its file name; {{define}} blocks share the set.
type Renderer struct {
	dir string
	log zerolog.Logger

	mu    sync.RWMutex
	set   *template.Template
	pages map[string]bool
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("January 2, 2006")
	},
	"excerpt": func(s string, n int) string {
		r := []rune(s)
		if len(r) <= n {
			return s
		}
		return strings.TrimSpace(string(r[:n])) + "…"
	},
	"deref": func(p *int) int {
		if p == nil {
			return 0
		}
		return *p
	},
}

// NewRenderer parses the template directory once.
func NewRenderer(dir string) (*Renderer, error) {
	r := &Renderer{dir: dir, log: logger.For("views")}
	if err := r.Load(); err != nil {
		return nil, err
	}
	return r, nil
}

// Load reparses the directory and swaps the set in on success.
func (r *Renderer) Load() error {
	files, err := filepath.Glob(filepath.Join(r.dir, "*.html"))
	if err != nil {
		return fmt.Errorf("failed to list templates in %s: %w", r.dir, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no templates found in %s", r.dir)
	}

	set, err := template.New("").Funcs(funcs).ParseFiles(files...)
	if err != nil {
		return fmt.Errorf("failed to parse templates in %s: %w", r.dir, err)
	}
	pages := make(map[string]bool, len(files))
	for _, file := range files {
		pages[filepath.Base(file)] = true
	}

	r.mu.Lock()
	r.set = set
	r.pages = pages
	r.mu.Unlock()
	return nil
}

// has reports whether name is a page of the set.
func (r *Renderer) has(name string) bool {
	return r.lookup(name) != nil
}

// lookup only resolves file names; {{define}} blocks are not pages.
func (r *Renderer) lookup(name string) *template.Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.pages[name] {
		return nil
	}
	return r.set.Lookup(name)
}

// Render executes the named template with values. Nothing is written to w on failure.
func (r *Renderer) Render(w io.Writer, name string, values map[string]any) error {
	tmpl := r.lookup(name)
	if tmpl == nil {
		metrics.RendersTotal.WithLabelValues("unknown", "not_found").Inc()
		return errs.NewTemplateNotFound(name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, values); err != nil {
		metrics.RendersTotal.WithLabelValues(name, "error").Inc()
		return errs.NewInternalErrorWithCause("template "+name, err)
	}
	metrics.RendersTotal.WithLabelValues(name, "ok").Inc()

	_, err := buf.WriteTo(w)
	return err
}

// Watch reloads the set whenever an .html file in the directory changes, until ctx ends.
func (r *Renderer) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(r.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", r.dir, err)
	}
	r.log.Info().Str("dir", r.dir).Msg("watching templates for changes")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(event.Name) != ".html" {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := r.Load(); err != nil {
				r.log.Error().Err(err).Str("file", event.Name).Msg("template reload failed, keeping previous set")
				continue
			}
			r.log.Info().Str("file", event.Name).Msg("templates reloaded")
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.Warn().Err(err).Msg("template watcher error")
		}
	}
}
