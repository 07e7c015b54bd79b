package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/fsg/internal/compiler"
	"github.com/aretw0/fsg/pkg/domain"
	"github.com/fsnotify/fsnotify"
)

// Loader implements ports.DefinitionLoader over a single YAML or JSON file.
type Loader struct {
	Path   string
	parser *compiler.Parser
}

// NewLoader creates a loader for the definition file at path.
func NewLoader(path string, opts ...compiler.ParserOption) *Loader {
	return &Loader{
		Path:   path,
		parser: compiler.NewParser(opts...),
	}
}

// Load reads and parses the file. A definition without a name is named
// after the file.
func (l *Loader) Load(ctx context.Context) (*domain.Definition, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition %s: %w", l.Path, err)
	}

	def, err := l.parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.Path, err)
	}
	if def.Name == "" {
		base := filepath.Base(l.Path)
		def.Name = base[:len(base)-len(filepath.Ext(base))]
	}
	return def, nil
}

// Watch implements ports.Watchable. It watches the parent directory so that
// editors replacing the file on save are still observed.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	abs, err := filepath.Abs(l.Path)
	if err != nil {
		_ = watcher.Close()
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", l.Path, err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != abs {
					continue
				}
				if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Rename) {
					continue
				}
				select {
				case ch <- l.Path:
				case <-ctx.Done():
					return
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return ch, nil
}
