package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/fsg/pkg/domain"
	"github.com/aretw0/loam"
	"github.com/mitchellh/mapstructure"
)

// Loader adapts a Loam repository to ports.DefinitionLoader.
// Every document in the repository describes one state and its outbound edges.
type Loader struct {
	Repo   *loam.TypedRepository[StateMetadata]
	name   string
	marker string
	mode   domain.MatchMode
}

// Option configures a Loader.
type Option func(*Loader)

// WithName sets the automaton name of the loaded definition.
func WithName(name string) Option {
	return func(l *Loader) { l.name = name }
}

// WithMarker sets the start marker of the loaded definition.
func WithMarker(marker string) Option {
	return func(l *Loader) { l.marker = marker }
}

// WithMatchMode sets the label comparison mode of the loaded definition.
func WithMatchMode(mode domain.MatchMode) Option {
	return func(l *Loader) { l.mode = mode }
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[StateMetadata], opts ...Option) *Loader {
	l := &Loader{Repo: repo}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type stateDoc struct {
	path string
	def  domain.StateDef
	out  []domain.TransitionDef
}

// Load lists the repository and assembles a definition. States are ordered
// by ID; transitions follow state order and then frontmatter order.
func (l *Loader) Load(ctx context.Context) (*domain.Definition, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	states := make([]stateDoc, 0, len(docs))

	for _, doc := range docs {
		// Use the ID from metadata if available, otherwise filename ID
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: collision detected: ID '%s' is defined in both '%s' and '%s'",
				domain.ErrInvalidDefinition, id, existingPath, doc.ID)
		}
		seen[id] = doc.ID

		description := doc.Data.Description
		if description == "" {
			description = strings.TrimSpace(doc.Content)
		}

		out, err := buildTransitions(id, doc.Data.Transitions)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", doc.ID, err)
		}

		states = append(states, stateDoc{
			path: doc.ID,
			def: domain.StateDef{
				ID:          id,
				Start:       doc.Data.Start,
				End:         doc.Data.End,
				Description: description,
			},
			out: out,
		})
	}

	if len(states) == 0 {
		return nil, fmt.Errorf("%w: repository has no state documents", domain.ErrInvalidDefinition)
	}

	sort.Slice(states, func(i, j int) bool { return states[i].def.ID < states[j].def.ID })

	def := &domain.Definition{
		Name:   l.name,
		Marker: l.marker,
		Mode:   l.mode,
	}
	for _, s := range states {
		def.States = append(def.States, s.def)
		def.Transitions = append(def.Transitions, s.out...)
	}
	return def, nil
}

func buildTransitions(from string, raw []any) ([]domain.TransitionDef, error) {
	out := make([]domain.TransitionDef, 0, len(raw))
	for i, v := range raw {
		if target, ok := v.(string); ok {
			out = append(out, domain.TransitionDef{From: from, To: trimExtension(target)})
			continue
		}

		var lt LoaderTransition
		if err := mapstructure.Decode(v, &lt); err != nil {
			return nil, fmt.Errorf("%w: transition #%d of %s: %v", domain.ErrInvalidDefinition, i, from, err)
		}
		to := lt.To
		if to == "" {
			to = lt.ToFull
		}
		if to == "" {
			return nil, fmt.Errorf("%w: transition #%d of %s has no target", domain.ErrInvalidDefinition, i, from)
		}
		out = append(out, domain.TransitionDef{From: from, To: trimExtension(to), Label: lt.Label})
	}
	return out, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- evt.ID:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
