package compiler

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/fsg/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Parser converts raw definition documents (YAML or JSON) into a Definition.
type Parser struct {
	strict bool
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithLenient accepts unknown fields instead of failing on them.
func WithLenient() ParserOption {
	return func(p *Parser) {
		p.strict = false
	}
}

// NewParser creates a new parser instance. Unknown fields are rejected by default.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{strict: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse decodes a single definition document.
// JSON is accepted as it is a subset of YAML.
func (p *Parser) Parse(data []byte) (*domain.Definition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidDefinition)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(p.strict)

	var def domain.Definition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidDefinition)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDefinition, err)
	}

	if err := p.check(&def); err != nil {
		return nil, err
	}
	return &def, nil
}

// check performs the document-level checks that do not need a compiled automaton.
func (p *Parser) check(def *domain.Definition) error {
	if len(def.States) == 0 {
		return fmt.Errorf("%w: no states", domain.ErrInvalidDefinition)
	}
	if !def.Mode.Valid() {
		return fmt.Errorf("%w: unknown match mode %q", domain.ErrInvalidDefinition, def.Mode)
	}
	for i, s := range def.States {
		if s.ID == "" {
			return fmt.Errorf("%w: state #%d has no id", domain.ErrInvalidDefinition, i)
		}
	}
	for i, t := range def.Transitions {
		if t.From == "" || t.To == "" {
			return fmt.Errorf("%w: transition #%d needs both from and to", domain.ErrInvalidDefinition, i)
		}
	}
	return nil
}

// Marshal encodes a definition as YAML.
func Marshal(def *domain.Definition) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(def); err != nil {
		return nil, fmt.Errorf("failed to encode definition: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode definition: %w", err)
	}
	return buf.Bytes(), nil
}
