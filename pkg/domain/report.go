package domain

import "time"

// Report captures the outcome of a harness run.
type Report struct {
	ID        string    `json:"id" yaml:"id"`
	Automaton string    `json:"automaton,omitempty" yaml:"automaton,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Seed      uint64    `json:"seed" yaml:"seed"`
	Samples   int       `json:"samples" yaml:"samples"`

	SelfCheck SelfCheck       `json:"self_check" yaml:"self_check"`
	Patterns  []PatternTally  `json:"patterns,omitempty" yaml:"patterns,omitempty"`
	Reference *ReferenceCheck `json:"reference,omitempty" yaml:"reference,omitempty"`
}

// SelfCheck tallies generated strings that the matcher accepted or rejected.
type SelfCheck struct {
	Accepted int      `json:"accepted" yaml:"accepted"`
	Rejected int      `json:"rejected" yaml:"rejected"`
	Failures []string `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Passed reports whether every generated string was accepted.
func (s SelfCheck) Passed() bool {
	return s.Rejected == 0
}

// PatternTally counts how many generated samples a pattern found.
type PatternTally struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Passed  int    `json:"passed" yaml:"passed"`
	Failed  int    `json:"failed" yaml:"failed"`
}

// Total returns the number of evaluated samples.
func (p PatternTally) Total() int {
	return p.Passed + p.Failed
}

// ReferenceCheck compares the matcher against an anchored reference pattern
// over random strings drawn from the automaton's alphabet.
type ReferenceCheck struct {
	Pattern    string     `json:"pattern" yaml:"pattern"`
	Inputs     int        `json:"inputs" yaml:"inputs"`
	Agree      int        `json:"agree" yaml:"agree"`
	Disagree   int        `json:"disagree" yaml:"disagree"`
	Accepted   int        `json:"accepted" yaml:"accepted"`
	Mismatches []Mismatch `json:"mismatches,omitempty" yaml:"mismatches,omitempty"`
}

// Equivalent reports whether the matcher agreed with the reference on every input.
func (r ReferenceCheck) Equivalent() bool {
	return r.Disagree == 0
}

// Mismatch records an input on which the matcher and the reference disagree.
type Mismatch struct {
	Input     string `json:"input" yaml:"input"`
	Matcher   bool   `json:"matcher" yaml:"matcher"`
	Reference bool   `json:"reference" yaml:"reference"`
}

// Clone returns a deep copy of the report.
func (r *Report) Clone() *Report {
	if r == nil {
		return nil
	}
	c := *r
	c.SelfCheck.Failures = append([]string(nil), r.SelfCheck.Failures...)
	c.Patterns = append([]PatternTally(nil), r.Patterns...)
	if r.Reference != nil {
		ref := *r.Reference
		ref.Mismatches = append([]Mismatch(nil), r.Reference.Mismatches...)
		c.Reference = &ref
	}
	return &c
}
