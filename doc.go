/*
Package fsg is a small toolkit for finite-state generators: hand-authored
automata whose edges carry string labels.

An automaton is sampled forward to produce strings it accepts, and a string is
tested for acceptance by a backtracking search that walks the automaton
backwards from its end state. No regular expression engine is involved.

# Concept

The start state is special: its outbound edges carry a synthetic marker label
("^" by default) that anchors the backward search and never appears in
generated output. Every other edge carries a non-empty label. Cycles are
allowed; a generator walk is bounded by a step limit.

# Usage

Load a definition from a YAML/JSON file or from a Loam directory (one Markdown
document per state) and use the Engine:

	eng, err := fsg.New("./examples/demo/automaton.yaml")
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	for s, err := range eng.Generate(ctx, 5, fsg.NewSource(42)) {
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(s, eng.Matches(ctx, s))
	}

Automata can also be assembled in code with package dsl, or directly with
package automaton for callers that do not need loading, logging or hooks.
*/
package fsg
