/*
Package dsl provides a Go DSL for programmatically constructing automatons.

It allows developers to declare states and labelled transitions with a fluent
builder instead of writing YAML or JSON definitions. Declaration order is
preserved, so a given builder always yields the same automaton and therefore
the same generated samples for a given seed.

Example usage:

	b := dsl.New("demo")

	b.Start("^").Go("qa")

	b.Add("qa").
		On("f", "qb").
		On("s", "qd").
		On("g", "qc")

	b.Add("qb").
		On("gg", "qd").
		On("s", "qa")

	b.End("qd")

	a, err := b.Build()
*/
package dsl
