/*
Package automaton implements the core of the fsg toolkit: a finite-state graph
whose edges carry multi-character labels, a forward Generator that samples
accepted strings by random walk, and a backward Matcher that decides acceptance
by backtracking from the end state towards the start state.

States live in an arena and are addressed by StateID. Every edge is stored
twice, once in the source's outbound list and once in the target's inbound
list. Edges leaving the start state carry a synthetic marker label which is
never emitted by the Generator and is used by the Matcher to anchor the search.

An Automaton is built once with AddState/AddTransition (or FromDefinition) and
is read-only afterwards. Generators and Matchers never mutate it, so a single
instance can be shared by any number of goroutines.

	a := automaton.New()
	start, _ := a.AddState(domain.StateDef{ID: "^", Start: true})
	q, _ := a.AddState(domain.StateDef{ID: "q"})
	end, _ := a.AddState(domain.StateDef{ID: "end", End: true})
	_ = a.AddTransition(start, q, "")
	_ = a.AddTransition(q, end, "ab")

	gen := automaton.NewGenerator(a)
	for s, err := range gen.Generate(3, rand.New(rand.NewPCG(1, 2))) {
		...
	}

	automaton.NewMatcher(a).Matches("ab") // true
*/
package automaton
