package automaton_test

import (
	"fmt"
	"math/rand/v2"

	"github.com/aretw0/fsg/pkg/automaton"
	"github.com/aretw0/fsg/pkg/domain"
)

func Example() {
	a := automaton.New(automaton.WithName("greeting"))
	start, _ := a.AddState(domain.StateDef{ID: "^", Start: true})
	hello, _ := a.AddState(domain.StateDef{ID: "hello"})
	end, _ := a.AddState(domain.StateDef{ID: "end", End: true})

	_ = a.AddTransition(start, hello, "")
	_ = a.AddTransition(hello, hello, "o")
	_ = a.AddTransition(hello, end, "hi")

	if err := a.Validate(); err != nil {
		fmt.Println("invalid:", err)
		return
	}

	m := automaton.NewMatcher(a)
	fmt.Println(m.Matches("hi"), m.Matches("oohi"), m.Matches("ih"))

	gen := automaton.NewGenerator(a)
	s, _ := gen.Sample(rand.New(rand.NewPCG(1, 2)))
	fmt.Println(m.Matches(s))

	// Output:
	// true true false
	// true
}
