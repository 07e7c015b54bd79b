package cli

import (
	"github.com/aretw0/fsg/pkg/domain"
	"github.com/aretw0/fsg/pkg/dsl"
)

// DemoPattern is a regular expression equivalent to DemoDefinition.
const DemoPattern = "((g(ss|ff|g))|fs)*(s|((f|gs)?gg))"

// DemoDefinition returns the built-in demonstration automaton, used when no
// definition is given or found.
func DemoDefinition() *domain.Definition {
	b := dsl.New("demo")
	b.Add("start").Start().Describe("Entry point").Go("qa")
	b.Add("qa").On("f", "qb").On("s", "qd").On("g", "qc")
	b.Add("qb").On("gg", "qd").On("s", "qa")
	b.Add("qc").On("ff", "qa").On("g", "qa").On("s", "qb").On("g", "qd")
	b.Add("qd").End().Describe("Accepting state")
	return b.Definition()
}
