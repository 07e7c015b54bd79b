package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/fsg/pkg/automaton"
)

// ErrNotLive is returned when some state reachable from the start cannot reach the end.
// A random walk entering such a state never terminates.
var ErrNotLive = errors.New("automaton is not live")

// Result is the outcome of a static analysis pass.
type Result struct {
	// Unreachable lists states that no walk from the start state visits.
	Unreachable []string
	// Trapped lists reachable states from which the end state cannot be reached.
	Trapped []string
}

// Err converts the result into an error. Unreachable states are only warnings.
func (r Result) Err() error {
	if len(r.Trapped) == 0 {
		return nil
	}
	return fmt.Errorf("%w: found %d trapped states:\n- %s", ErrNotLive, len(r.Trapped), strings.Join(r.Trapped, "\n- "))
}

// Warnings returns human readable warnings.
func (r Result) Warnings() []string {
	var out []string
	for _, name := range r.Unreachable {
		out = append(out, fmt.Sprintf("state '%s' is unreachable from the start state", name))
	}
	return out
}

// Analyze crawls the automaton forward from the start state and backward from
// the end state. When every reachable state can also reach the end, a uniform
// random walk terminates with probability 1.
func Analyze(a *automaton.Automaton) (Result, error) {
	if err := a.Validate(); err != nil {
		return Result{}, err
	}

	states := a.States()
	forward := crawl(a.Start(), func(id automaton.StateID) []automaton.Edge { return states[id].Outbound })
	backward := crawl(a.End(), func(id automaton.StateID) []automaton.Edge { return states[id].Inbound })

	var res Result
	for _, s := range states {
		switch {
		case !forward[s.ID]:
			res.Unreachable = append(res.Unreachable, s.Name)
		case !backward[s.ID]:
			res.Trapped = append(res.Trapped, s.Name)
		}
	}
	return res, nil
}

// crawl is a breadth-first search returning the set of visited states.
func crawl(from automaton.StateID, next func(automaton.StateID) []automaton.Edge) map[automaton.StateID]bool {
	visited := map[automaton.StateID]bool{from: true}
	queue := []automaton.StateID{from}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, e := range next(current) {
			if !visited[e.State] {
				visited[e.State] = true
				queue = append(queue, e.State)
			}
		}
	}
	return visited
}
