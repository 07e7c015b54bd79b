/*
Package domain contains the core domain models shared by the fsg toolkit.

It defines the serializable description of an automaton (Definition, StateDef,
TransitionDef), the results produced by the validation harness (Report), the
lifecycle events emitted while sampling and matching, and the sentinel errors
every layer wraps. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Definition: A hand-authored automaton (states plus labelled transitions).
  - StateDef: A named state, optionally flagged start or end.
  - TransitionDef: A directed edge carrying a multi-character label.
  - Report: The outcome of a harness run (self-check, pattern tallies, reference equivalence).
*/
package domain
