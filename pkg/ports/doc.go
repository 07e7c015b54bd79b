/*
Package ports defines the driven ports (interfaces) for the fsg toolkit.

These interfaces decouple the engine and the harness from external
implementations, allowing definitions to come from files, Loam repositories or
memory, and reports to be kept in memory, on disk or in Redis.

# Key Interfaces

  - DefinitionLoader: Responsible for loading an automaton Definition.
  - ReportStore: Responsible for persisting and loading harness Reports.
*/
package ports
