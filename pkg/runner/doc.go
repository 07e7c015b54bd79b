/*
Package runner implements the interactive exploration loop behind `fsg repl`.

Every line read from the handler is matched against the automaton and answered
with a verdict and, when accepted, the witness walk. Lines starting with a
colon are commands:

	:gen [n]        generate n strings (default 1)
	:seed <n>       reseed the generator
	:graph [input]  print the Mermaid diagram, highlighting input's walk
	:help           list commands
	:quit           leave

Handlers decouple the loop from its frontend: TextHandler for terminals and
pipes, JSONHandler for JSON-Lines clients.

# Usage

	r := runner.NewRunner(engine,
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
		runner.WithSeed(42),
	)
	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
