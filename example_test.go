package fsg_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/fsg"
	"github.com/aretw0/fsg/pkg/adapters/memory"
	"github.com/aretw0/fsg/pkg/dsl"
)

// ExampleNew_memory shows the Engine over a definition built in code.
// The path is left empty because a loader is provided.
func ExampleNew_memory() {
	b := dsl.New("greeting")
	b.Add("start").Start().Go("hello")
	b.Add("hello").On("hi", "done").On("hey", "done")
	b.Add("done").End()

	engine, err := fsg.New("", fsg.WithLoader(memory.NewLoader(b.Definition())))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	fmt.Println(engine.Matches(ctx, "hi"), engine.Matches(ctx, "hey"), engine.Matches(ctx, "hello"))

	res := engine.Match(ctx, "hey")
	fmt.Println(res.Path)
	// Output:
	// true true false
	// [start hello done]
}
