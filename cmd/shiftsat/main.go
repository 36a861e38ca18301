// Command shiftsat compiles a workforce-scheduling configuration into a
// solver-agnostic CP-SAT request, and analyzes a solver's response back
// into a human-readable validation summary.
package main

import (
	"context"

	"github.com/shiftsat/compiler/cmd/shiftsat/cmd"
)

func main() {
	cmd.Execute(context.Background())
}
