// Package shiftsat compiles a declarative workforce schedule — members,
// shift patterns, coverage requirements, and rules — into a solver-agnostic
// constraint model (a SolverRequest) suitable for submission to an external
// CP-SAT solver, and analyzes the solver's response.
//
// The package does not solve anything itself: the CP-SAT solver is treated
// as a remote request/response collaborator. Construction of a Builder,
// compilation of rules against it, and post-solve analysis are the three
// stages a caller drives:
//
//	b, err := shiftsat.NewBuilder(cfg)
//	req, err := b.Compile()
//	// ... send req to an external solver, obtain a shiftsat.SolverResponse ...
//	result, err := b.Analyze(resp) // result.Assignments, result.Summary
package shiftsat
