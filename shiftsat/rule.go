package shiftsat

// Rule is the compilation unit for one named business constraint (§4.5). A
// Rule only ever reads the Builder's resolved universe (members, patterns,
// days) and writes variables/constraints/penalties through its exported
// emission API — it never holds state across Compile calls.
type Rule interface {
	Name() string
	Compile(b *Builder) error
}

// Validator is an optional capability a Rule may implement to check a
// returned solution beyond what the solver itself enforces (e.g. a
// soft-only business check the wire schema can't express as a constraint).
// The Analyzer probes for this via a type assertion rather than requiring
// every Rule to implement a no-op.
type Validator interface {
	Validate(b *Builder, assignments []ShiftAssignment) []ValidationFinding
}

// CostRule is an optional capability a rule may implement to declare that it
// contributes cost terms; minimize-cost implements it. The Builder does not
// probe it: cost-modifier rules coordinate through the shared CostContext.
type CostRule interface {
	AppliesCost(b *Builder) bool
}

// ValidationFinding is one post-solve observation a Validator rule reports
// that isn't already captured by a tracked soft constraint.
type ValidationFinding struct {
	RuleName string
	Day      string
	Members  []string
	Message  string
}

// ruleRegistry maps a rule's declared name to a factory taking its parameter map,
// letting config-driven callers (notably the CLI) construct a Config.Rules
// slice by name rather than importing every concrete rule type.
var ruleRegistry = map[string]func(params map[string]any) (Rule, error){}

// RegisterRule adds a named rule factory to the package registry. Intended
// to be called from each rule file's init().
func RegisterRule(name string, factory func(params map[string]any) (Rule, error)) {
	ruleRegistry[name] = factory
}

// NewRule constructs a Rule by its registered name and parameter map, as
// used by the compile subcommand when rules are declared in a config file
// rather than assembled in Go code.
func NewRule(name string, params map[string]any) (Rule, error) {
	factory, ok := ruleRegistry[name]
	if !ok {
		return nil, newConfigError("rule", "unknown rule %q", name)
	}
	return factory(params)
}
