package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shiftsat/compiler/shiftsat"
)

// scheduleInput is the on-disk JSON shape the compile/analyze subcommands
// read: a direct, serializable mirror of shiftsat.Config, with Rules
// expressed as {name, params} so the CLI never needs to import a concrete
// Rule type.
type scheduleInput struct {
	Members       []shiftsat.Member                `json:"members"`
	Patterns      []shiftsat.ShiftPattern           `json:"patterns"`
	PeriodStart   string                            `json:"periodStart"`
	PeriodEnd     string                            `json:"periodEnd"`
	Coverage      []shiftsat.CoverageSpec           `json:"coverage"`
	SemanticTimes map[string]shiftsat.SemanticTime  `json:"semanticTimes"`
	Rules         []ruleInput                       `json:"rules"`
	BucketMinutes int                               `json:"bucketMinutes"`
	WeekStartsOn  string                            `json:"weekStartsOn"`
}

type ruleInput struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params"`
}

func loadScheduleInput(path string) (scheduleInput, error) {
	var in scheduleInput
	raw, err := os.ReadFile(path)
	if err != nil {
		return in, fmt.Errorf("reading input %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return in, fmt.Errorf("parsing input %s: %w", path, err)
	}
	return in, nil
}

func buildConfig(in scheduleInput) (shiftsat.Config, error) {
	rules := make([]shiftsat.Rule, 0, len(in.Rules))
	for _, ri := range in.Rules {
		if ri.Params == nil {
			ri.Params = make(map[string]any)
		}
		ri.Params["name"] = ri.Name
		rule, err := shiftsat.NewRule(ri.Name, ri.Params)
		if err != nil {
			return shiftsat.Config{}, fmt.Errorf("rule %q: %w", ri.Name, err)
		}
		rules = append(rules, rule)
	}
	return shiftsat.Config{
		Members:       in.Members,
		Patterns:      in.Patterns,
		PeriodStart:   in.PeriodStart,
		PeriodEnd:     in.PeriodEnd,
		Coverage:      in.Coverage,
		SemanticTimes: in.SemanticTimes,
		Rules:         rules,
		BucketMinutes: in.BucketMinutes,
		WeekStartsOn:  in.WeekStartsOn,
		Logger:        logEntry(),
	}, nil
}
