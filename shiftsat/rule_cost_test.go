package shiftsat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func costCfg(rules ...Rule) Config {
	return Config{
		Members: []Member{
			{ID: "gail", Roles: []string{"tech"}, Pay: &PayDescriptor{Kind: PayHourly, Rate: 20}},
		},
		Patterns:    []ShiftPattern{{ID: "day", Start: 8 * 60, End: 16 * 60, Roles: []string{"tech"}}},
		PeriodStart: "2024-02-05",
		PeriodEnd:   "2024-02-05",
		Rules:       rules,
	}
}

func mustRule(t *testing.T, name string, params map[string]any) Rule {
	t.Helper()
	rule, err := NewRule(name, params)
	require.NoError(t, err)
	return rule
}

func TestMinimizeCostAddsWageObjectiveTerm(t *testing.T) {
	rule, err := NewRule("minimize-cost", nil)
	require.NoError(t, err)
	b, err := NewBuilder(costCfg(rule))
	require.NoError(t, err)
	req, err := b.Compile()
	require.NoError(t, err)

	// gail's single assignment (rate*hours = 160) is the only raw cost in
	// the model, so it is also the normalization factor: scaleCost maps it
	// to the full costCoefficientScale.
	gailVar := assignVarName("gail", "day", "2024-02-05")
	found := false
	for _, term := range req.Objective.Terms {
		if term.Var == gailVar && term.Coeff == costCoefficientScale {
			found = true
		}
	}
	require.True(t, found)
}

func TestMinimizeCostPenalizesSalariedMemberOncePerWorkedWeek(t *testing.T) {
	cfg := Config{
		Members: []Member{
			{ID: "gail", Roles: []string{"tech"}, Pay: &PayDescriptor{Kind: PayHourly, Rate: 20}},
			{ID: "ira", Roles: []string{"tech"}, Pay: &PayDescriptor{Kind: PaySalaried, Rate: 800}},
		},
		Patterns:    []ShiftPattern{{ID: "day", Start: 8 * 60, End: 16 * 60, Roles: []string{"tech"}}},
		PeriodStart: "2024-02-05",
		PeriodEnd:   "2024-02-11", // one full Mon-Sun week
		Rules:       []Rule{mustRule(t, "minimize-cost", nil)},
	}
	b, err := NewBuilder(cfg)
	require.NoError(t, err)
	req, err := b.Compile()
	require.NoError(t, err)

	// Salaried Rate (800) is the costliest single assignment in this model
	// (gail's hourly rate*hours across the week tops out at 160/day), so
	// it sets the normalization factor and scales to costCoefficientScale.
	workedVar := "workedweek:ira:2024-02-05"
	found := false
	for _, term := range req.Objective.Terms {
		if term.Var == workedVar && term.Coeff == costCoefficientScale {
			found = true
		}
	}
	require.True(t, found, "expected a penalty term on %s", workedVar)

	// The week-worked boolean must be tied to ira's daily works vars: it
	// cannot be forced true without an actual assignment.
	iraDayVar := assignVarName("ira", "day", "2024-02-05")
	require.True(t, b.vars.has(iraDayVar))
	require.True(t, b.vars.has(workedVar))
}

func TestCostModifierWithoutMinimizeCostIsRuleError(t *testing.T) {
	rule, err := NewRule("day-cost-surcharge", map[string]any{"name": "holiday", "amount": 50})
	require.NoError(t, err)
	b, err := NewBuilder(costCfg(rule))
	require.NoError(t, err)
	_, err = b.Compile()
	require.Error(t, err)
}

func TestRuleOrderingHoistsMinimizeCostFirst(t *testing.T) {
	surcharge, err := NewRule("day-cost-surcharge", map[string]any{"name": "holiday", "amount": 50})
	require.NoError(t, err)
	minimize, err := NewRule("minimize-cost", nil)
	require.NoError(t, err)
	// Registered out of order: the modifier rule is listed before
	// minimize-cost, relying on orderRules to hoist it regardless.
	b, err := NewBuilder(costCfg(surcharge, minimize))
	require.NoError(t, err)
	_, err = b.Compile()
	require.NoError(t, err)
	require.True(t, b.CanSolve())
}

func TestRoundCoeffWarnsOnZeroRounding(t *testing.T) {
	log := &fakeLogWarner{}
	got := roundCoeff(log, "ctx", 0.1)
	require.Equal(t, 0, got)
	require.True(t, log.called)
}

func TestRoundCoeffRoundsNonZero(t *testing.T) {
	log := &fakeLogWarner{}
	got := roundCoeff(log, "ctx", 4.6)
	require.Equal(t, 5, got)
	require.False(t, log.called)
}

type fakeLogWarner struct{ called bool }

func (f *fakeLogWarner) warnZeroRounded(context string, raw float64) { f.called = true }
