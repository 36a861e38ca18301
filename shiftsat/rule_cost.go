package shiftsat

import (
	"fmt"
	"math"
)

func init() {
	RegisterRule("minimize-cost", newMinimizeCostRule)
	RegisterRule("day-cost-multiplier", newDayCostMultiplierRule)
	RegisterRule("day-cost-surcharge", newDayCostSurchargeRule)
	RegisterRule("time-cost-surcharge", newTimeCostSurchargeRule)
	RegisterRule("overtime-threshold-week", newOvertimeThresholdWeekRule)
}

// costCoefficientScale is the integer coefficient minimize-cost assigns to
// the single costliest possible assignment in the model (the one whose raw
// cost equals the computed normalization factor). Every other cost term is
// scaled proportionally against that factor, so cost coefficients land in a
// fixed, currency-independent range comparable to
// PenaltyAssignmentPreference/PenaltyFairness rather than swamping
// PenaltyShiftActive, regardless of whether rates are quoted in cents or in
// a currency with a much larger unit.
const costCoefficientScale = 100

// computeCostNormalizationFactor scans every member for the maximum raw cost
// of any single assignment: duration x hourly rate for an hourly member
// across every pattern, or the flat weekly salary for a salaried member.
func computeCostNormalizationFactor(b *Builder) float64 {
	var maxRaw float64
	for _, m := range b.Members() {
		if m.Pay == nil {
			continue
		}
		switch m.Pay.Kind {
		case PayHourly:
			for _, p := range b.Patterns() {
				hours := float64(b.PatternDuration(p)) / 60.0
				if raw := m.Pay.Rate * hours; raw > maxRaw {
					maxRaw = raw
				}
			}
		case PaySalaried:
			if m.Pay.Rate > maxRaw {
				maxRaw = m.Pay.Rate
			}
		}
	}
	return maxRaw
}

// scaleCost converts a raw currency amount into the costCoefficientScale
// range established by the Builder's CostContext.NormalizationFactor. A zero
// factor (no paid member in the model) leaves amounts unscaled rather than
// dividing by zero.
func scaleCost(b *Builder, raw float64) float64 {
	factor := float64(b.CostContext().NormalizationFactor)
	if factor <= 0 {
		return raw
	}
	return raw * costCoefficientScale / factor
}

// roundCoeff rounds a scaled cost to its nearest integer coefficient. Per
// the ambiguity in how a fractional soft coefficient should be resolved,
// this compiler's chosen answer is: round normally, but warn rather than
// silently coerce to zero when a genuinely nonzero cost rounds away
// entirely (a cost too small to register at this rule's granularity).
func roundCoeff(log logWarner, context string, raw float64) int {
	coeff := int(math.Round(raw))
	if coeff == 0 && raw != 0 {
		log.warnZeroRounded(context, raw)
	}
	return coeff
}

type logWarner interface {
	warnZeroRounded(context string, raw float64)
}

func (b *Builder) warnZeroRounded(context string, raw float64) {
	b.log.WithField("context", context).WithField("rawValue", raw).Warn("cost coefficient rounded to zero; rule contributes nothing to the objective")
}

// minimizeCostRule activates cost-aware optimization: every hourly member's
// eligible assignment is penalized by its computed wage cost, and every
// salaried member's weekly salary is penalized once per scheduling week in
// which they hold any assignment at all, so the solver prefers cheaper
// staffing among otherwise-equal solutions. Must compile before any
// cost-modifier rule (orderRules hoists it to the front of the rule list
// unconditionally).
type minimizeCostRule struct {
	name string
}

func newMinimizeCostRule(params map[string]any) (Rule, error) {
	name, err := paramString(params, "name", false)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = "minimize-cost"
	}
	return &minimizeCostRule{name: name}, nil
}

func (r *minimizeCostRule) Name() string { return r.name }

func (r *minimizeCostRule) AppliesCost(b *Builder) bool { return true }

func (r *minimizeCostRule) Compile(b *Builder) error {
	factor := computeCostNormalizationFactor(b)
	b.SetCostContext(CostContext{NormalizationFactor: int(math.Round(factor)), Active: true})
	weeks := weekWindows(b.Days(), b.WeekStartsOn())
	for _, m := range b.Members() {
		if m.Pay == nil {
			continue
		}
		switch m.Pay.Kind {
		case PayHourly:
			for _, p := range b.Patterns() {
				for _, d := range b.Days() {
					if !b.eligible(m, p, d) {
						continue
					}
					coeff := assignmentCost(b, m, p)
					if coeff == 0 {
						continue
					}
					b.AddPenalty(assignVarName(m.ID, p.ID, d.ISO), coeff)
				}
			}
		case PaySalaried:
			for _, week := range weeks {
				workedVar := weekWorkedVar(b, m.ID, week)
				coeff := salariedWeekCost(b, m, week[0].ISO)
				if coeff == 0 {
					continue
				}
				b.AddPenalty(workedVar, coeff)
			}
		}
	}
	return nil
}

func assignmentCost(b *Builder, m Member, p ShiftPattern) int {
	hours := float64(b.PatternDuration(p)) / 60.0
	raw := m.Pay.Rate * hours
	return roundCoeff(b, fmt.Sprintf("minimize-cost:%s:%s", m.ID, p.ID), scaleCost(b, raw))
}

func salariedWeekCost(b *Builder, m Member, weekLabel string) int {
	return roundCoeff(b, fmt.Sprintf("minimize-cost:%s:%s", m.ID, weekLabel), scaleCost(b, m.Pay.Rate))
}

// weekWorkedVar interns a boolean "member has at least one assignment
// somewhere in this week" variable, built the same way worksVar builds its
// day-scoped equivalent: any day worked this week implies the week is
// worked, and the week variable can't be forced true without some day
// actually worked. Shared across rules the way worksVar is, though today
// only minimize-cost needs it.
func weekWorkedVar(b *Builder, memberID string, week []Day) string {
	name := "workedweek:" + memberID + ":" + week[0].ISO
	if b.vars.has(name) {
		return name
	}
	if _, err := b.NewBoolVar(name); err != nil {
		return name
	}
	var sumTerms []Term
	for _, d := range week {
		dayVar := b.worksVar(memberID, d, "minimize-cost")
		b.AddImplication(dayVar, name)
		sumTerms = append(sumTerms, Term{Var: dayVar, Coeff: -1})
	}
	sumTerms = append(sumTerms, Term{Var: name, Coeff: 1})
	b.AddLinear(sumTerms, ComparatorLE, 0)
	return name
}

func requireCostContext(b *Builder, ruleName string) error {
	cc := b.CostContext()
	if cc == nil || !cc.Active {
		return newRuleError(ruleName, fmt.Errorf("must compile after minimize-cost"))
	}
	return nil
}

// dayCostMultiplierRule scales the wage cost of hourly members' assignments
// on specific days (e.g. weekend premium pay) by Multiplier, adding the
// delta between the multiplied and base cost as an extra penalty term.
// Salaried members are skipped: their cost is a flat per-week amount set by
// minimize-cost, not a per-assignment wage a day-multiplier has anything to
// scale.
type dayCostMultiplierRule struct {
	name       string
	timeScope  TimeScope
	multiplier float64
}

func newDayCostMultiplierRule(params map[string]any) (Rule, error) {
	name, err := paramString(params, "name", true)
	if err != nil {
		return nil, err
	}
	timeScope, err := parseTimeScopeParam(params)
	if err != nil {
		return nil, err
	}
	multiplier, err := paramFloat(params, "multiplier", 1)
	if err != nil {
		return nil, err
	}
	return &dayCostMultiplierRule{name: name, timeScope: timeScope, multiplier: multiplier}, nil
}

func (r *dayCostMultiplierRule) Name() string { return r.name }

func (r *dayCostMultiplierRule) Compile(b *Builder) error {
	if err := requireCostContext(b, r.name); err != nil {
		return err
	}
	days, err := b.ResolveActiveDays(r.timeScope)
	if err != nil {
		return err
	}
	for _, m := range b.Members() {
		if m.Pay == nil || m.Pay.Kind != PayHourly {
			continue
		}
		for _, p := range b.Patterns() {
			for _, d := range days {
				if !b.eligible(m, p, d) {
					continue
				}
				base := scaleCost(b, m.Pay.Rate*float64(b.PatternDuration(p))/60.0)
				delta := roundCoeff(b, r.name+":"+m.ID+":"+p.ID+":"+d.ISO, base*(r.multiplier-1))
				if delta == 0 {
					continue
				}
				b.AddPenalty(assignVarName(m.ID, p.ID, d.ISO), delta)
			}
		}
	}
	return nil
}

// dayCostSurchargeRule adds a flat extra cost to every shift (pattern, day)
// run on the selected days that some member is eligible to staff, regardless
// of pay kind (e.g. a holiday premium paid even to salaried staff's shift,
// modeled as a cost on the decision to staff it at all rather than on wage).
type dayCostSurchargeRule struct {
	name      string
	timeScope TimeScope
	amount    float64
}

func newDayCostSurchargeRule(params map[string]any) (Rule, error) {
	name, err := paramString(params, "name", true)
	if err != nil {
		return nil, err
	}
	timeScope, err := parseTimeScopeParam(params)
	if err != nil {
		return nil, err
	}
	amount, err := paramFloat(params, "amount", 0)
	if err != nil {
		return nil, err
	}
	return &dayCostSurchargeRule{name: name, timeScope: timeScope, amount: amount}, nil
}

func (r *dayCostSurchargeRule) Name() string { return r.name }

func (r *dayCostSurchargeRule) Compile(b *Builder) error {
	if err := requireCostContext(b, r.name); err != nil {
		return err
	}
	days, err := b.ResolveActiveDays(r.timeScope)
	if err != nil {
		return err
	}
	coeff := roundCoeff(b, r.name, scaleCost(b, r.amount))
	if coeff == 0 {
		return nil
	}
	for _, p := range b.Patterns() {
		for _, d := range days {
			staffable := false
			for _, m := range b.Members() {
				if b.eligible(m, p, d) {
					staffable = true
					break
				}
			}
			if !staffable {
				continue
			}
			name, err := b.ShiftActiveVar(p.ID, d.ISO)
			if err != nil {
				return err
			}
			b.AddPenalty(name, coeff)
		}
	}
	return nil
}

// timeCostSurchargeRule adds a flat extra cost to every assignment whose
// pattern overlaps a [Start,End) time-of-day window (e.g. a late-night
// differential), independent of which day it falls on.
type timeCostSurchargeRule struct {
	name       string
	start, end int
	amount     float64
}

func newTimeCostSurchargeRule(params map[string]any) (Rule, error) {
	name, err := paramString(params, "name", true)
	if err != nil {
		return nil, err
	}
	start, err := paramInt(params, "start", 0)
	if err != nil {
		return nil, err
	}
	end, err := paramInt(params, "end", 0)
	if err != nil {
		return nil, err
	}
	amount, err := paramFloat(params, "amount", 0)
	if err != nil {
		return nil, err
	}
	return &timeCostSurchargeRule{name: name, start: start, end: end, amount: amount}, nil
}

func (r *timeCostSurchargeRule) Name() string { return r.name }

func (r *timeCostSurchargeRule) Compile(b *Builder) error {
	if err := requireCostContext(b, r.name); err != nil {
		return err
	}
	coeff := roundCoeff(b, r.name, scaleCost(b, r.amount))
	if coeff == 0 {
		return nil
	}
	windowEnd := normalizeEndMinutes(r.start, r.end)
	for _, m := range b.Members() {
		for _, p := range b.Patterns() {
			if !rangesOverlap(p.Start, p.NormalizedEnd(), r.start, windowEnd) {
				continue
			}
			for _, d := range b.Days() {
				if !b.eligible(m, p, d) {
					continue
				}
				b.AddPenalty(assignVarName(m.ID, p.ID, d.ISO), coeff)
			}
		}
	}
	return nil
}

// overtimeThresholdWeekRule adds ExtraRatePerMinute (already a per-minute
// currency rate, not a multiplier) for every minute a scoped member works
// beyond ThresholdMinutes in a given scheduling week, via an auxiliary
// overage variable: overage >= sum(workedMinutes) - threshold.
type overtimeThresholdWeekRule struct {
	name             string
	scope            EntityScope
	thresholdMinutes int
	extraRatePerMin  float64
}

func newOvertimeThresholdWeekRule(params map[string]any) (Rule, error) {
	name, err := paramString(params, "name", true)
	if err != nil {
		return nil, err
	}
	scope, err := parseEntityScopeParam(params)
	if err != nil {
		return nil, err
	}
	threshold, err := paramInt(params, "thresholdMinutes", 0)
	if err != nil {
		return nil, err
	}
	rate, err := paramFloat(params, "extraRatePerMinute", 0)
	if err != nil {
		return nil, err
	}
	return &overtimeThresholdWeekRule{name: name, scope: scope, thresholdMinutes: threshold, extraRatePerMin: rate}, nil
}

func (r *overtimeThresholdWeekRule) Name() string { return r.name }

func (r *overtimeThresholdWeekRule) Compile(b *Builder) error {
	if err := requireCostContext(b, r.name); err != nil {
		return err
	}
	members, err := b.ResolveMembers(r.scope)
	if err != nil {
		return err
	}
	for _, week := range weekWindows(b.Days(), b.WeekStartsOn()) {
		for _, m := range members {
			var terms []Term
			for _, d := range week {
				terms = append(terms, minutesTerms(b, m, d)...)
			}
			if len(terms) == 0 {
				continue
			}
			maxMinutes := len(week) * 24 * 60
			overageVar, err := b.NewIntVar(fmt.Sprintf("overage:%s:%s:%s", r.name, m.ID, week[0].ISO), 0, maxMinutes)
			if err != nil {
				continue
			}
			boundTerms := append(append([]Term{}, terms...), Term{Var: overageVar, Coeff: -1})
			b.AddLinear(boundTerms, ComparatorLE, r.thresholdMinutes)
			coeff := roundCoeff(b, r.name+":"+m.ID+":"+week[0].ISO, scaleCost(b, r.extraRatePerMin))
			if coeff != 0 {
				b.AddPenalty(overageVar, coeff)
			}
		}
	}
	return nil
}
