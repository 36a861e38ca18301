package shiftsat

import "fmt"

// Small typed-extraction helpers for the map[string]any parameter bags that
// config-driven rule construction (NewRule) passes around. These mirror the
// permissive decoding viper already does for the CLI's own config layer.

func paramString(params map[string]any, key string, required bool) (string, error) {
	v, ok := params[key]
	if !ok {
		if required {
			return "", fmt.Errorf("missing required parameter %q", key)
		}
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("parameter %q must be a string, got %T", key, v)
	}
	return s, nil
}

func paramInt(params map[string]any, key string, def int) (int, error) {
	v, ok := params[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("parameter %q must be a number, got %T", key, v)
	}
}

func paramFloat(params map[string]any, key string, def float64) (float64, error) {
	v, ok := params[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("parameter %q must be a number, got %T", key, v)
	}
}

func paramStringSlice(params map[string]any, key string) ([]string, error) {
	v, ok := params[key]
	if !ok {
		return nil, nil
	}
	raw, ok := v.([]any)
	if !ok {
		if ss, ok := v.([]string); ok {
			return ss, nil
		}
		return nil, fmt.Errorf("parameter %q must be a list, got %T", key, v)
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("parameter %q entries must be strings, got %T", key, item)
		}
		out = append(out, s)
	}
	return out, nil
}

func paramBool(params map[string]any, key string, def bool) (bool, error) {
	v, ok := params[key]
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("parameter %q must be a bool, got %T", key, v)
	}
	return b, nil
}

// parseEntityScopeParam reads an optional nested "scope" bag ({members,
// roles, skills}) into an EntityScope; absent entirely, it resolves to the
// full member universe.
func parseEntityScopeParam(params map[string]any) (EntityScope, error) {
	raw, ok := params["scope"]
	if !ok {
		return EntityScope{}, nil
	}
	bag, ok := raw.(map[string]any)
	if !ok {
		return EntityScope{}, fmt.Errorf("parameter \"scope\" must be an object, got %T", raw)
	}
	members, err := paramStringSlice(bag, "members")
	if err != nil {
		return EntityScope{}, err
	}
	roles, err := paramStringSlice(bag, "roles")
	if err != nil {
		return EntityScope{}, err
	}
	skills, err := paramStringSlice(bag, "skills")
	if err != nil {
		return EntityScope{}, err
	}
	return EntityScope{Members: members, Roles: roles, Skills: skills}, nil
}

// parseTimeScopeParam reads an optional nested "timeScope" bag into a
// TimeScope; absent entirely, it resolves to the full horizon.
func parseTimeScopeParam(params map[string]any) (TimeScope, error) {
	raw, ok := params["timeScope"]
	if !ok {
		return TimeScope{}, nil
	}
	bag, ok := raw.(map[string]any)
	if !ok {
		return TimeScope{}, fmt.Errorf("parameter \"timeScope\" must be an object, got %T", raw)
	}
	start, err := paramString(bag, "dateRangeStart", false)
	if err != nil {
		return TimeScope{}, err
	}
	end, err := paramString(bag, "dateRangeEnd", false)
	if err != nil {
		return TimeScope{}, err
	}
	dates, err := paramStringSlice(bag, "specificDates")
	if err != nil {
		return TimeScope{}, err
	}
	dow, err := paramStringSlice(bag, "dayOfWeek")
	if err != nil {
		return TimeScope{}, err
	}
	return TimeScope{DateRangeStart: start, DateRangeEnd: end, SpecificDates: dates, DayOfWeek: dow}, nil
}

// parsePriorityParam reads a "priority" string parameter ("low", "medium",
// "high", "mandatory"), defaulting to PriorityMedium.
func parsePriorityParam(params map[string]any) (Priority, error) {
	s, err := paramString(params, "priority", false)
	if err != nil {
		return 0, err
	}
	switch s {
	case "", "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	case "high":
		return PriorityHigh, nil
	case "mandatory":
		return PriorityMandatory, nil
	default:
		return 0, fmt.Errorf("parameter \"priority\" must be one of low/medium/high/mandatory, got %q", s)
	}
}
