package lint

// RuleInfo provides metadata about a rule for documentation/tooling.
type RuleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Group       string   `json:"group"`
	Description string   `json:"description"`
	Severity    Severity `json:"default_severity"`
	Kind        string   `json:"kind"`
	StrictOnly  bool     `json:"strict_only"`
	ConfigKey   string   `json:"config_key"`
	ConfigKeys  []string `json:"options,omitempty"`

	Rationale   string `json:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty"`
	Fix         string `json:"fix,omitempty"`
}

// GetRuleInfo extracts metadata from a definition.
func GetRuleInfo(d RuleDef) RuleInfo {
	return RuleInfo{
		ID:          d.ID,
		Name:        d.Name,
		Group:       d.Group,
		Description: d.Description,
		Severity:    d.Severity,
		Kind:        d.Kind.String(),
		StrictOnly:  d.StrictOnly,
		ConfigKey:   d.ConfigKey(),
		ConfigKeys:  d.ConfigKeys,
		Rationale:   d.Rationale,
		BadExample:  d.BadExample,
		GoodExample: d.GoodExample,
		Fix:         d.Fix,
	}
}
