package lint

import (
	"fmt"
	"sort"
	"sync"
)

// globalRegistry is the single global registry for all lint rules.
var globalRegistry = &Registry{
	rules: make(map[string]RuleDef),
}

// Registry stores registered rule definitions. It is filled from init()
// and only read while a run is in progress.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]RuleDef // keyed by ID
}

// Register adds a rule to the global registry.
// Call this from init() functions in rule packages. An invalid or
// duplicate definition is a programming error and panics.
func Register(rule RuleDef) {
	if err := rule.Validate(); err != nil {
		panic(fmt.Sprintf("lint: %v", err))
	}
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	if _, dup := globalRegistry.rules[rule.ID]; dup {
		panic(fmt.Sprintf("lint: rule %s registered twice", rule.ID))
	}
	globalRegistry.rules[rule.ID] = rule
}

// AllRules returns all registered rules sorted by ID.
func AllRules() []RuleDef {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	rules := make([]RuleDef, 0, len(globalRegistry.rules))
	for _, rule := range globalRegistry.rules {
		rules = append(rules, rule)
	}
	sortDefs(rules)
	return rules
}

// GetByID returns a rule by its ID.
func GetByID(id string) (RuleDef, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	rule, ok := globalRegistry.rules[id]
	return rule, ok
}

// GetByConfigKey returns the rule whose [checkers] key is key.
func GetByConfigKey(key string) (RuleDef, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	for _, rule := range globalRegistry.rules {
		if rule.ConfigKey() == key {
			return rule, true
		}
	}
	return RuleDef{}, false
}

// GetByGroup returns all rules in a specific group, sorted by ID.
func GetByGroup(group string) []RuleDef {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	var rules []RuleDef
	for _, rule := range globalRegistry.rules {
		if rule.Group == group {
			rules = append(rules, rule)
		}
	}
	sortDefs(rules)
	return rules
}

// Groups returns the distinct rule groups, sorted.
func Groups() []string {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	seen := make(map[string]bool)
	var groups []string
	for _, rule := range globalRegistry.rules {
		if !seen[rule.Group] {
			seen[rule.Group] = true
			groups = append(groups, rule.Group)
		}
	}
	sort.Strings(groups)
	return groups
}

// Count returns the number of registered rules.
func Count() int {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return len(globalRegistry.rules)
}

// Clear removes all registered rules. Used for testing.
func Clear() {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.rules = make(map[string]RuleDef)
}

func sortDefs(defs []RuleDef) {
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
}
