package rules

// Import all rule subpackages to register them with the global registry.
// This file triggers all init() functions in the rule packages.
import (
	// Cross-file rules live next to the corpus they consume.
	_ "github.com/leapstack-labs/spectralint/pkg/lint/crossfile"

	// Per-file rule groups - each registers its rules via init()
	_ "github.com/leapstack-labs/spectralint/pkg/lint/rules/clarity"
	_ "github.com/leapstack-labs/spectralint/pkg/lint/rules/references"
	_ "github.com/leapstack-labs/spectralint/pkg/lint/rules/security"
	_ "github.com/leapstack-labs/spectralint/pkg/lint/rules/structure"
)
