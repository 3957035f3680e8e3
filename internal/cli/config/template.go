package config

// DefaultFileName is the config file written by init.
const DefaultFileName = ".spectralintrc.toml"

// DefaultTOML is the commented config written by init. Every active
// setting matches the built-in defaults.
const DefaultTOML = `# spectralint configuration

# Which files to scan (glob patterns, case-insensitive).
# Set to ["**/*.md"] to scan all markdown files.
include = ["CLAUDE.md", "AGENTS.md", ".claude/**", ".github/copilot-instructions.md"]

# Directories to ignore when scanning
ignore = ["node_modules", ".git", "target"]

# Individual files to skip entirely (glob patterns)
# ignore_files = ["changelog.md", "docs/history.md"]

# Files treated as historical (dead and stale references are not reported,
# enum drift skips them)
# historical_files = ["changelog*", "retro*", "history*", "archive*", "restart*"]

# Enable opinionated checkers (heading-hierarchy, emoji-density, ...)
strict = false

# Minimum severity that makes "spectralint check" exit non-zero
fail_on = "error"

[checkers.dead_reference]
enabled = true

[checkers.vague_directive]
enabled = true
# extra_patterns = ["(?i)\\bmaybe\\b", "(?i)\\bprobably\\b"]
# scope = ["CLAUDE.md", "AGENTS.md", ".claude/**"]

[checkers.naming_inconsistency]
enabled = true
# min_length = 3
# scope = ["CLAUDE.md", "AGENTS.md", ".claude/**"]

[checkers.enum_drift]
enabled = true
# scope = ["CLAUDE.md", "AGENTS.md", ".claude/**"]

[checkers.file_size]
# warn_lines = 300
# max_lines = 500

# Custom regex patterns:
# [[checkers.custom_patterns]]
# name = "todo-comment"
# pattern = "(?i)\\bTODO\\b"
# severity = "warning"
# message = "TODO comment found"
`
