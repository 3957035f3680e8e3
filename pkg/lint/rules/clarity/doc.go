// Package clarity contains rules about how clearly instructions are
// phrased for an agent.
//
// Rules in this package:
//   - vague-directive: hedging phrases that leave the agent guessing
//   - placeholder-text: TODO markers and unfinished enumerations
//   - negative-only-framing: files made mostly of prohibitions (strict)
//   - missing-verification: procedural sections without success criteria (strict)
//   - agent-guidelines: common gaps in agent definition files (strict)
package clarity
