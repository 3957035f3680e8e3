// Package security contains rules for content that is unsafe to hand to an
// agent: secrets, destructive commands and injection vectors.
package security
