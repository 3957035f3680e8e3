// Package structure contains rules about the shape of an instruction file:
// its size, heading outline and overall content.
package structure
