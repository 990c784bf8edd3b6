// Package util provides small shared helpers: human-readable formatting,
// size parsing and generic slice operations.
package util
