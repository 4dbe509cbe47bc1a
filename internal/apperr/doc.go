// Package apperr defines shared error sentinels for the liveness engine.
// It is a leaf package with no internal imports, allowing any package
// (including low-level infrastructure like dnsprobe) to use the sentinels
// without creating import cycles.
package apperr
