// Package filter decides which symbols belong to the analyzed API surface.
//
// Filters are pure predicates over a symbol and a Config. They are built once
// with New, validated at construction, and are safe for concurrent use by
// independent runs.
package filter
