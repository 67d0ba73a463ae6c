package wcag

import "bennypowers.dev/wcaglint/internal/collections"

// LabelRegistry holds the label "for" targets seen so far in one file scan.
// It only grows: an id recorded while checking one block stays visible to
// every block checked after it, and never to blocks checked before.
type LabelRegistry struct {
	ids collections.Set[string]
}

// NewLabelRegistry returns an empty registry
func NewLabelRegistry() *LabelRegistry {
	return &LabelRegistry{ids: collections.NewSet[string]()}
}

// Record adds label targets to the registry
func (r *LabelRegistry) Record(ids ...string) {
	r.ids.Add(ids...)
}

// Contains reports whether id was recorded
func (r *LabelRegistry) Contains(id string) bool {
	return r.ids.Has(id)
}

// Len returns the number of distinct recorded ids
func (r *LabelRegistry) Len() int {
	return r.ids.Len()
}

// ScanContext is the state shared by every Evaluate call of one file scan.
// Create one per file; never share it between files.
type ScanContext struct {
	Labels *LabelRegistry
}

// NewScanContext starts a file scan
func NewScanContext() *ScanContext {
	return &ScanContext{Labels: NewLabelRegistry()}
}
