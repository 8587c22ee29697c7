package multitrack

// TimeWarper maps original track times to new times. Editing operations
// that change the duration of a region use a warper to describe where
// audio after the region ends up.
type TimeWarper interface {
	// Warp returns the new time for an original time t.
	Warp(t float64) float64
}

// IdentityWarper leaves times unchanged.
type IdentityWarper struct{}

// Warp returns t unchanged.
func (IdentityWarper) Warp(t float64) float64 { return t }

// LinearWarper maps the interval [T0, T1] linearly onto [W0, W1] and
// extrapolates with the same slope outside it.
type LinearWarper struct {
	T0, T1 float64
	W0, W1 float64
}

// Warp applies the linear mapping.
func (w LinearWarper) Warp(t float64) float64 {
	if w.T1 == w.T0 {
		return w.W0
	}
	return w.W0 + (t-w.T0)*(w.W1-w.W0)/(w.T1-w.T0)
}

// PasteWarper describes a paste that replaced material ending at OldT1
// with material ending at NewT1: times before OldT1 are unchanged, later
// times shift by the difference.
type PasteWarper struct {
	OldT1 float64
	NewT1 float64
}

// Warp applies the paste shift.
func (w PasteWarper) Warp(t float64) float64 {
	if t < w.OldT1 {
		return t
	}
	return t + w.NewT1 - w.OldT1
}
