package wall

// Plane carries the half-space parameters returned by a custom wall's
// Cut callback. The kept half-space is Nx*x + Ny*y + Nz*z <= D, the
// same sign convention the built-in walls use.
type Plane struct {
	Nx float64 `json:"nx"`
	Ny float64 `json:"ny"`
	Nz float64 `json:"nz"`
	D  float64 `json:"d"`
}

// Hooks is the host-callback pair behind a custom wall. Both callbacks
// are invoked synchronously on the caller's goroutine, once per
// candidate clipping test during cell construction. They must be
// reentrant-safe and must not mutate the context that invokes them.
//
// A nil Inside means the wall contains every point; a nil Cut means
// the wall never clips.
type Hooks struct {
	// Inside reports whether the given point lies on the kept side.
	Inside func(x, y, z float64) bool

	// Cut returns the clipping plane for the cell of the site at the
	// given point, or ok=false when no cut applies.
	Cut func(x, y, z float64) (p Plane, ok bool)
}
