package entities

// Breakpoint names a screen-width tier. Each tier has its own grid column
// count and its own layout list.
type Breakpoint string

const (
	BreakpointLG Breakpoint = "lg"
	BreakpointMD Breakpoint = "md"
	BreakpointSM Breakpoint = "sm"
	BreakpointXS Breakpoint = "xs"
)

// Breakpoints lists all tiers in descending width order.
var Breakpoints = []Breakpoint{BreakpointLG, BreakpointMD, BreakpointSM, BreakpointXS}

// BreakpointCols maps each tier to its grid column count.
var BreakpointCols = map[Breakpoint]int{
	BreakpointLG: 24,
	BreakpointMD: 20,
	BreakpointSM: 12,
	BreakpointXS: 8,
}

// LayoutEntry places one widget on the grid for a single breakpoint.
// Invariant: W >= MinW and H >= MinH, enforced on every load and merge even
// against stale persisted data.
type LayoutEntry struct {
	I    string `json:"i"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	W    int    `json:"w"`
	H    int    `json:"h"`
	MinW int    `json:"minW"`
	MinH int    `json:"minH"`
	MaxW int    `json:"maxW"`
	MaxH int    `json:"maxH"`
}

// Clamp raises W and H to the entry's own minimums.
func (e *LayoutEntry) Clamp() {
	if e.W < e.MinW {
		e.W = e.MinW
	}
	if e.H < e.MinH {
		e.H = e.MinH
	}
}

// Layouts holds the full grid arrangement across breakpoints.
type Layouts map[Breakpoint][]LayoutEntry

// Valid reports whether every entry satisfies the size invariant.
func (l Layouts) Valid() bool {
	for _, entries := range l {
		for _, e := range entries {
			if e.W < e.MinW || e.H < e.MinH {
				return false
			}
		}
	}
	return true
}
