package editor

// Minimum size enforced for the anchor container on resize.
const (
	minPaneWidth  = 2
	minPaneHeight = 2
)

// PaneContainer is the geometric record wrapping a pane: its position
// and size within an enclosing bound. It never exceeds the bound; every
// mutation re-establishes that with Shrink.
type PaneContainer struct {
	X, Y int // top-left, screen coordinates
	W, H int
	MaxW int // enclosing bound (exclusive far corner)
	MaxH int
}

func NewPaneContainer(x, y, w, h, maxW, maxH int) *PaneContainer {
	p := &PaneContainer{X: x, Y: y, W: w, H: h, MaxW: maxW, MaxH: maxH}
	p.Shrink()
	return p
}

// Corners returns the top-left and (exclusive) bottom-right corner.
func (p *PaneContainer) Corners() (x1, y1, x2, y2 int) {
	return p.X, p.Y, p.X + p.W, p.Y + p.H
}

// Shrink reduces width then height one unit at a time until the far
// corner fits inside the enclosing bound. Terminates in O(size) steps
// and never goes below zero.
func (p *PaneContainer) Shrink() {
	for p.X+p.W > p.MaxW && p.W > 0 {
		p.W--
	}
	for p.Y+p.H > p.MaxH && p.H > 0 {
		p.H--
	}
}

// Resize rescales position and size proportionally to a new enclosing
// bound. The anchor container (position zero on an axis) keeps a
// configured minimum so a shrinking terminal cannot squeeze it away.
func (p *PaneContainer) Resize(newMaxW, newMaxH int) {
	if p.MaxW > 0 {
		fw := float64(newMaxW) / float64(p.MaxW)
		p.X = int(float64(p.X) * fw)
		p.W = int(float64(p.W) * fw)
	}
	if p.MaxH > 0 {
		fh := float64(newMaxH) / float64(p.MaxH)
		p.Y = int(float64(p.Y) * fh)
		p.H = int(float64(p.H) * fh)
	}
	if p.X == 0 && p.W < minPaneWidth {
		p.W = minPaneWidth
	}
	if p.Y == 0 && p.H < minPaneHeight {
		p.H = minPaneHeight
	}
	p.MaxW = newMaxW
	p.MaxH = newMaxH
	p.Shrink()
}

// Combine grows this container to the union rectangle when other is
// edge-adjacent on exactly one axis with matching extents on the
// perpendicular axis. Tests all four directions. Returns false and
// mutates nothing for non-adjacent rectangles; callers use that to
// decide whether a closed pane's space can be absorbed or the layout
// must be re-split.
func (p *PaneContainer) Combine(other *PaneContainer) bool {
	sameRow := p.Y == other.Y && p.H == other.H
	sameCol := p.X == other.X && p.W == other.W

	switch {
	case sameRow && other.X == p.X+p.W:
		// other is flush to our right.
		p.W += other.W
	case sameRow && other.X+other.W == p.X:
		// other is flush to our left.
		p.X = other.X
		p.W += other.W
	case sameCol && other.Y == p.Y+p.H:
		// other is flush below.
		p.H += other.H
	case sameCol && other.Y+other.H == p.Y:
		// other is flush above.
		p.Y = other.Y
		p.H += other.H
	default:
		return false
	}
	p.Shrink()
	return true
}

// Contains reports whether a screen coordinate falls inside the
// container.
func (p *PaneContainer) Contains(x, y int) bool {
	return x >= p.X && x < p.X+p.W && y >= p.Y && y < p.Y+p.H
}
