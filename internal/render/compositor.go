package render

// Compositor flattens a stack of layers into one screen's worth of
// optional cells. Layer 0 is the bottom; later layers (popups) stack on
// top.
type Compositor struct {
	width  int
	height int
}

func NewCompositor(width, height int) *Compositor {
	return &Compositor{width: width, height: height}
}

// Resize sets the merge region to new dimensions.
func (c *Compositor) Resize(width, height int) {
	c.width = width
	c.height = height
}

// Merge reduces the layer stack cell by cell. For each screen position
// the topmost layer with a non-empty cell is authoritative: if that
// cell is flagged changed it is pushed to the output row and the flag
// cleared, otherwise nil is pushed ("no repaint needed"). A lower
// layer's change can never force a repaint once a higher layer has
// claimed the cell.
func (c *Compositor) Merge(layers []*Layer) [][]*Cell {
	rows := make([][]*Cell, c.height)
	for y := 0; y < c.height; y++ {
		row := make([]*Cell, c.width)
		for x := 0; x < c.width; x++ {
			for i := len(layers) - 1; i >= 0; i-- {
				cell := layers[i].Get(x, y)
				if cell == nil {
					continue
				}
				if cell.Changed {
					cell.Changed = false
					row[x] = cell
				}
				break
			}
		}
		rows[y] = row
	}
	return rows
}
