package dashboard

import "sync"

// crystalPalette is the emissive highlight cycle of the reactive display,
// indexed by segment modulo its length.
var crystalPalette = []string{
	"#4d19e6",
	"#00e676",
	"#7c4dff",
	"#ffd740",
	"#ff4081",
	"#00bcd4",
	"#e040fb",
}

const baseRotationSpeed = 0.3

// Crystal models the reactive 3D display driven by the highlight channel:
// its rotation speed and highlight color follow the latest hover. With no
// producer mounted it holds the zero-intensity state indefinitely.
type Crystal struct {
	mu        sync.Mutex
	highlight Highlight
}

func NewCrystal() *Crystal {
	return &Crystal{}
}

func (c *Crystal) OnHighlight(h Highlight) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.highlight = h
}

// RotationSpeed is the base speed plus half the hover intensity.
func (c *Crystal) RotationSpeed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return baseRotationSpeed + c.highlight.Intensity*0.5
}

// HighlightColor cycles through the palette by segment index.
func (c *Crystal) HighlightColor() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.highlight.SegmentIndex % len(crystalPalette)
	if i < 0 {
		i += len(crystalPalette)
	}
	return crystalPalette[i]
}

func (c *Crystal) Highlight() Highlight {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.highlight
}
