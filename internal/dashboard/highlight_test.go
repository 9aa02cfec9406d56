package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntensityBounds(t *testing.T) {
	// For any segment within any positive domain, intensity stays in [0.3, 1.0].
	for domain := 1; domain <= 20; domain++ {
		for idx := 0; idx <= domain+5; idx++ {
			v := Intensity(idx, domain)
			assert.GreaterOrEqual(t, v, 0.3, "idx=%d domain=%d", idx, domain)
			assert.LessOrEqual(t, v, 1.0, "idx=%d domain=%d", idx, domain)
		}
	}
}

func TestIntensityLinearScale(t *testing.T) {
	assert.InDelta(t, 0.3, Intensity(0, 6), 1e-9)
	assert.InDelta(t, 0.3+(3.0/6.0)*0.7, Intensity(3, 6), 1e-9)
	assert.InDelta(t, 1.0, Intensity(6, 6), 1e-9)
}

func TestReportHoverLastWins(t *testing.T) {
	ch := NewHighlightChannel()

	ch.ReportHover(2, 7)
	ch.ReportHover(5, 7)

	h := ch.Current()
	assert.Equal(t, 5, h.SegmentIndex)
	assert.InDelta(t, Intensity(5, 7), h.Intensity, 1e-9)
}

func TestReportHoverIgnoresInvalidDomain(t *testing.T) {
	ch := NewHighlightChannel()

	ch.ReportHover(3, 0)
	ch.ReportHover(-1, 7)

	assert.Equal(t, Highlight{}, ch.Current())
}

func TestDefaultStateWithoutProducer(t *testing.T) {
	ch := NewHighlightChannel()

	h := ch.Current()
	assert.Equal(t, 0, h.SegmentIndex)
	assert.Zero(t, h.Intensity)
}

func TestConsumerReceivesUpdates(t *testing.T) {
	ch := NewHighlightChannel()
	crystal := NewCrystal()
	ch.Subscribe(crystal)

	ch.ReportHover(4, 7)

	got := crystal.Highlight()
	assert.Equal(t, 4, got.SegmentIndex)
	assert.InDelta(t, Intensity(4, 7), got.Intensity, 1e-9)

	ch.Unsubscribe()
	ch.ReportHover(1, 7)
	assert.Equal(t, 4, crystal.Highlight().SegmentIndex, "unsubscribed consumer must not update")
}

func TestCrystalReaction(t *testing.T) {
	crystal := NewCrystal()

	// Zero-intensity default: base rotation, first palette color.
	assert.InDelta(t, 0.3, crystal.RotationSpeed(), 1e-9)
	assert.Equal(t, "#4d19e6", crystal.HighlightColor())

	crystal.OnHighlight(Highlight{SegmentIndex: 8, Intensity: 1.0})

	assert.InDelta(t, 0.8, crystal.RotationSpeed(), 1e-9)
	// Palette cycles: 8 mod 7 == 1.
	assert.Equal(t, "#00e676", crystal.HighlightColor())
}
