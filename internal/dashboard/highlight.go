package dashboard

import "sync"

const (
	minIntensity = 0.3
	maxIntensity = 1.0
)

// Highlight is the transient hover state a chart reports: which segment the
// pointer is over and how strongly the consumer should react.
type Highlight struct {
	SegmentIndex int
	Intensity    float64
}

// HighlightConsumer receives hover updates. Implementations must return
// quickly; updates arrive at pointer-move rate and are never queued.
type HighlightConsumer interface {
	OnHighlight(Highlight)
}

// HighlightChannel couples chart hover events to a single reactive
// consumer. Last hover wins; when nothing has hovered yet the channel holds
// the zero state.
type HighlightChannel struct {
	mu       sync.Mutex
	current  Highlight
	consumer HighlightConsumer
}

func NewHighlightChannel() *HighlightChannel {
	return &HighlightChannel{}
}

// Subscribe installs the single consumer, replacing any previous one.
func (c *HighlightChannel) Subscribe(consumer HighlightConsumer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.consumer = consumer
}

func (c *HighlightChannel) Unsubscribe() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.consumer = nil
}

// ReportHover records a hover over segmentIndex in a chart with
// domainLength points and notifies the consumer. Reports with a
// non-positive domain are ignored.
func (c *HighlightChannel) ReportHover(segmentIndex, domainLength int) {
	if domainLength <= 0 || segmentIndex < 0 {
		return
	}

	h := Highlight{
		SegmentIndex: segmentIndex,
		Intensity:    Intensity(segmentIndex, domainLength),
	}

	c.mu.Lock()
	c.current = h
	consumer := c.consumer
	c.mu.Unlock()

	if consumer != nil {
		consumer.OnHighlight(h)
	}
}

// Current returns the latest highlight, or the zero state if no hover has
// occurred.
func (c *HighlightChannel) Current() Highlight {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Intensity scales linearly with the segment's position within the chart
// domain, clamped to [0.3, 1.0].
func Intensity(segmentIndex, domainLength int) float64 {
	v := minIntensity + (float64(segmentIndex)/float64(domainLength))*0.7
	if v < minIntensity {
		return minIntensity
	}
	if v > maxIntensity {
		return maxIntensity
	}
	return v
}
