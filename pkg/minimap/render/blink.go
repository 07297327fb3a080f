package render

// DefaultBlinkDuration is the blink period in ticks
const DefaultBlinkDuration = 80

// Blinker is the countdown shared by every blinking marker so they pulse in phase
type Blinker struct {
	count    int
	duration int
}

// NewBlinker creates a blinker with the given period in ticks
func NewBlinker(duration int) *Blinker {
	if duration <= 0 {
		duration = DefaultBlinkDuration
	}
	return &Blinker{count: duration, duration: duration}
}

// Tick advances the countdown, wrapping to the full period at zero
func (b *Blinker) Tick() {
	b.count--
	if b.count <= 0 {
		b.count = b.duration
	}
}

// Opacity returns the current blink alpha
func (b *Blinker) Opacity() uint8 {
	return uint8(255 * b.count / b.duration)
}
