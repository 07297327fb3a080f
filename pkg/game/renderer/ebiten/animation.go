package ebiten

import (
	"image/color"
	"math"
	"time"
)

// easeInOut maps linear progress in [0, 1] onto a smooth curve
func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// pulse returns a 0..1 sine wave with the given period in milliseconds
func pulse(period int64) float64 {
	phase := float64(time.Now().UnixMilli()%period) / float64(period)
	return (math.Sin(phase*2*math.Pi) + 1) / 2
}

// getPulsingPlayerColor brightens and dims the player icon while riding
func (e *EbitenRenderer) getPulsingPlayerColor() color.Color {
	if !e.session.Player().IsRiding() {
		return colorPlayer
	}
	return applyAlpha(colorPlayer, 0.5+0.5*pulse(1200))
}

// messageAlpha fades the status message out over its last quarter
func (e *EbitenRenderer) messageAlpha() float64 {
	if e.lastMessage == "" {
		return 0
	}
	elapsed := time.Now().UnixMilli() - e.lastMessageTime
	if elapsed >= messageDuration {
		return 0
	}
	fadeStart := int64(messageDuration * 3 / 4)
	if elapsed < fadeStart {
		return 1
	}
	return 1 - easeInOut(float64(elapsed-fadeStart)/float64(messageDuration-fadeStart))
}
