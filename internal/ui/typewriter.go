package ui

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"
)

// Typewriter reveals text progressively, one rune at a time. The reveal is a
// pure output effect: the source string is never modified.
type Typewriter struct {
	w        io.Writer
	speed    time.Duration
	variance time.Duration
	enabled  bool
}

// NewTypewriter creates a typewriter writing to w. When disabled (or with a
// non-positive speed) Print emits the text in one write.
func NewTypewriter(w io.Writer, speed, variance time.Duration, enabled bool) *Typewriter {
	return &Typewriter{
		w:        w,
		speed:    speed,
		variance: variance,
		enabled:  enabled,
	}
}

// Print writes text to the underlying writer, rune by rune when enabled
func (t *Typewriter) Print(text string) {
	if !t.enabled || t.speed <= 0 {
		fmt.Fprint(t.w, text)
		return
	}

	for _, r := range text {
		fmt.Fprint(t.w, string(r))
		d := t.speed
		if t.variance > 0 {
			d += time.Duration(rand.Int64N(int64(t.variance)))
		}
		time.Sleep(d)
	}
}
