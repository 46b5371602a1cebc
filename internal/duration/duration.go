// Package duration converts between {minutes, seconds, milliseconds} parts
// and a single time.Duration, and renders durations as MM:SS clock text.
package duration

import (
	"fmt"
	"time"
)

// Parts is a duration broken into whole minutes, seconds and milliseconds.
type Parts struct {
	Minutes      int64
	Seconds      int64
	Milliseconds int64
}

// FromParts returns minutes*60s + seconds*1s + milliseconds*1ms.
// Negative parts are not rejected; callers own their input.
func FromParts(p Parts) time.Duration {
	return time.Duration(p.Minutes)*time.Minute +
		time.Duration(p.Seconds)*time.Second +
		time.Duration(p.Milliseconds)*time.Millisecond
}

// ToParts splits d into minutes, then seconds, then milliseconds using floor
// division. Sub-millisecond precision is dropped. A negative d yields zero parts.
func ToParts(d time.Duration) Parts {
	if d <= 0 {
		return Parts{}
	}
	ms := d.Milliseconds()
	minutes := ms / int64(time.Minute/time.Millisecond)
	ms -= minutes * int64(time.Minute/time.Millisecond)
	seconds := ms / int64(time.Second/time.Millisecond)
	ms -= seconds * int64(time.Second/time.Millisecond)
	return Parts{Minutes: minutes, Seconds: seconds, Milliseconds: ms}
}

// Format renders d as zero-padded MM:SS. Minutes are not clamped to 60, so
// an hour and a second reads "61:01".
func Format(d time.Duration) string {
	p := ToParts(d)
	return fmt.Sprintf("%02d:%02d", p.Minutes, p.Seconds)
}
