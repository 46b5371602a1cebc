package chime

import (
	"encoding/binary"
	"math"
	"time"
)

// fadeLength is the attack/release ramp applied to every tone.
const fadeLength = 8 * time.Millisecond

// Tone renders a sine wave of freq Hz lasting d as mono signed 16-bit
// little-endian PCM at SampleRate, with short linear fades at both ends.
func Tone(freq float64, d time.Duration, volume float64) []byte {
	n := int(float64(SampleRate) * d.Seconds())
	if n <= 0 {
		return nil
	}
	volume = math.Max(0, math.Min(1, volume))
	fade := int(float64(SampleRate) * fadeLength.Seconds())
	if fade*2 > n {
		fade = n / 2
	}

	buf := make([]byte, n*2)
	for i := 0; i < n; i++ {
		gain := volume
		switch {
		case fade > 0 && i < fade:
			gain *= float64(i) / float64(fade)
		case fade > 0 && i >= n-fade:
			gain *= float64(n-1-i) / float64(fade)
		}
		v := math.Sin(2 * math.Pi * freq * float64(i) / SampleRate)
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(int16(v*gain*math.MaxInt16)))
	}
	return buf
}

// Silence returns d of zeroed PCM.
func Silence(d time.Duration) []byte {
	n := int(float64(SampleRate) * d.Seconds())
	if n <= 0 {
		return nil
	}
	return make([]byte, n*2)
}

// Pattern joins count tones separated by gaps of silence.
func Pattern(freq float64, d, gap time.Duration, count int) []byte {
	var out []byte
	for i := 0; i < count; i++ {
		if i > 0 {
			out = append(out, Silence(gap)...)
		}
		out = append(out, Tone(freq, d, 0.6)...)
	}
	return out
}
