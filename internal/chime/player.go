package chime

import (
	"bytes"
	"errors"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/hammamikhairi/ottobrew/internal/logger"
)

// Output format of every generated tone: 16-bit signed little-endian mono.
const (
	SampleRate   = 24000
	ChannelCount = 1
)

// playPoll is how often Play checks whether oto has drained the buffer.
const playPoll = 5 * time.Millisecond

var _ Sink = (*Player)(nil)

// Player is the oto-backed Sink. One oto context exists per process, so
// create a single Player and share it.
type Player struct {
	ctx    *oto.Context
	log    *logger.Logger
	volume float64

	mu      sync.Mutex
	current *oto.Player
}

// NewPlayer opens the system audio device. volume is clamped to [0, 1].
// Returns an error when no device is available.
func NewPlayer(log *logger.Logger, volume float64) (*Player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Debug("chime: audio device ready (%d Hz, %d ch)", SampleRate, ChannelCount)
	return &Player{ctx: ctx, log: log, volume: max(0, min(1, volume))}, nil
}

// Play writes pcm to the device and blocks until it has been played or
// Stop interrupts it.
func (p *Player) Play(pcm []byte) error {
	if len(pcm) == 0 {
		return nil
	}
	op := p.ctx.NewPlayer(bytes.NewReader(pcm))
	op.SetVolume(p.volume)

	p.mu.Lock()
	p.current = op
	p.mu.Unlock()

	op.Play()
	ticker := time.NewTicker(playPoll)
	for op.IsPlaying() {
		<-ticker.C
	}
	ticker.Stop()

	p.mu.Lock()
	if p.current == op {
		p.current = nil
	}
	p.mu.Unlock()

	return errors.Join(op.Err(), op.Close())
}

// Stop pauses whatever is playing. Safe with nothing playing.
func (p *Player) Stop() {
	p.mu.Lock()
	op := p.current
	p.mu.Unlock()

	if op != nil {
		op.Pause()
		p.log.Debug("chime: playback interrupted")
	}
}
