// Package chime plays short audio cues alongside printed brew notifications.
package chime

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*Notifier)(nil)

// Sink plays PCM audio. *Player is the production sink.
type Sink interface {
	Play(pcm []byte) error
	Stop()
}

// Option configures the notifier.
type Option func(*Notifier)

// WithFrequency sets the tone pitch in Hz.
func WithFrequency(hz float64) Option {
	return func(n *Notifier) {
		n.freq = hz
	}
}

// WithLength sets the length of a single beep.
func WithLength(d time.Duration) Option {
	return func(n *Notifier) {
		n.length = d
	}
}

// Notifier wraps a text notifier and plays a beep for every message:
// one beep for a step cue, three higher beeps for an urgent one.
// Playback happens on a background goroutine started by Start.
type Notifier struct {
	text   domain.Notifier
	sink   Sink
	log    *logger.Logger
	freq   float64
	length time.Duration

	queue chan []byte

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewNotifier creates a notifier that prints through text and beeps through sink.
func NewNotifier(text domain.Notifier, sink Sink, log *logger.Logger, opts ...Option) *Notifier {
	n := &Notifier{
		text:   text,
		sink:   sink,
		log:    log,
		freq:   880,
		length: 180 * time.Millisecond,
		queue:  make(chan []byte, 8),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Start begins the playback loop. Non-blocking.
func (n *Notifier) Start(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.running {
		return
	}
	childCtx, cancel := context.WithCancel(ctx)
	n.cancel = cancel
	n.done = make(chan struct{})
	n.running = true
	go n.loop(childCtx, n.done)
}

// Stop halts playback and waits for the loop to exit.
func (n *Notifier) Stop() {
	n.mu.Lock()
	if !n.running {
		n.mu.Unlock()
		return
	}
	n.cancel()
	n.running = false
	done := n.done
	n.mu.Unlock()

	n.sink.Stop()
	<-done
}

func (n *Notifier) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case pcm := <-n.queue:
			if err := n.sink.Play(pcm); err != nil {
				n.log.Error("chime: playback: %v", err)
			}
		}
	}
}

// Notify prints the message and queues a single beep.
func (n *Notifier) Notify(ctx context.Context, message string) error {
	if err := n.text.Notify(ctx, message); err != nil {
		return err
	}
	n.enqueue(Tone(n.freq, n.length, 0.6))
	return nil
}

// NotifyUrgent prints the message and queues three higher beeps.
func (n *Notifier) NotifyUrgent(ctx context.Context, message string) error {
	if err := n.text.NotifyUrgent(ctx, message); err != nil {
		return err
	}
	n.enqueue(Pattern(n.freq*1.5, n.length, n.length/2, 3))
	return nil
}

// enqueue drops the cue when the queue is full rather than blocking the caller.
func (n *Notifier) enqueue(pcm []byte) {
	select {
	case n.queue <- pcm:
	default:
		n.log.Warn("chime: queue full, dropping cue")
	}
}
