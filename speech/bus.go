// Package speech bridges the terminal session to spoken input and output:
// realtime transcription of microphone audio over a WebSocket, and synthesis
// of AI answers through the ElevenLabs text-to-speech API.
package speech

import "sync"

// EventKind distinguishes utterance lifecycle events.
type EventKind string

const (
	// EventSpeechStart fires when playback of an utterance begins.
	EventSpeechStart EventKind = "start"
	// EventSpeechEnd fires exactly once when playback ends, errors, or is
	// cancelled.
	EventSpeechEnd EventKind = "end"
)

// Event describes an utterance lifecycle transition.
type Event struct {
	Kind EventKind
	Text string
	Lang string // BCP-47 locale of the spoken text
}

const subscriberBuffer = 16

// Bus fans events out to any number of subscribers. Publishing never blocks:
// a subscriber whose buffer is full misses the event. Delivery order across
// subscribers is unspecified.
type Bus struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe registers a listener. The returned cancel func removes the
// subscription and closes the channel; it is safe to call more than once.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan Event, subscriberBuffer)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber with buffer room.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
