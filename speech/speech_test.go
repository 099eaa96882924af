package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"testing"
	"time"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe()
	defer cancel()

	bus.Publish(Event{Kind: EventSpeechStart, Text: "hello", Lang: "en-US"})

	select {
	case ev := <-ch:
		if ev.Kind != EventSpeechStart || ev.Text != "hello" {
			t.Errorf("got %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestBus_SlowSubscriberDrops(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe()
	defer cancel()

	// Overfill the buffer. Publish must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*2; i++ {
			bus.Publish(Event{Kind: EventSpeechStart})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}
	if len(ch) != subscriberBuffer {
		t.Errorf("buffered %d events, want %d", len(ch), subscriberBuffer)
	}
}

func TestBus_CancelIsIdempotent(t *testing.T) {
	bus := NewBus()
	_, cancel := bus.Subscribe()
	cancel()
	cancel()

	// Publishing after cancel must not panic on the closed channel.
	bus.Publish(Event{Kind: EventSpeechEnd})
}

func TestRankVoices(t *testing.T) {
	voices := []Voice{
		{ID: "1", Name: "Hans", Lang: "de-DE", Gender: "male"},
		{ID: "2", Name: "Aria", Lang: "en-US", Gender: "female"},
		{ID: "3", Name: "Guy", Lang: "en-US", Gender: "male"},
		{ID: "4", Name: "Libby", Lang: "en-GB", Gender: "female"},
		{ID: "5", Name: "Plain", Lang: "en-US"},
	}

	tests := []struct {
		name    string
		locale  string
		gender  string
		wantTop string
		wantLen int
	}{
		{"female en-US", "en-US", GenderFemale, "2", 4},
		{"male en-US", "en-US", GenderMale, "3", 4},
		{"no hint prefers locale", "en-US", "", "2", 4},
		{"other locale same language", "en-GB", GenderFemale, "4", 4},
		{"language with no voices", "ur-PK", GenderFemale, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RankVoices(voices, tt.locale, tt.gender)
			if len(got) != tt.wantLen {
				t.Fatalf("ranked %d voices, want %d", len(got), tt.wantLen)
			}
			if tt.wantLen > 0 && got[0].ID != tt.wantTop {
				t.Errorf("top voice = %s (%s), want %s", got[0].ID, got[0].Name, tt.wantTop)
			}
		})
	}
}

func TestRankVoices_DegradesToUnlabeled(t *testing.T) {
	voices := []Voice{
		{ID: "m", Name: "Guy", Lang: "en-US", Gender: "male"},
		{ID: "n", Name: "Plain", Lang: "en-US"},
	}
	got := RankVoices(voices, "en-US", GenderFemale)
	if len(got) != 2 {
		t.Fatalf("ranked %d voices, want 2", len(got))
	}
	if got[0].ID != "n" {
		t.Errorf("top voice = %s, want the unlabeled voice over the opposite gender", got[0].ID)
	}
}

func TestVoiceGender_NameKeywords(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Microsoft Zira Female", GenderFemale},
		{"English Male Voice", GenderMale},
		{"Aria", ""},
	}
	for _, tt := range tests {
		if got := voiceGender(Voice{Name: tt.name}); got != tt.want {
			t.Errorf("voiceGender(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestRecognizer_TranscriptMerge(t *testing.T) {
	r, err := NewRecognizer("test-key")
	if err != nil {
		t.Fatal(err)
	}

	r.applyTranscript("hel", false)
	if got := r.Transcript(); got != "hel" {
		t.Errorf("after interim: %q", got)
	}

	r.applyTranscript("hello", false)
	if got := r.Transcript(); got != "hello" {
		t.Errorf("interim should replace interim: %q", got)
	}

	r.applyTranscript("hello world", true)
	if got := r.Transcript(); got != "hello world" {
		t.Errorf("final should replace the interim it refines: %q", got)
	}

	r.applyTranscript("how are", false)
	if got := r.Transcript(); got != "hello world how are" {
		t.Errorf("new interim should append after finals: %q", got)
	}

	r.applyTranscript("how are you", true)
	if got := r.Transcript(); got != "hello world how are you" {
		t.Errorf("second final: %q", got)
	}
}

func TestRecognizer_RequiresAPIKey(t *testing.T) {
	if _, err := NewRecognizer(""); err == nil {
		t.Error("NewRecognizer() should fail without an API key")
	}
}

func TestPrimaryLanguage(t *testing.T) {
	tests := []struct{ in, want string }{
		{"en-US", "en"},
		{"ar-SA", "ar"},
		{"de", "de"},
	}
	for _, tt := range tests {
		if got := primaryLanguage(tt.in); got != tt.want {
			t.Errorf("primaryLanguage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSynthesizer_LoadVoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("xi-api-key") != "test-key" {
			t.Error("missing xi-api-key header")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"voices": []map[string]any{
				{
					"voice_id": "v1",
					"name":     "Aria",
					"labels":   map[string]string{"gender": "female"},
					"verified_languages": []map[string]string{
						{"language": "en", "locale": "en-US"},
						{"language": "es", "locale": "es-ES"},
					},
				},
				{
					"voice_id": "v2",
					"name":     "Hans",
					"labels":   map[string]string{"gender": "male", "language": "de"},
				},
			},
		})
	}))
	defer server.Close()

	synth, err := NewSynthesizer("test-key", NewBus(), WithSynthBaseURL(server.URL))
	if err != nil {
		t.Fatal(err)
	}
	if err := synth.LoadVoices(context.Background()); err != nil {
		t.Fatalf("LoadVoices() error: %v", err)
	}

	voices := synth.Voices()
	if len(voices) != 3 {
		t.Fatalf("loaded %d voice entries, want 3 (one per verified locale)", len(voices))
	}
	if voices[0].Lang != "en-US" || voices[1].Lang != "es-ES" {
		t.Errorf("locales = %s, %s", voices[0].Lang, voices[1].Lang)
	}
	if voices[2].Lang != "de" {
		t.Errorf("label fallback locale = %s, want de", voices[2].Lang)
	}
}

func stubPlayer(ctx context.Context) *exec.Cmd {
	// Consumes stdin and exits immediately.
	return exec.CommandContext(ctx, "cat")
}

func TestSynthesizer_SpeakEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("xi-api-key") != "test-key" {
			t.Error("missing xi-api-key header")
		}
		var req synthesizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Text != "hello" {
			t.Errorf("text = %q", req.Text)
		}
		w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	bus := NewBus()
	events, cancelSub := bus.Subscribe()
	defer cancelSub()

	synth, err := NewSynthesizer("test-key", bus,
		WithSynthBaseURL(server.URL),
		WithPlayCommand(stubPlayer),
	)
	if err != nil {
		t.Fatal(err)
	}
	synth.mu.Lock()
	synth.voices = []Voice{{ID: "v1", Name: "Aria", Lang: "en-US", Gender: "female"}}
	synth.mu.Unlock()

	if err := synth.Speak(context.Background(), "hello", "en-US", GenderFemale); err != nil {
		t.Fatalf("Speak() error: %v", err)
	}

	var got []EventKind
	timeout := time.After(3 * time.Second)
	for len(got) < 2 {
		select {
		case ev := <-events:
			got = append(got, ev.Kind)
			if ev.Text != "hello" || ev.Lang != "en-US" {
				t.Errorf("event payload = %+v", ev)
			}
		case <-timeout:
			t.Fatalf("events = %v, want start then end", got)
		}
	}
	if got[0] != EventSpeechStart || got[1] != EventSpeechEnd {
		t.Errorf("events = %v, want start then end", got)
	}

	// No further events: the end event fires exactly once.
	select {
	case ev := <-events:
		t.Errorf("unexpected extra event %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func slowPlayer(ctx context.Context) *exec.Cmd {
	// Keeps playing until cancelled.
	return exec.CommandContext(ctx, "sleep", "5")
}

func nextEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("no event delivered")
		return Event{}
	}
}

func TestSynthesizer_SpeakCancelsPriorUtterance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	bus := NewBus()
	events, cancelSub := bus.Subscribe()
	defer cancelSub()

	synth, err := NewSynthesizer("test-key", bus,
		WithSynthBaseURL(server.URL),
		WithPlayCommand(slowPlayer),
	)
	if err != nil {
		t.Fatal(err)
	}
	synth.mu.Lock()
	synth.voices = []Voice{{ID: "v1", Name: "Aria", Lang: "en-US", Gender: "female"}}
	synth.mu.Unlock()

	if err := synth.Speak(context.Background(), "one", "en-US", GenderFemale); err != nil {
		t.Fatalf("Speak() error: %v", err)
	}
	if ev := nextEvent(t, events); ev.Kind != EventSpeechStart || ev.Text != "one" {
		t.Fatalf("first event = %+v, want start of the first utterance", ev)
	}

	// The second utterance interrupts mid-playback: the first must end
	// before the new start event fires.
	if err := synth.Speak(context.Background(), "two", "en-US", GenderFemale); err != nil {
		t.Fatalf("Speak() error: %v", err)
	}
	if ev := nextEvent(t, events); ev.Kind != EventSpeechEnd || ev.Text != "one" {
		t.Fatalf("event = %+v, want the first utterance's end", ev)
	}
	if ev := nextEvent(t, events); ev.Kind != EventSpeechStart || ev.Text != "two" {
		t.Fatalf("event = %+v, want the second utterance's start", ev)
	}

	synth.Cancel()
	if ev := nextEvent(t, events); ev.Kind != EventSpeechEnd || ev.Text != "two" {
		t.Errorf("event = %+v, want the second utterance's end", ev)
	}
}

func TestSynthesizer_SpeakNoVoice(t *testing.T) {
	synth, err := NewSynthesizer("test-key", NewBus())
	if err != nil {
		t.Fatal(err)
	}
	if err := synth.Speak(context.Background(), "hi", "ur-PK", ""); err == nil {
		t.Error("Speak() should fail with an empty inventory")
	}
}
