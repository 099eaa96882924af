package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// SynthBaseURL is the ElevenLabs API base URL
	SynthBaseURL = "https://api.elevenlabs.io"

	// ModelMultilingual is the synthesis model used for all languages
	ModelMultilingual = "eleven_multilingual_v2"

	// DefaultSynthTimeout for synthesis requests
	DefaultSynthTimeout = 30 * time.Second
)

// Synthesizer converts text to audible speech. At most one utterance plays
// at a time; starting a new one cancels the current one first. Every
// utterance publishes a start event when playback begins and exactly one end
// event when playback finishes, fails, or is cancelled.
type Synthesizer struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	bus        *Bus
	playCmd    func(ctx context.Context) *exec.Cmd
	debug      bool

	mu      sync.Mutex
	voices  []Voice
	current *utterance
}

type utterance struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{}
}

// SynthOption configures the Synthesizer
type SynthOption func(*Synthesizer)

// WithSynthBaseURL overrides the API base URL (for testing)
func WithSynthBaseURL(url string) SynthOption {
	return func(s *Synthesizer) {
		if url != "" {
			s.baseURL = url
		}
	}
}

// WithSynthHTTPClient sets a custom HTTP client
func WithSynthHTTPClient(client *http.Client) SynthOption {
	return func(s *Synthesizer) {
		s.httpClient = client
	}
}

// WithPlayCommand overrides the audio playback command (for testing)
func WithPlayCommand(fn func(ctx context.Context) *exec.Cmd) SynthOption {
	return func(s *Synthesizer) {
		s.playCmd = fn
	}
}

// WithSynthDebug enables debug logging
func WithSynthDebug(debug bool) SynthOption {
	return func(s *Synthesizer) {
		s.debug = debug
	}
}

// NewSynthesizer creates a text-to-speech client publishing utterance events
// on the given bus.
func NewSynthesizer(apiKey string, bus *Bus, opts ...SynthOption) (*Synthesizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if bus == nil {
		return nil, fmt.Errorf("event bus is required")
	}

	s := &Synthesizer{
		apiKey:     apiKey,
		baseURL:    SynthBaseURL,
		httpClient: &http.Client{Timeout: DefaultSynthTimeout},
		bus:        bus,
		playCmd:    defaultPlayCommand,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewSynthesizerFromEnv creates a synthesizer using the ELEVENLABS_API_KEY
// environment variable.
func NewSynthesizerFromEnv(bus *Bus, opts ...SynthOption) (*Synthesizer, error) {
	apiKey := os.Getenv("ELEVENLABS_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ELEVENLABS_API_KEY environment variable not set")
	}
	return NewSynthesizer(apiKey, bus, opts...)
}

// defaultPlayCommand plays MP3 audio from stdin.
func defaultPlayCommand(ctx context.Context) *exec.Cmd {
	return exec.CommandContext(ctx, "ffplay",
		"-nodisp", "-autoexit", "-loglevel", "quiet", "-")
}

// voicesResponse is the wire shape of the voice inventory endpoint.
type voicesResponse struct {
	Voices []struct {
		VoiceID           string            `json:"voice_id"`
		Name              string            `json:"name"`
		Labels            map[string]string `json:"labels"`
		VerifiedLanguages []struct {
			Language string `json:"language"`
			Locale   string `json:"locale"`
		} `json:"verified_languages"`
	} `json:"voices"`
}

// LoadVoices fetches the synthesis voice inventory. A voice verified for
// several languages appears once per locale so locale ranking can see each.
func (s *Synthesizer) LoadVoices(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+"/v1/voices", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("xi-api-key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	var parsed voicesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("failed to parse voice inventory: %w", err)
	}

	var voices []Voice
	for _, v := range parsed.Voices {
		gender := v.Labels["gender"]
		if len(v.VerifiedLanguages) == 0 {
			voices = append(voices, Voice{
				ID:     v.VoiceID,
				Name:   v.Name,
				Lang:   v.Labels["language"],
				Gender: gender,
			})
			continue
		}
		for _, vl := range v.VerifiedLanguages {
			lang := vl.Locale
			if lang == "" {
				lang = vl.Language
			}
			voices = append(voices, Voice{
				ID:     v.VoiceID,
				Name:   v.Name,
				Lang:   lang,
				Gender: gender,
			})
		}
	}

	s.mu.Lock()
	s.voices = voices
	s.mu.Unlock()

	if s.debug {
		fmt.Printf("[DEBUG] Loaded %d voice entries\n", len(voices))
	}
	return nil
}

// Voices returns the loaded inventory.
func (s *Synthesizer) Voices() []Voice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Voice(nil), s.voices...)
}

// synthesizeRequest is the wire shape of the text-to-speech endpoint.
type synthesizeRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// Speak synthesizes text in the given locale and plays it. Any utterance
// already playing is cancelled first.
func (s *Synthesizer) Speak(ctx context.Context, text, locale, genderHint string) error {
	if text == "" {
		return fmt.Errorf("nothing to speak")
	}

	s.Cancel()

	s.mu.Lock()
	ranked := RankVoices(s.voices, locale, genderHint)
	s.mu.Unlock()
	if len(ranked) == 0 {
		return fmt.Errorf("no synthesis voice available for %s", locale)
	}
	voice := ranked[0]

	audio, err := s.synthesize(ctx, voice.ID, text)
	if err != nil {
		return err
	}

	playCtx, cancel := context.WithCancel(context.Background())
	cmd := s.playCmd(playCtx)
	cmd.Stdin = bytes.NewReader(audio)
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("audio playback failed to start: %w", err)
	}

	u := &utterance{id: uuid.NewString(), cancel: cancel, done: make(chan struct{})}
	s.mu.Lock()
	s.current = u
	s.mu.Unlock()

	s.bus.Publish(Event{Kind: EventSpeechStart, Text: text, Lang: locale})

	// The playback goroutine owns the end event. Whether the process exits
	// normally, fails, or is killed by Cancel, this is the single place the
	// end event is published.
	go func() {
		cmd.Wait()
		cancel()

		s.mu.Lock()
		if s.current != nil && s.current.id == u.id {
			s.current = nil
		}
		s.mu.Unlock()

		s.bus.Publish(Event{Kind: EventSpeechEnd, Text: text, Lang: locale})
		close(u.done)
	}()

	return nil
}

// Cancel stops the current utterance if one is playing and waits until its
// end event has been published, so a Speak following a Cancel always emits
// its start event after the prior utterance's end event.
func (s *Synthesizer) Cancel() {
	s.mu.Lock()
	u := s.current
	s.mu.Unlock()

	if u != nil {
		u.cancel()
		<-u.done
	}
}

// Speaking reports whether an utterance is currently playing.
func (s *Synthesizer) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// synthesize requests audio for the text from the given voice.
func (s *Synthesizer) synthesize(ctx context.Context, voiceID, text string) ([]byte, error) {
	body, err := json.Marshal(synthesizeRequest{Text: text, ModelID: ModelMultilingual})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", s.baseURL, voiceID)
	if s.debug {
		fmt.Printf("[DEBUG] POST %s\n", url)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("xi-api-key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(audio)}
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("empty audio response")
	}
	return audio, nil
}
