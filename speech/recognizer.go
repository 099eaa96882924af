package speech

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// RealtimeWebSocketURL is the realtime speech-to-text WebSocket endpoint
	RealtimeWebSocketURL = "wss://api.elevenlabs.io/v1/speech-to-text/realtime"

	// ModelRealtime is the realtime transcription model
	ModelRealtime = "scribe_v2_realtime"

	// DefaultSampleRate for realtime transcription
	DefaultSampleRate = 16000

	// DefaultEncoding for audio input
	DefaultEncoding = "pcm_s16le"
)

// realtimeInitMessage opens a transcription session.
type realtimeInitMessage struct {
	Type       string `json:"type"`
	ModelID    string `json:"model_id,omitempty"`
	Language   string `json:"language,omitempty"`
	SampleRate int    `json:"sample_rate,omitempty"`
	Encoding   string `json:"encoding,omitempty"`
}

type realtimeAudioMessage struct {
	Type  string `json:"type"`
	Audio string `json:"audio"` // Base64 encoded audio
}

type realtimeResponse struct {
	Type       string `json:"type"`
	Transcript *struct {
		Text    string `json:"text"`
		IsFinal bool   `json:"is_final"`
	} `json:"transcript,omitempty"`
	Error   *APIError `json:"error,omitempty"`
	Message string    `json:"message,omitempty"`
}

// APIError represents an error response from the speech API
type APIError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Code       string `json:"code,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return e.Code + ": " + e.Message
	}
	return e.Message
}

// Recognizer transcribes microphone audio through the realtime WebSocket.
// The transcript accumulates finalized segments; the current interim segment
// is replaced each time a new hypothesis arrives and overwritten when its
// final form comes in.
type Recognizer struct {
	apiKey  string
	wsURL   string
	micCmd  func(ctx context.Context) *exec.Cmd
	debug   bool
	onError func(err error)

	mu        sync.Mutex
	listening bool
	conn      *websocket.Conn
	stopMic   context.CancelFunc
	finals    []string
	interim   string
	onUpdate  func()
}

// RecognizerOption configures the Recognizer
type RecognizerOption func(*Recognizer)

// WithRecognizerURL overrides the WebSocket endpoint (for testing)
func WithRecognizerURL(url string) RecognizerOption {
	return func(r *Recognizer) {
		if url != "" {
			r.wsURL = url
		}
	}
}

// WithRecognizerDebug enables debug logging
func WithRecognizerDebug(debug bool) RecognizerOption {
	return func(r *Recognizer) {
		r.debug = debug
	}
}

// WithMicCommand overrides the microphone capture command (for testing)
func WithMicCommand(fn func(ctx context.Context) *exec.Cmd) RecognizerOption {
	return func(r *Recognizer) {
		r.micCmd = fn
	}
}

// WithTranscriptUpdate registers a callback invoked whenever the transcript
// changes. It runs on the read-loop goroutine and must not block.
func WithTranscriptUpdate(fn func()) RecognizerOption {
	return func(r *Recognizer) {
		r.onUpdate = fn
	}
}

// WithRecognizerErrorHandler registers a callback for asynchronous errors.
func WithRecognizerErrorHandler(fn func(err error)) RecognizerOption {
	return func(r *Recognizer) {
		r.onError = fn
	}
}

// NewRecognizer creates a realtime transcription client
func NewRecognizer(apiKey string, opts ...RecognizerOption) (*Recognizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	r := &Recognizer{
		apiKey: apiKey,
		wsURL:  RealtimeWebSocketURL,
		micCmd: defaultMicCommand,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// defaultMicCommand captures mono 16kHz signed 16-bit PCM from the default
// microphone and writes it to stdout.
func defaultMicCommand(ctx context.Context) *exec.Cmd {
	var input []string
	switch runtime.GOOS {
	case "darwin":
		input = []string{"-f", "avfoundation", "-i", ":0"}
	case "windows":
		input = []string{"-f", "dshow", "-i", "audio=default"}
	default:
		input = []string{"-f", "alsa", "-i", "default"}
	}

	args := append(input,
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", DefaultSampleRate),
		"-f", "s16le",
		"-loglevel", "quiet",
		"-",
	)
	return exec.CommandContext(ctx, "ffmpeg", args...)
}

// CheckFFmpeg checks if ffmpeg is installed
func CheckFFmpeg() error {
	cmd := exec.Command("ffmpeg", "-version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg not found. Please install ffmpeg first")
	}
	return nil
}

// Listening reports whether a transcription session is active.
func (r *Recognizer) Listening() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listening
}

// Transcript returns the accumulated text: finalized segments followed by
// the current interim hypothesis.
func (r *Recognizer) Transcript() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	parts := r.finals
	if r.interim != "" {
		parts = append(parts[:len(parts):len(parts)], r.interim)
	}
	return strings.Join(parts, " ")
}

// StartListening opens the WebSocket session and starts streaming microphone
// audio. It is a no-op when already listening. The previous transcript is
// cleared on each fresh start.
func (r *Recognizer) StartListening(ctx context.Context, locale string) error {
	r.mu.Lock()
	if r.listening {
		r.mu.Unlock()
		return nil
	}
	r.finals = nil
	r.interim = ""
	r.mu.Unlock()

	url := fmt.Sprintf("%s?xi-api-key=%s", r.wsURL, r.apiKey)
	if r.debug {
		fmt.Printf("[DEBUG] Connecting to WebSocket: %s\n", r.wsURL)
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, resp, err := dialer.DialContext(ctx, url, http.Header{})
	if err != nil {
		if resp != nil {
			return fmt.Errorf("WebSocket connection failed (status %d): %w", resp.StatusCode, err)
		}
		return fmt.Errorf("WebSocket connection failed: %w", err)
	}

	initMsg := realtimeInitMessage{
		Type:       "init",
		ModelID:    ModelRealtime,
		Language:   primaryLanguage(locale),
		SampleRate: DefaultSampleRate,
		Encoding:   DefaultEncoding,
	}
	if err := conn.WriteJSON(initMsg); err != nil {
		conn.Close()
		return fmt.Errorf("failed to send init message: %w", err)
	}

	micCtx, stopMic := context.WithCancel(ctx)
	cmd := r.micCmd(micCtx)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stopMic()
		conn.Close()
		return fmt.Errorf("microphone pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		stopMic()
		conn.Close()
		return fmt.Errorf("microphone capture failed to start: %w", err)
	}

	r.mu.Lock()
	r.conn = conn
	r.stopMic = stopMic
	r.listening = true
	r.mu.Unlock()

	go r.streamAudio(conn, stdout, cmd)
	go r.readTranscripts(conn)

	return nil
}

// StopListening ends the session. The listening flag clears when the read
// loop observes the closed connection and exits.
func (r *Recognizer) StopListening() {
	r.mu.Lock()
	conn := r.conn
	stopMic := r.stopMic
	r.mu.Unlock()

	if stopMic != nil {
		stopMic()
	}
	if conn != nil {
		conn.WriteJSON(map[string]string{"type": "flush"})
		conn.Close()
	}
}

// streamAudio forwards captured PCM to the socket in 100ms frames.
func (r *Recognizer) streamAudio(conn *websocket.Conn, audio io.Reader, cmd *exec.Cmd) {
	defer cmd.Wait()

	const bytesPerSample = 2
	chunkSize := DefaultSampleRate * bytesPerSample / 10
	buffer := make([]byte, chunkSize)

	for {
		n, err := audio.Read(buffer)
		if n > 0 {
			msg := realtimeAudioMessage{
				Type:  "audio",
				Audio: base64.StdEncoding.EncodeToString(buffer[:n]),
			}
			if werr := conn.WriteJSON(msg); werr != nil {
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// readTranscripts consumes transcript frames until the connection closes.
// Exiting this loop is the only place the listening flag clears.
func (r *Recognizer) readTranscripts(conn *websocket.Conn) {
	defer func() {
		r.mu.Lock()
		r.listening = false
		if r.conn == conn {
			r.conn = nil
			r.stopMic = nil
		}
		onUpdate := r.onUpdate
		r.mu.Unlock()
		if onUpdate != nil {
			onUpdate()
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return
		}

		if r.debug {
			fmt.Printf("[DEBUG] Received: %s\n", string(message))
		}

		var resp realtimeResponse
		if err := json.Unmarshal(message, &resp); err != nil {
			r.reportError(fmt.Errorf("failed to parse response: %w", err))
			continue
		}

		switch resp.Type {
		case "transcript":
			if resp.Transcript != nil {
				r.applyTranscript(resp.Transcript.Text, resp.Transcript.IsFinal)
			}
		case "error":
			if resp.Error != nil {
				r.reportError(resp.Error)
			}
		}
	}
}

// applyTranscript merges a recognition result into the transcript. Interim
// results replace each other; a final result replaces the interim it refines
// and becomes permanent.
func (r *Recognizer) applyTranscript(text string, isFinal bool) {
	r.mu.Lock()
	if isFinal {
		if text != "" {
			r.finals = append(r.finals, text)
		}
		r.interim = ""
	} else {
		r.interim = text
	}
	onUpdate := r.onUpdate
	r.mu.Unlock()

	if onUpdate != nil {
		onUpdate()
	}
}

func (r *Recognizer) reportError(err error) {
	if r.onError != nil {
		r.onError(err)
	}
}

// primaryLanguage reduces a BCP-47 locale to its language subtag.
func primaryLanguage(locale string) string {
	if i := strings.IndexByte(locale, '-'); i > 0 {
		return locale[:i]
	}
	return locale
}
