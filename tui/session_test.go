package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"docanvas/export"
	"docanvas/i18n"
	"docanvas/ingest"
	"docanvas/speech"
)

var errTest = errors.New("test error")

type fakeAssistant struct {
	chatAnswer   string
	canvasAnswer string
	translated   string
	err          error
	calls        int
}

func (f *fakeAssistant) Chat(ctx context.Context, files []ingest.FileData, query string, lang i18n.Language) (string, error) {
	f.calls++
	return f.chatAnswer, f.err
}

func (f *fakeAssistant) Canvas(ctx context.Context, files []ingest.FileData, query string, lang i18n.Language) (string, error) {
	f.calls++
	return f.canvasAnswer, f.err
}

func (f *fakeAssistant) Translate(ctx context.Context, text string, source, target i18n.Language) (string, error) {
	f.calls++
	return f.translated, f.err
}

func sessionWithFiles(t *testing.T, assistant Assistant) SessionModel {
	t.Helper()
	m := NewSessionModel(assistant, nil, i18n.English)
	m.now = func() time.Time { return time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC) }

	updated, _ := m.Update(filesParsedMsg{files: []ingest.FileData{
		{Name: "report.md", MIMEType: "text/markdown", Content: "# Report"},
	}})
	return updated.(SessionModel)
}

func TestFilesParsed_BootstrapsCanvas(t *testing.T) {
	m := sessionWithFiles(t, &fakeAssistant{})

	if m.step != StepChat {
		t.Errorf("step = %d, want StepChat", m.step)
	}
	if !strings.Contains(m.Canvas(), "## 1 File(s) Processed") {
		t.Errorf("canvas = %q, want file count header", m.Canvas())
	}
	if !strings.Contains(m.Canvas(), "- **report.md** (text/markdown)") {
		t.Errorf("canvas = %q, want file listing with name and type", m.Canvas())
	}
	msgs := m.Messages()
	if len(msgs) != 1 || msgs[0].Sender != SenderSystem {
		t.Fatalf("messages = %+v, want one system message", msgs)
	}
	if !strings.Contains(msgs[0].Text, "1 file(s) processed") {
		t.Errorf("system message = %q, want the file count", msgs[0].Text)
	}
}

func TestOverlayOnByDefaultWithSpeech(t *testing.T) {
	sp := &Speech{Bus: speech.NewBus()}
	m := NewSessionModel(&fakeAssistant{}, sp, i18n.English)
	if !m.showOverlay || !m.overlay.enabled {
		t.Error("the overlay should be on when speech is configured")
	}

	m = NewSessionModel(&fakeAssistant{}, nil, i18n.English)
	if m.showOverlay {
		t.Error("no overlay without speech")
	}
}

func TestFilesParsed_FailureKeepsPreviousSet(t *testing.T) {
	m := sessionWithFiles(t, &fakeAssistant{})

	updated, _ := m.Update(filesParsedMsg{err: errors.New("bad file")})
	m = updated.(SessionModel)

	if len(m.Files()) != 1 {
		t.Errorf("files = %d, want the previous set kept", len(m.Files()))
	}
	if m.ErrorBanner() != i18n.Default.T(i18n.English, "parse_failed") {
		t.Errorf("banner = %q", m.ErrorBanner())
	}
	if m.step != StepUpload {
		t.Errorf("step = %d, want StepUpload for another try", m.step)
	}
}

func TestSubmit_WithoutFiles(t *testing.T) {
	m := NewSessionModel(&fakeAssistant{}, nil, i18n.English)

	updated, cmd := m.submit("hello", false)
	m = updated.(SessionModel)

	if cmd != nil {
		t.Error("no request should start without files")
	}
	if m.ErrorBanner() != i18n.Default.T(i18n.English, "upload_first") {
		t.Errorf("banner = %q", m.ErrorBanner())
	}
	if len(m.Messages()) != 0 {
		t.Error("no message should be appended")
	}
}

func TestSubmit_AppendsUserMessageAndClearsInput(t *testing.T) {
	m := sessionWithFiles(t, &fakeAssistant{chatAnswer: "hi"})
	m.textInput.SetValue("What is this?")

	updated, cmd := m.submit(m.textInput.Value(), false)
	m = updated.(SessionModel)

	if cmd == nil {
		t.Fatal("submit should start the request")
	}
	if !m.Loading() {
		t.Error("loading should be set while the request runs")
	}
	if m.textInput.Value() != "" {
		t.Error("input should clear on send")
	}
	msgs := m.Messages()
	last := msgs[len(msgs)-1]
	if last.Sender != SenderUser || last.Text != "What is this?" {
		t.Errorf("last message = %+v, want the user's query", last)
	}
	if last.Timestamp != "2026-08-30T10:00:00Z" {
		t.Errorf("timestamp = %q", last.Timestamp)
	}
}

func TestSubmit_RejectedWhileLoading(t *testing.T) {
	m := sessionWithFiles(t, &fakeAssistant{})
	updated, _ := m.submit("first", false)
	m = updated.(SessionModel)

	before := len(m.Messages())
	updated, cmd := m.submit("second", false)
	m = updated.(SessionModel)

	if cmd != nil {
		t.Error("second submit should not start a request")
	}
	if len(m.Messages()) != before {
		t.Error("rejected submit should not append a message")
	}
	if m.ErrorBanner() != i18n.Default.T(i18n.English, "request_in_flight") {
		t.Errorf("banner = %q", m.ErrorBanner())
	}
}

func TestChatResult_Success(t *testing.T) {
	m := sessionWithFiles(t, &fakeAssistant{})
	updated, _ := m.submit("question", false)
	m = updated.(SessionModel)

	updated, _ = m.Update(chatResultMsg{answer: "the answer"})
	m = updated.(SessionModel)

	if m.Loading() {
		t.Error("loading should clear")
	}
	msgs := m.Messages()
	last := msgs[len(msgs)-1]
	if last.Sender != SenderAI || last.Text != "the answer" {
		t.Errorf("last message = %+v", last)
	}
}

func TestChatResult_FailureBannerAndSystemMessage(t *testing.T) {
	m := sessionWithFiles(t, &fakeAssistant{})
	updated, _ := m.submit("question", false)
	m = updated.(SessionModel)

	updated, _ = m.Update(chatResultMsg{err: errors.New("boom")})
	m = updated.(SessionModel)

	want := i18n.Default.T(i18n.English, "ai_failed")
	if m.ErrorBanner() != want {
		t.Errorf("banner = %q, want %q", m.ErrorBanner(), want)
	}
	msgs := m.Messages()
	last := msgs[len(msgs)-1]
	if last.Sender != SenderSystem || last.Text != want {
		t.Errorf("last message = %+v, want system message with the banner text", last)
	}
	if m.Loading() {
		t.Error("loading should clear on failure")
	}
}

func TestCanvasResult_ReplacesWholesale(t *testing.T) {
	m := sessionWithFiles(t, &fakeAssistant{})
	updated, _ := m.submit("make a table", true)
	m = updated.(SessionModel)

	updated, _ = m.Update(canvasResultMsg{markdown: "# Fresh\n\nNew content"})
	m = updated.(SessionModel)

	if m.Canvas() != "# Fresh\n\nNew content" {
		t.Errorf("canvas = %q, want the old content fully replaced", m.Canvas())
	}
	msgs := m.Messages()
	last := msgs[len(msgs)-1]
	if last.Sender != SenderSystem || last.Text != i18n.Default.T(i18n.English, "canvas_updated") {
		t.Errorf("last message = %+v, want the canvas acknowledgement", last)
	}
}

func TestExportDone_NoTable(t *testing.T) {
	m := sessionWithFiles(t, &fakeAssistant{})

	updated, _ := m.Update(exportDoneMsg{path: export.FileNameXLSX, err: export.ErrNoTable})
	m = updated.(SessionModel)

	if m.ErrorBanner() != i18n.Default.T(i18n.English, "no_table_found") {
		t.Errorf("banner = %q", m.ErrorBanner())
	}
}

func TestExportDone_Success(t *testing.T) {
	m := sessionWithFiles(t, &fakeAssistant{})

	updated, _ := m.Update(exportDoneMsg{path: export.FileNamePDF})
	m = updated.(SessionModel)

	msgs := m.Messages()
	last := msgs[len(msgs)-1]
	if last.Sender != SenderSystem || !strings.Contains(last.Text, export.FileNamePDF) {
		t.Errorf("last message = %+v, want export confirmation", last)
	}
}

func TestSpeakFailureSetsBanner(t *testing.T) {
	m := sessionWithFiles(t, &fakeAssistant{})

	updated, _ := m.Update(speakDoneMsg{err: errTest})
	m = updated.(SessionModel)

	if m.ErrorBanner() != errTest.Error() {
		t.Errorf("banner = %q, want the synthesis error surfaced", m.ErrorBanner())
	}
}

func TestCycleLanguage(t *testing.T) {
	m := sessionWithFiles(t, &fakeAssistant{})
	if m.Language() != i18n.English {
		t.Fatalf("start language = %s", m.Language())
	}
	m.cycleLanguage()
	if m.Language() != i18n.Arabic {
		t.Errorf("language = %s, want ar next in selector order", m.Language())
	}
	for i := 0; i < len(i18n.Languages)-1; i++ {
		m.cycleLanguage()
	}
	if m.Language() != i18n.English {
		t.Errorf("language = %s, want wrap back to en", m.Language())
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	m := sessionWithFiles(t, &fakeAssistant{})
	updated, _ := m.submit("question", false)
	m = updated.(SessionModel)
	updated, _ = m.Update(chatResultMsg{answer: "answer"})
	m = updated.(SessionModel)

	data, err := export.HistoryJSON(m.Messages())
	if err != nil {
		t.Fatalf("HistoryJSON() error: %v", err)
	}

	var back []Message
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("history is not a JSON array of messages: %v", err)
	}
	if len(back) != len(m.Messages()) {
		t.Fatalf("round trip lost messages: %d != %d", len(back), len(m.Messages()))
	}
	for i, msg := range m.Messages() {
		if back[i] != msg {
			t.Errorf("message %d = %+v, want %+v", i, back[i], msg)
		}
	}
}

func TestMessageJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(Message{Sender: SenderUser, Text: "hi", Timestamp: "2026-08-30T10:00:00Z"})
	if err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{`"sender"`, `"text"`, `"timestamp"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("JSON %s missing field %s", data, field)
		}
	}
}
