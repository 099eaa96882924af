package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"docanvas/export"
	"docanvas/i18n"
	"docanvas/ingest"
	"docanvas/speech"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Sender identifies who wrote a chat message.
type Sender string

const (
	SenderUser   Sender = "user"
	SenderAI     Sender = "ai"
	SenderSystem Sender = "system"
)

// Message is one entry in the append-only chat transcript.
type Message struct {
	Sender    Sender `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"` // RFC 3339
}

// Assistant is the AI backend the session talks to.
type Assistant interface {
	Chat(ctx context.Context, files []ingest.FileData, query string, lang i18n.Language) (string, error)
	Canvas(ctx context.Context, files []ingest.FileData, query string, lang i18n.Language) (string, error)
	Translate(ctx context.Context, text string, source, target i18n.Language) (string, error)
}

// Speech bundles the optional voice components. A nil Speech disables all
// voice features in the UI.
type Speech struct {
	Recognizer  *speech.Recognizer
	Synthesizer *speech.Synthesizer
	Bus         *speech.Bus
}

// SessionStep represents the current screen of the session
type SessionStep int

const (
	StepUpload SessionStep = iota
	StepParsing
	StepChat
	StepExport
)

// Quick action prompts, offered as one-key shortcuts once files are loaded.
var quickActions = []struct {
	labelKey string
	prompt   string
}{
	{"summarize_file", "Create a concise summary of the provided document content."},
	{"create_mind_map", "Generate a mind map in Markdown format outlining the key topics, sub-topics, and relationships in the document."},
	{"analyze_data", "Analyze the data in this document. Identify key trends, patterns, or insights. If applicable, present the most important information in one or more Markdown tables."},
}

type exportKind int

const (
	exportPDF exportKind = iota
	exportDOCX
	exportXLSX
	exportPNG
	exportHistory
)

var exportOptions = []struct {
	labelKey string
	kind     exportKind
}{
	{"export_pdf", exportPDF},
	{"export_docx", exportDOCX},
	{"export_xlsx", exportXLSX},
	{"export_png", exportPNG},
	{"export_history", exportHistory},
}

// requestTimeout bounds every AI call made from the session.
const requestTimeout = 2 * time.Minute

// SessionModel is the Bubble Tea model for the whole interactive session.
type SessionModel struct {
	step SessionStep

	assistant Assistant
	sp        *Speech

	// UI components
	filepicker filepicker.Model
	textInput  textinput.Model
	spinner    spinner.Model
	chatView   viewport.Model
	canvasView viewport.Model
	renderer   *glamour.TermRenderer

	// Session state
	files        []ingest.FileData
	pendingPaths []string
	messages     []Message
	canvas       string
	loading      bool
	errMsg       string
	lang         i18n.Language

	// Voice state
	listening    bool
	speakAnswers bool
	voiceGender  string

	overlay     OverlayModel
	showOverlay bool
	speechCh    <-chan speech.Event

	exportIndex int

	width    int
	height   int
	quitting bool

	now func() time.Time
}

// Result messages posted back by asynchronous work.
type filesParsedMsg struct {
	files []ingest.FileData
	err   error
}

type chatResultMsg struct {
	answer string
	err    error
}

type canvasResultMsg struct {
	markdown string
	err      error
}

type exportDoneMsg struct {
	path string
	err  error
}

type listenToggledMsg struct{ err error }

type speakDoneMsg struct{ err error }

type transcriptTickMsg time.Time

type speechEventMsg speech.Event

// NewSessionModel creates the session in the upload step.
func NewSessionModel(assistant Assistant, sp *Speech, lang i18n.Language) SessionModel {
	fp := filepicker.New()
	fp.AllowedTypes = ingest.SupportedExtensions
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.ShowHidden = false
	fp.Height = 12

	ti := textinput.New()
	ti.CharLimit = 2048
	ti.Width = 60

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	m := SessionModel{
		step:        StepUpload,
		assistant:   assistant,
		sp:          sp,
		filepicker:  fp,
		textInput:   ti,
		spinner:     s,
		chatView:    viewport.New(60, 16),
		canvasView:  viewport.New(60, 16),
		lang:        lang,
		voiceGender: speech.GenderFemale,
		width:       120,
		height:      32,
		now:         time.Now,
	}
	m.overlay = NewOverlayModel(assistant, lang)
	m.showOverlay = sp != nil
	m.overlay.enabled = m.showOverlay
	m.textInput.Placeholder = m.tr("type_message")
	if sp != nil && sp.Bus != nil {
		m.speechCh, _ = sp.Bus.Subscribe()
	}
	return m
}

// tr resolves a catalog key for the current UI language.
func (m SessionModel) tr(key string) string {
	return i18n.Default.T(m.lang, key)
}

// Init initializes the model
func (m SessionModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.filepicker.Init(), m.spinner.Tick}
	if m.speechCh != nil {
		cmds = append(cmds, waitForSpeechEvent(m.speechCh))
	}
	return tea.Batch(cmds...)
}

// waitForSpeechEvent re-arms itself after every delivery so the overlay sees
// the full utterance lifecycle.
func waitForSpeechEvent(ch <-chan speech.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return speechEventMsg(ev)
	}
}

// Update handles messages
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			if m.sp != nil {
				if m.sp.Recognizer != nil {
					m.sp.Recognizer.StopListening()
				}
				if m.sp.Synthesizer != nil {
					m.sp.Synthesizer.Cancel()
				}
			}
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case filesParsedMsg:
		return m.onFilesParsed(msg)

	case chatResultMsg:
		return m.onChatResult(msg)

	case canvasResultMsg:
		return m.onCanvasResult(msg)

	case exportDoneMsg:
		return m.onExportDone(msg)

	case listenToggledMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			m.listening = false
			return m, nil
		}
		m.listening = true
		return m, transcriptTick()

	case speakDoneMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		}
		return m, nil

	case transcriptTickMsg:
		return m.onTranscriptTick()

	case speechEventMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.overlay, cmd = m.overlay.HandleEvent(speech.Event(msg))
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if m.speechCh != nil {
			cmds = append(cmds, waitForSpeechEvent(m.speechCh))
		}
		return m, tea.Batch(cmds...)

	case overlayTranslationMsg:
		m.overlay = m.overlay.ApplyTranslation(msg)
		return m, nil
	}

	// Route remaining messages to the active component.
	switch m.step {
	case StepUpload:
		return m.updateFilepicker(msg)
	case StepChat:
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// resize lays the panels out for the current terminal size.
func (m *SessionModel) resize() {
	panelWidth := m.width/2 - 4
	if panelWidth < 30 {
		panelWidth = 30
	}
	panelHeight := m.height - 14
	if panelHeight < 8 {
		panelHeight = 8
	}

	m.chatView.Width = panelWidth
	m.chatView.Height = panelHeight
	m.canvasView.Width = panelWidth
	m.canvasView.Height = panelHeight
	m.textInput.Width = panelWidth - 4

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(panelWidth-2),
	)
	if err == nil {
		m.renderer = renderer
	}
	m.refreshChat()
	m.refreshCanvas()
}

// handleKey dispatches keys for the current step.
func (m SessionModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.step {
	case StepUpload:
		switch msg.String() {
		case "ctrl+d":
			if len(m.pendingPaths) == 0 {
				m.errMsg = m.tr("drop_files_here")
				return m, nil
			}
			return m.startParsing()
		case "esc":
			if len(m.files) > 0 {
				// Abort adding more files, keep the current set.
				m.pendingPaths = nil
				m.step = StepChat
				return m, textinput.Blink
			}
		}
		return m.updateFilepicker(msg)

	case StepChat:
		switch msg.String() {
		case "enter":
			return m.submit(m.textInput.Value(), false)
		case "ctrl+g":
			return m.submit(m.textInput.Value(), true)
		case "f1", "f2", "f3":
			idx := int(msg.String()[1] - '1')
			return m.submit(quickActions[idx].prompt, true)
		case "ctrl+u":
			m.step = StepUpload
			m.pendingPaths = nil
			m.errMsg = ""
			return m, m.filepicker.Init()
		case "ctrl+e":
			m.step = StepExport
			m.exportIndex = 0
			return m, nil
		case "ctrl+l":
			m.cycleLanguage()
			return m, nil
		case "ctrl+t":
			return m.toggleListening()
		case "ctrl+s":
			m.speakAnswers = !m.speakAnswers
			if !m.speakAnswers && m.sp != nil && m.sp.Synthesizer != nil {
				m.sp.Synthesizer.Cancel()
			}
			return m, nil
		case "ctrl+v":
			if m.voiceGender == speech.GenderFemale {
				m.voiceGender = speech.GenderMale
			} else {
				m.voiceGender = speech.GenderFemale
			}
			return m, nil
		case "ctrl+o":
			m.showOverlay = !m.showOverlay
			m.overlay.enabled = m.showOverlay
			return m, nil
		case "[", "]":
			if m.showOverlay {
				var cmd tea.Cmd
				dir := 1
				if msg.String() == "[" {
					dir = -1
				}
				m.overlay, cmd = m.overlay.CycleTarget(dir)
				return m, cmd
			}
		case "pgup":
			m.chatView.ScrollUp(3)
			return m, nil
		case "pgdown":
			m.chatView.ScrollDown(3)
			return m, nil
		case "ctrl+up":
			m.canvasView.ScrollUp(3)
			return m, nil
		case "ctrl+down":
			m.canvasView.ScrollDown(3)
			return m, nil
		}
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd

	case StepExport:
		switch msg.String() {
		case "up", "k":
			if m.exportIndex > 0 {
				m.exportIndex--
			}
		case "down", "j":
			if m.exportIndex < len(exportOptions)-1 {
				m.exportIndex++
			}
		case "enter":
			kind := exportOptions[m.exportIndex].kind
			m.step = StepChat
			return m, m.exportCmd(kind)
		case "esc", "q":
			m.step = StepChat
		}
		return m, nil
	}
	return m, nil
}

// updateFilepicker accumulates picked files into the pending batch.
func (m SessionModel) updateFilepicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filepicker, cmd = m.filepicker.Update(msg)

	if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
		if !ingest.IsSupported(path) {
			m.errMsg = m.tr("supported_formats")
			return m, cmd
		}
		for _, p := range m.pendingPaths {
			if p == path {
				return m, cmd
			}
		}
		m.pendingPaths = append(m.pendingPaths, path)
		m.errMsg = ""
	}
	return m, cmd
}

// startParsing kicks off the concurrent batch parse.
func (m SessionModel) startParsing() (tea.Model, tea.Cmd) {
	m.step = StepParsing
	m.errMsg = ""
	paths := append([]string(nil), m.pendingPaths...)
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		files, err := ingest.ParseAll(context.Background(), paths)
		return filesParsedMsg{files: files, err: err}
	})
}

// onFilesParsed applies the batch result. The batch is atomic: any failure
// leaves the previous file set untouched.
func (m SessionModel) onFilesParsed(msg filesParsedMsg) (tea.Model, tea.Cmd) {
	m.pendingPaths = nil
	if msg.err != nil {
		m.errMsg = m.tr("parse_failed")
		m.step = StepUpload
		return m, m.filepicker.Init()
	}

	m.files = msg.files
	m.canvas = bootstrapCanvas(msg.files)
	m.appendMessage(SenderSystem, fmt.Sprintf(m.tr("file_processed"), len(msg.files)))
	m.errMsg = ""
	m.step = StepChat
	m.refreshChat()
	m.refreshCanvas()
	return m, textinput.Blink
}

// bootstrapCanvas lists the processed files as the initial canvas content.
func bootstrapCanvas(files []ingest.FileData) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %d File(s) Processed\n\n", len(files))
	for _, f := range files {
		fmt.Fprintf(&sb, "- **%s** (%s)\n", f.Name, f.MIMEType)
	}
	return sb.String()
}

// submit sends a query to the assistant, targeting the chat or the canvas.
// While a request is in flight new submissions are rejected.
func (m SessionModel) submit(query string, toCanvas bool) (tea.Model, tea.Cmd) {
	query = strings.TrimSpace(query)
	if query == "" {
		return m, nil
	}
	if m.loading {
		m.errMsg = m.tr("request_in_flight")
		return m, nil
	}
	if len(m.files) == 0 {
		m.errMsg = m.tr("upload_first")
		return m, nil
	}

	m.errMsg = ""
	m.appendMessage(SenderUser, query)
	m.textInput.SetValue("")
	m.loading = true
	m.refreshChat()

	if toCanvas {
		return m, tea.Batch(m.spinner.Tick, m.canvasCmd(query))
	}
	return m, tea.Batch(m.spinner.Tick, m.chatCmd(query))
}

func (m SessionModel) chatCmd(query string) tea.Cmd {
	assistant, files, lang := m.assistant, m.files, m.lang
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		answer, err := assistant.Chat(ctx, files, query, lang)
		return chatResultMsg{answer: answer, err: err}
	}
}

func (m SessionModel) canvasCmd(query string) tea.Cmd {
	assistant, files, lang := m.assistant, m.files, m.lang
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		markdown, err := assistant.Canvas(ctx, files, query, lang)
		return canvasResultMsg{markdown: markdown, err: err}
	}
}

func (m SessionModel) onChatResult(msg chatResultMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		failText := m.tr("ai_failed")
		m.errMsg = failText
		m.appendMessage(SenderSystem, failText)
		m.refreshChat()
		return m, nil
	}

	m.appendMessage(SenderAI, msg.answer)
	m.refreshChat()

	if m.speakAnswers && m.sp != nil && m.sp.Synthesizer != nil {
		synth := m.sp.Synthesizer
		locale := i18n.Locale(m.lang)
		gender := m.voiceGender
		text := msg.answer
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			return speakDoneMsg{err: synth.Speak(ctx, text, locale, gender)}
		}
	}
	return m, nil
}

// onCanvasResult replaces the canvas wholesale and acknowledges in chat.
func (m SessionModel) onCanvasResult(msg canvasResultMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		failText := m.tr("ai_failed")
		m.errMsg = failText
		m.appendMessage(SenderSystem, failText)
		m.refreshChat()
		return m, nil
	}

	m.canvas = msg.markdown
	m.appendMessage(SenderSystem, m.tr("canvas_updated"))
	m.refreshChat()
	m.refreshCanvas()
	return m, nil
}

func (m SessionModel) exportCmd(kind exportKind) tea.Cmd {
	canvas := m.canvas
	messages := append([]Message(nil), m.messages...)
	return func() tea.Msg {
		var path string
		var err error
		switch kind {
		case exportPDF:
			path = export.FileNamePDF
			err = export.CanvasToPDF(canvas, path)
		case exportDOCX:
			path = export.FileNameDOCX
			err = export.CanvasToDOCX(canvas, path)
		case exportXLSX:
			path = export.FileNameXLSX
			err = export.CanvasToXLSX(canvas, path)
		case exportPNG:
			path = export.FileNamePNG
			err = export.CanvasToPNG(canvas, path)
		case exportHistory:
			path = export.FileNameHistory
			err = export.WriteHistory(messages, path)
		}
		return exportDoneMsg{path: path, err: err}
	}
}

func (m SessionModel) onExportDone(msg exportDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, export.ErrNoTable) {
			m.errMsg = m.tr("no_table_found")
		} else {
			m.errMsg = msg.err.Error()
		}
		return m, nil
	}
	m.errMsg = ""
	m.appendMessage(SenderSystem, fmt.Sprintf(m.tr("export_saved"), msg.path))
	m.refreshChat()
	return m, nil
}

// toggleListening starts or stops microphone transcription.
func (m SessionModel) toggleListening() (tea.Model, tea.Cmd) {
	if m.sp == nil || m.sp.Recognizer == nil {
		return m, nil
	}
	rec := m.sp.Recognizer

	if rec.Listening() {
		rec.StopListening()
		m.listening = false
		return m, nil
	}

	locale := i18n.Locale(m.lang)
	return m, func() tea.Msg {
		err := rec.StartListening(context.Background(), locale)
		return listenToggledMsg{err: err}
	}
}

// onTranscriptTick mirrors the live transcript into the input while
// listening.
func (m SessionModel) onTranscriptTick() (tea.Model, tea.Cmd) {
	if m.sp == nil || m.sp.Recognizer == nil {
		return m, nil
	}
	rec := m.sp.Recognizer
	if t := rec.Transcript(); t != "" {
		m.textInput.SetValue(t)
		m.textInput.CursorEnd()
	}
	if !rec.Listening() {
		m.listening = false
		return m, nil
	}
	return m, transcriptTick()
}

func transcriptTick() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return transcriptTickMsg(t)
	})
}

// cycleLanguage advances the UI language through the selector order.
func (m *SessionModel) cycleLanguage() {
	for i, info := range i18n.Languages {
		if info.Code == m.lang {
			m.lang = i18n.Languages[(i+1)%len(i18n.Languages)].Code
			break
		}
	}
	m.textInput.Placeholder = m.tr("type_message")
	m.overlay.sessionLang = m.lang
	m.refreshChat()
}

func (m *SessionModel) appendMessage(sender Sender, text string) {
	m.messages = append(m.messages, Message{
		Sender:    sender,
		Text:      text,
		Timestamp: m.now().UTC().Format(time.RFC3339),
	})
}

// refreshChat rebuilds the chat viewport content.
func (m *SessionModel) refreshChat() {
	width := m.chatView.Width
	if width < 20 {
		width = 20
	}
	rtl := i18n.IsRTL(m.lang)

	var sb strings.Builder
	for _, msg := range m.messages {
		var label string
		var style lipgloss.Style
		switch msg.Sender {
		case SenderUser:
			label = "You"
			style = UserMessageStyle
		case SenderAI:
			label = "AI"
			style = AIMessageStyle
		case SenderSystem:
			label = "*"
			style = SystemMessageStyle
		}

		line := style.Render(label+": ") + BodyStyle.Render(msg.Text)
		if rtl {
			line = lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n\n")
	}
	m.chatView.SetContent(sb.String())
	m.chatView.GotoBottom()
}

// refreshCanvas re-renders the canvas Markdown.
func (m *SessionModel) refreshCanvas() {
	content := m.canvas
	if m.renderer != nil && content != "" {
		if rendered, err := m.renderer.Render(content); err == nil {
			content = rendered
		}
	}
	m.canvasView.SetContent(content)
}

// Messages returns the chat transcript.
func (m SessionModel) Messages() []Message {
	return append([]Message(nil), m.messages...)
}

// Files returns the current document set.
func (m SessionModel) Files() []ingest.FileData {
	return append([]ingest.FileData(nil), m.files...)
}

// Canvas returns the current canvas Markdown.
func (m SessionModel) Canvas() string { return m.canvas }

// Loading reports whether an AI request is in flight.
func (m SessionModel) Loading() bool { return m.loading }

// ErrorBanner returns the transient error text, empty when clear.
func (m SessionModel) ErrorBanner() string { return m.errMsg }

// Language returns the active UI language.
func (m SessionModel) Language() i18n.Language { return m.lang }

// View renders the UI
func (m SessionModel) View() string {
	if m.quitting {
		return MutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder
	b.WriteString(AppHeader())
	b.WriteString("\n")

	switch m.step {
	case StepUpload:
		b.WriteString(m.renderUpload())
	case StepParsing:
		b.WriteString(BoxStyle.Render(m.spinner.View() + " " + BodyStyle.Render(m.tr("processing_file"))))
	case StepChat:
		b.WriteString(m.renderSession())
	case StepExport:
		b.WriteString(m.renderExportMenu())
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(BannerStyle.Render(m.errMsg))
	}
	if ov := m.overlay.View(); ov != "" {
		b.WriteString("\n")
		b.WriteString(ov)
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m SessionModel) renderUpload() string {
	title := TitleStyle.Render(m.tr("drop_files_here"))
	formats := MutedStyle.Render(m.tr("supported_formats") + ": " + strings.Join(ingest.SupportedExtensions, ", "))

	var batch string
	if len(m.pendingPaths) > 0 {
		var sb strings.Builder
		for _, p := range m.pendingPaths {
			sb.WriteString(SuccessStyle.Render("+ ") + BodyStyle.Render(p) + "\n")
		}
		batch = "\n" + sb.String()
	}

	return BoxStyle.Render(title + "\n" + formats + "\n\n" + m.filepicker.View() + batch)
}

func (m SessionModel) renderSession() string {
	chatTitle := SubtitleStyle.Render(m.tr("ask_about_file"))
	canvasTitle := SubtitleStyle.Render(m.tr("canvas_panel"))

	input := m.textInput.View()
	if m.loading {
		input = m.spinner.View() + " " + MutedStyle.Render("...")
	}
	if m.listening {
		chatTitle += " " + BannerStyle.Background(ColorSuccess).Render(m.tr("listening"))
	}

	actions := make([]string, len(quickActions))
	for i, qa := range quickActions {
		actions[i] = fmt.Sprintf("F%d %s", i+1, m.tr(qa.labelKey))
	}
	actionLine := MutedStyle.Render(m.tr("quick_actions") + ": " + strings.Join(actions, "  "))

	chatPanel := PanelStyle.Render(chatTitle + "\n" + m.chatView.View() + "\n" + input + "\n" + actionLine)
	canvasPanel := PanelStyle.Render(canvasTitle + "\n" + m.canvasView.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, " ", canvasPanel)
}

func (m SessionModel) renderExportMenu() string {
	title := TitleStyle.Render(m.tr("export_options"))

	var items strings.Builder
	for i, opt := range exportOptions {
		cursor := "  "
		style := BodyStyle
		if i == m.exportIndex {
			cursor = "> "
			style = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
		}
		items.WriteString(style.Render(cursor+m.tr(opt.labelKey)) + "\n")
	}
	return BoxStyle.Render(title + "\n\n" + items.String())
}

func (m SessionModel) renderHelp() string {
	switch m.step {
	case StepUpload:
		return KeyHelp("enter", "Add file", "ctrl+d", "Process batch", "ctrl+c", "Quit")
	case StepChat:
		pairs := []string{
			"enter", m.tr("send"),
			"ctrl+g", m.tr("generate_on_canvas"),
			"f1-f3", m.tr("quick_actions"),
			"ctrl+e", m.tr("export_options"),
			"ctrl+u", "Files",
			"ctrl+l", "Language",
		}
		if m.sp != nil {
			pairs = append(pairs, "ctrl+t", "Mic", "ctrl+s", "Voice", "ctrl+o", "Overlay")
		}
		return KeyHelp(pairs...)
	case StepExport:
		return KeyHelp("j/k", "Navigate", "enter", "Export", "esc", "Back")
	}
	return ""
}
