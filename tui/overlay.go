package tui

import (
	"context"
	"time"

	"docanvas/i18n"
	"docanvas/speech"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// OverlayModel is the live transcription panel. It follows spoken utterances
// on the speech bus: a start event shows the utterance next to its
// translation into the selected target language, the end event hides the
// panel again.
type OverlayModel struct {
	assistant   Assistant
	sessionLang i18n.Language

	// enabled is the user's opt-out toggle; visible tracks the utterance
	// lifecycle between start and end events.
	enabled bool
	visible bool

	original     string
	originalLang i18n.Language
	translated   string
	translating  bool

	// targetLang selects the translation language. Empty means no
	// translation: only the original text is shown.
	targetLang i18n.Language

	// seq guards against stale translation results after a target change,
	// a newer utterance, or an end event.
	seq int
}

// overlayTranslationMsg carries a finished translation back to the overlay.
type overlayTranslationMsg struct {
	seq  int
	text string
	err  error
}

// NewOverlayModel creates an overlay translating into the session language.
// It shows on the next utterance unless the user toggles it off.
func NewOverlayModel(assistant Assistant, lang i18n.Language) OverlayModel {
	return OverlayModel{
		assistant:   assistant,
		sessionLang: lang,
		targetLang:  lang,
		enabled:     true,
	}
}

// HandleEvent reacts to utterance lifecycle events. A start event shows the
// overlay with the new utterance and requests its translation; an end event
// hides the overlay and clears it.
func (o OverlayModel) HandleEvent(ev speech.Event) (OverlayModel, tea.Cmd) {
	switch ev.Kind {
	case speech.EventSpeechStart:
		o.visible = true
		o.original = ev.Text
		o.translated = ""
		if lang, ok := i18n.ByLocale(ev.Lang); ok {
			o.originalLang = lang
		} else {
			o.originalLang = o.sessionLang
		}
		return o.requestTranslation()
	case speech.EventSpeechEnd:
		o.visible = false
		o.original = ""
		o.translated = ""
		o.translating = false
		o.seq++
	}
	return o, nil
}

// CycleTarget moves the translation target through "none" and the language
// list, re-translating the current utterance for the new target.
func (o OverlayModel) CycleTarget(dir int) (OverlayModel, tea.Cmd) {
	n := len(i18n.Languages) + 1
	idx := 0
	for i, info := range i18n.Languages {
		if info.Code == o.targetLang {
			idx = i + 1
			break
		}
	}
	idx = ((idx+dir)%n + n) % n
	if idx == 0 {
		o.targetLang = ""
	} else {
		o.targetLang = i18n.Languages[idx-1].Code
	}
	return o.requestTranslation()
}

// requestTranslation starts an asynchronous translation of the current
// utterance. With no target, or a target equal to the source, the translation
// clears and the original stands alone.
func (o OverlayModel) requestTranslation() (OverlayModel, tea.Cmd) {
	o.seq++
	o.translating = false

	if o.original == "" || o.targetLang == "" || o.targetLang == o.originalLang {
		o.translated = ""
		return o, nil
	}

	o.translating = true
	assistant := o.assistant
	seq := o.seq
	text, source, target := o.original, o.originalLang, o.targetLang
	return o, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		translated, err := assistant.Translate(ctx, text, source, target)
		return overlayTranslationMsg{seq: seq, text: translated, err: err}
	}
}

// ApplyTranslation installs a finished translation, dropping stale results.
func (o OverlayModel) ApplyTranslation(msg overlayTranslationMsg) OverlayModel {
	if msg.seq != o.seq {
		return o
	}
	o.translating = false
	if msg.err != nil {
		o.translated = "Translation failed."
		return o
	}
	o.translated = msg.text
	return o
}

// View renders the overlay panel. It is empty unless the user enabled the
// overlay and an utterance is in flight.
func (o OverlayModel) View() string {
	if !o.enabled || !o.visible {
		return ""
	}

	tr := func(key string) string { return i18n.Default.T(o.sessionLang, key) }

	originalLabel := MutedStyle.Render(tr("original_language") + " (" + i18n.Lookup(o.originalLang).Name + ")")
	body := originalLabel + SuccessStyle.Render(" ● ") + "\n" + styleDirection(o.original, o.originalLang)

	if o.targetLang != "" && o.targetLang != o.originalLang {
		targetLabel := MutedStyle.Render(tr("translation_language") + " (" + i18n.Lookup(o.targetLang).Name + ")")
		translated := o.translated
		if o.translating {
			translated = MutedStyle.Render(tr("translating"))
		}
		body += "\n\n" + targetLabel + "\n" + styleDirection(translated, o.targetLang)
	}

	return BoxStyle.Render(body)
}

// styleDirection right-aligns text written in an RTL script.
func styleDirection(text string, lang i18n.Language) string {
	style := BodyStyle
	if i18n.IsRTL(lang) {
		style = style.Width(60).Align(lipgloss.Right)
	}
	return style.Render(text)
}
