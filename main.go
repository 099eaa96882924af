package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"docanvas/gemini"
	"docanvas/i18n"
	"docanvas/speech"
	"docanvas/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/joho/godotenv"
)

// Build info - set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// releaseSlug is the GitHub repository self-update pulls releases from.
const releaseSlug = "docanvas/docanvas"

var (
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8A8A8"))

	logoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A78BFA"))

	logo = `
    ╭─────────────────────────────────────────╮
    │  docanvas - Document Chat & Canvas      │
    ╰─────────────────────────────────────────╯`
)

func main() {
	versionFlag := flag.Bool("version", false, "Print version information")
	shortVersionFlag := flag.Bool("v", false, "Print version information (short)")
	updateFlag := flag.Bool("update", false, "Update to the latest release and exit")
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	langFlag := flag.String("lang", "", "UI language code (en, ar, ur, es, fr, hi, de)")
	flag.Parse()

	if *versionFlag || *shortVersionFlag {
		fmt.Printf("docanvas %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		fmt.Printf("  go:     %s\n", runtime.Version())
		fmt.Printf("  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		os.Exit(0)
	}

	if *updateFlag {
		if err := runSelfUpdate(); err != nil {
			fmt.Println(errorStyle.Render("Update failed: " + err.Error()))
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load .env file if it exists (won't error if missing)
	_ = godotenv.Load()

	fmt.Println(logoStyle.Render(logo))

	if err := gemini.CheckConfig(); err != nil {
		fmt.Println(errorStyle.Render("Error: " + err.Error()))
		fmt.Println(infoStyle.Render(gemini.GetAPIKeyHelp()))
		os.Exit(1)
	}

	assistant, err := gemini.NewClientFromEnv(gemini.WithDebug(*debugFlag))
	if err != nil {
		fmt.Println(errorStyle.Render("Error: " + err.Error()))
		os.Exit(1)
	}

	lang, ok := pickLanguage(*langFlag)
	if !ok {
		return
	}

	sp := setupSpeech(*debugFlag)

	model := tui.NewSessionModel(assistant, sp, lang)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Println(errorStyle.Render("Error: " + err.Error()))
		os.Exit(1)
	}
}

// pickLanguage resolves the UI language from the flag or an interactive
// select. The second return is false when the user aborted.
func pickLanguage(flagValue string) (i18n.Language, bool) {
	if flagValue != "" {
		code := i18n.Language(flagValue)
		for _, info := range i18n.Languages {
			if info.Code == code {
				return code, true
			}
		}
		fmt.Println(errorStyle.Render("Unknown language code: " + flagValue))
		return "", false
	}

	options := make([]huh.Option[i18n.Language], len(i18n.Languages))
	for i, info := range i18n.Languages {
		options[i] = huh.NewOption(info.Name, info.Code)
	}

	lang := i18n.English
	langSelect := huh.NewSelect[i18n.Language]().
		Title("Language / اللغة / زبان").
		Options(options...).
		Value(&lang)

	err := huh.NewForm(huh.NewGroup(langSelect)).
		WithTheme(huh.ThemeCatppuccin()).
		Run()
	if err != nil {
		return "", false
	}
	return lang, true
}

// setupSpeech builds the voice components when an ElevenLabs key and ffmpeg
// are available. Returns nil otherwise; the session hides voice controls.
func setupSpeech(debug bool) *tui.Speech {
	if os.Getenv("ELEVENLABS_API_KEY") == "" {
		return nil
	}
	if err := speech.CheckFFmpeg(); err != nil {
		fmt.Println(infoStyle.Render("Voice disabled: " + err.Error()))
		return nil
	}

	bus := speech.NewBus()
	recognizer, err := speech.NewRecognizer(
		os.Getenv("ELEVENLABS_API_KEY"),
		speech.WithRecognizerDebug(debug),
	)
	if err != nil {
		fmt.Println(infoStyle.Render("Voice disabled: " + err.Error()))
		return nil
	}
	synth, err := speech.NewSynthesizerFromEnv(bus, speech.WithSynthDebug(debug))
	if err != nil {
		fmt.Println(infoStyle.Render("Voice disabled: " + err.Error()))
		return nil
	}

	var loadErr error
	err = spinner.New().
		Title("Loading voices...").
		Action(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			loadErr = synth.LoadVoices(ctx)
		}).
		Run()
	if err != nil || loadErr != nil {
		if loadErr == nil {
			loadErr = err
		}
		fmt.Println(infoStyle.Render("Voice disabled: " + loadErr.Error()))
		return nil
	}

	return &tui.Speech{
		Recognizer:  recognizer,
		Synthesizer: synth,
		Bus:         bus,
	}
}

// runSelfUpdate replaces the binary with the latest published release.
func runSelfUpdate() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	updated, err := selfupdate.UpdateSelf(ctx, version, selfupdate.ParseSlug(releaseSlug))
	if err != nil {
		return err
	}
	if updated.Version() == version {
		fmt.Println(infoStyle.Render("Already up to date (" + version + ")"))
		return nil
	}
	fmt.Println(infoStyle.Render("Updated to " + updated.Version()))
	return nil
}
