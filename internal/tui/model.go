package tui

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"flipbook/internal/assembly"
	"flipbook/internal/config"
	"flipbook/internal/logging"
	"flipbook/internal/workflow"
)

type field int

const (
	fieldInputDir field = iota
	fieldOutputFile
	fieldFormat
	fieldFPS
	fieldLossless
	fieldQuality
	fieldConvert
)

const toastTTL = 4 * time.Second

type toastKind int

const (
	toastNone toastKind = iota
	toastError
	toastProgress
	toastSuccess
)

type toast struct {
	kind toastKind
	text string
	seq  int
}

type convertDoneMsg struct {
	result workflow.ConversionResult
	output string
	err    error
}

type toastClearMsg struct{ seq int }

type previewMsg struct {
	dir     string
	preview assembly.Preview
	err     error
}

// Model is the interactive conversion form.
type Model struct {
	cfg    *config.Config
	logger *slog.Logger
	styles Styles

	inputDir   textinput.Model
	outputFile textinput.Model
	fps        textinput.Model
	quality    textinput.Model

	format   assembly.Format
	lossless bool

	focus      field
	preview    string
	converting bool
	toast      toast
	spinner    spinner.Model
}

// New builds the form seeded with the configured defaults.
func New(cfg *config.Config, logger *slog.Logger) Model {
	if logger == nil {
		logger = logging.NewNop()
	}

	format, err := assembly.ParseFormat(cfg.Conversion.Format)
	if err != nil {
		format = assembly.FormatWebP
	}

	inputDir := textinput.New()
	inputDir.Placeholder = "directory with numbered PNG frames"
	inputDir.CharLimit = 512
	inputDir.Width = 48
	inputDir.Focus()

	outputFile := textinput.New()
	outputFile.CharLimit = 512
	outputFile.Width = 48
	outputFile.SetValue(filepath.Join(cfg.Paths.OutputDir, format.DefaultOutputName()))

	fps := textinput.New()
	fps.CharLimit = 4
	fps.Width = 6
	fps.SetValue(strconv.Itoa(cfg.Conversion.FPS))

	quality := textinput.New()
	quality.CharLimit = 3
	quality.Width = 6
	quality.SetValue(strconv.Itoa(cfg.Conversion.Quality))

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		cfg:        cfg,
		logger:     logger.With(logging.String(logging.FieldComponent, "tui")),
		styles:     DefaultStyles(),
		inputDir:   inputDir,
		outputFile: outputFile,
		fps:        fps,
		quality:    quality,
		format:     format,
		lossless:   cfg.Conversion.Lossless,
		focus:      fieldInputDir,
		spinner:    sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// visibleFields returns the focusable fields in display order for the current
// format and compression settings.
func (m Model) visibleFields() []field {
	fields := []field{fieldInputDir, fieldOutputFile, fieldFormat, fieldFPS}
	if m.format == assembly.FormatWebP {
		fields = append(fields, fieldLossless)
		if !m.lossless {
			fields = append(fields, fieldQuality)
		}
	}
	return append(fields, fieldConvert)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)
	case spinner.TickMsg:
		if !m.converting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case previewMsg:
		if msg.dir != strings.TrimSpace(m.inputDir.Value()) {
			return m, nil
		}
		if msg.err != nil {
			m.preview = ""
			return m, nil
		}
		m.preview = fmt.Sprintf("Found %d PNG files (%dx%d)", msg.preview.FrameCount, msg.preview.Width, msg.preview.Height)
		return m, nil
	case convertDoneMsg:
		m.converting = false
		if msg.err != nil {
			m.logger.Error("conversion failed", logging.Error(msg.err))
			return m.showToast(toastError, msg.err.Error())
		}
		m.logger.Info("conversion completed",
			logging.Int("frame_count", msg.result.FrameCount),
			logging.String("output", msg.output),
		)
		return m.showToast(toastSuccess, fmt.Sprintf("Saved %s (%d frames)", msg.output, msg.result.FrameCount))
	case toastClearMsg:
		if msg.seq == m.toast.seq && m.toast.kind != toastProgress {
			m.toast = toast{seq: m.toast.seq}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab, tea.KeyDown:
		return m.moveFocus(1)
	case tea.KeyShiftTab, tea.KeyUp:
		return m.moveFocus(-1)
	case tea.KeyEnter:
		if m.focus == fieldConvert {
			return m.startConversion()
		}
		if m.focus == fieldFormat {
			return m.toggleFormat(), nil
		}
		if m.focus == fieldLossless {
			return m.toggleLossless(), nil
		}
		return m.moveFocus(1)
	case tea.KeySpace, tea.KeyLeft, tea.KeyRight:
		if m.focus == fieldFormat {
			return m.toggleFormat(), nil
		}
		if m.focus == fieldLossless {
			return m.toggleLossless(), nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldInputDir:
		m.inputDir, cmd = m.inputDir.Update(msg)
	case fieldOutputFile:
		m.outputFile, cmd = m.outputFile.Update(msg)
	case fieldFPS:
		m.fps, cmd = m.fps.Update(msg)
	case fieldQuality:
		m.quality, cmd = m.quality.Update(msg)
	}
	return m, cmd
}

func (m Model) moveFocus(delta int) (Model, tea.Cmd) {
	fields := m.visibleFields()
	current := 0
	for i, f := range fields {
		if f == m.focus {
			current = i
			break
		}
	}
	next := (current + delta + len(fields)) % len(fields)

	leavingInputDir := m.focus == fieldInputDir && fields[next] != fieldInputDir
	m.focus = fields[next]

	m.inputDir.Blur()
	m.outputFile.Blur()
	m.fps.Blur()
	m.quality.Blur()
	var cmd tea.Cmd
	switch m.focus {
	case fieldInputDir:
		cmd = m.inputDir.Focus()
	case fieldOutputFile:
		cmd = m.outputFile.Focus()
	case fieldFPS:
		cmd = m.fps.Focus()
	case fieldQuality:
		cmd = m.quality.Focus()
	}

	if leavingInputDir {
		return m, tea.Batch(cmd, m.previewCmd())
	}
	return m, cmd
}

// toggleFormat flips the output container. When the output filename still
// carries the previous format's default name, it is swapped to the new one.
func (m Model) toggleFormat() Model {
	previous := m.format
	if m.format == assembly.FormatWebP {
		m.format = assembly.FormatAPNG
	} else {
		m.format = assembly.FormatWebP
	}

	value := m.outputFile.Value()
	if filepath.Base(value) == previous.DefaultOutputName() {
		m.outputFile.SetValue(filepath.Join(filepath.Dir(value), m.format.DefaultOutputName()))
	}

	// A hidden field must never keep focus.
	if m.format == assembly.FormatAPNG && (m.focus == fieldLossless || m.focus == fieldQuality) {
		m.focus = fieldFormat
	}
	return m
}

func (m Model) toggleLossless() Model {
	m.lossless = !m.lossless
	if m.lossless && m.focus == fieldQuality {
		m.focus = fieldLossless
	}
	return m
}

func (m Model) previewCmd() tea.Cmd {
	dir := strings.TrimSpace(m.inputDir.Value())
	if dir == "" {
		return nil
	}
	return func() tea.Msg {
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			return previewMsg{dir: dir, err: err}
		}
		preview, err := assembly.Scout(expanded)
		return previewMsg{dir: dir, preview: preview, err: err}
	}
}

func (m Model) params() (assembly.Params, error) {
	fps, err := strconv.Atoi(strings.TrimSpace(m.fps.Value()))
	if err != nil {
		return assembly.Params{}, fmt.Errorf("frame rate must be a whole number")
	}
	quality := 100
	if m.format == assembly.FormatWebP && !m.lossless {
		quality, err = strconv.Atoi(strings.TrimSpace(m.quality.Value()))
		if err != nil {
			return assembly.Params{}, fmt.Errorf("quality must be a whole number")
		}
	}
	params := assembly.Params{
		Format:   m.format,
		FPS:      fps,
		Quality:  quality,
		Lossless: m.format == assembly.FormatWebP && m.lossless,
	}
	params.Normalize()
	return params, nil
}

func (m Model) startConversion() (Model, tea.Cmd) {
	if m.converting {
		return m, nil
	}

	inputDir := strings.TrimSpace(m.inputDir.Value())
	if inputDir == "" {
		return m.showToast(toastError, "Input directory is required")
	}
	outputPath := strings.TrimSpace(m.outputFile.Value())
	if outputPath == "" {
		return m.showToast(toastError, "Output file is required")
	}

	params, err := m.params()
	if err != nil {
		return m.showToast(toastError, err.Error())
	}
	if err := params.Validate(outputPath); err != nil {
		return m.showToast(toastError, err.Error())
	}

	expandedDir, err := config.ExpandPath(inputDir)
	if err != nil {
		return m.showToast(toastError, err.Error())
	}
	expandedOut, err := config.ExpandPath(outputPath)
	if err != nil {
		return m.showToast(toastError, err.Error())
	}

	m.converting = true
	next, _ := m.showToast(toastProgress, "Converting...")
	cfg := m.cfg
	logger := m.logger
	return next, tea.Batch(
		next.spinner.Tick,
		func() tea.Msg {
			result, err := workflow.Convert(context.Background(), cfg, logger, expandedDir, expandedOut, params, nil)
			return convertDoneMsg{result: result, output: expandedOut, err: err}
		},
	)
}

func (m Model) showToast(kind toastKind, text string) (Model, tea.Cmd) {
	m.toast = toast{kind: kind, text: text, seq: m.toast.seq + 1}
	if kind == toastProgress {
		return m, nil
	}
	seq := m.toast.seq
	return m, tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return toastClearMsg{seq: seq}
	})
}

// Run starts the interactive form and blocks until the user exits.
func Run(cfg *config.Config, logger *slog.Logger) error {
	program := tea.NewProgram(New(cfg, logger))
	_, err := program.Run()
	return err
}
