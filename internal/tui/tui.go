// Package tui is an interactive mapset picker for the hitsound copier.
//
// It lists the difficulties in a mapset directory, lets the user mark one as
// the hitsound source and any others as targets, previews collected
// hitsounds, and runs the copy with a spinner.
package tui

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/julianknutsen/mapping-tools/internal/beatmap"
	"github.com/julianknutsen/mapping-tools/internal/hitsounds"
	"go.uber.org/zap"
)

// Config holds the parameters needed to launch the TUI.
type Config struct {
	Dir      string // mapset directory
	Leniency int    // initial leniency in ms
	Backup   bool   // keep .bak copies of rewritten targets
	Logger   *zap.SugaredLogger
}

// Model is the root TUI model that routes between views.
type Model struct {
	cfg      Config
	active   activeView
	picker   pickerModel
	preview  previewModel
	spinner  spinner.Model
	copying  bool
	bar      statusBar
	width    int
	height   int
	quitting bool
}

// New creates a new root TUI model.
func New(cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = styleDim
	return Model{
		cfg:     cfg,
		active:  viewPicker,
		picker:  newPickerModel(cfg.Leniency),
		preview: newPreviewModel(),
		spinner: sp,
		bar:     statusBar{label: cfg.Dir},
	}
}

// Run starts the TUI on the terminal and blocks until it exits.
func Run(cfg Config) error {
	_, err := bubbletea.NewProgram(New(cfg), bubbletea.WithAltScreen()).Run()
	return err
}

// Init starts the mapset scan.
func (m Model) Init() bubbletea.Cmd {
	return loadMapset(m.cfg.Dir)
}

// Update processes messages.
func (m Model) Update(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	switch msg := msg.(type) {
	case bubbletea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, bubbletea.Quit
		}
		if m.copying {
			return m, nil
		}
		if m.active == viewPicker && !m.picker.editing && !m.picker.confirming && key.Matches(msg, keys.Reload) {
			m.picker.loading = true
			return m, loadMapset(m.cfg.Dir)
		}

	case bubbletea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.width = msg.Width
		m.picker.setSize(msg.Width, msg.Height-1) // -1 for statusbar
		m.preview.setSize(msg.Width, msg.Height-1)
		return m, nil

	case mapsetMsg:
		m.picker.setData(msg)
		return m, nil

	case previewRequestMsg:
		m.active = viewPreview
		m.preview.open(msg)
		return m, collectPreview(msg.path)

	case previewMsg:
		m.preview.setData(msg)
		return m, nil

	case backMsg:
		m.active = viewPicker
		return m, nil

	case copyRequestMsg:
		m.copying = true
		m.picker.result = ""
		return m, bubbletea.Batch(m.spinner.Tick, runCopy(m.cfg, msg))

	case copyResultMsg:
		m.copying = false
		m.picker.result = summarize(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.copying {
			return m, nil
		}
		var cmd bubbletea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd bubbletea.Cmd
	switch m.active {
	case viewPicker:
		m.picker, cmd = m.picker.update(msg)
	case viewPreview:
		m.preview, cmd = m.preview.update(msg)
	}
	return m, cmd
}

// View renders the current view.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var content, hints string
	switch m.active {
	case viewPicker:
		content = m.picker.view()
		if m.copying {
			content += "\n" + m.spinner.View() + " Copying hitsounds..."
		}
		hints = "j/k: move  s: source  space: target  a: all  c: copy  enter: hitsounds  l: leniency  r: reload  q: quit"
	case viewPreview:
		content = m.preview.view()
		hints = "j/k: scroll  esc: back  q: quit"
	}

	content = lipgloss.NewStyle().
		Width(m.width).
		Height(max(0, m.height-1)).
		Render(content)
	return content + "\n" + m.bar.render(hints)
}

func summarize(msg copyResultMsg) string {
	if msg.err != nil {
		return styleError.Render("Error: " + msg.err.Error())
	}
	written := 0
	for _, r := range msg.results {
		if !r.Skipped {
			written++
		}
	}
	return styleSuccess.Render(fmt.Sprintf("Copied hitsounds to %d difficulties", written))
}

// --- async commands ---

func loadMapset(dir string) bubbletea.Cmd {
	return func() bubbletea.Msg {
		paths, err := beatmap.Difficulties(dir)
		if err != nil {
			return mapsetMsg{err: err}
		}
		diffs := make([]difficulty, 0, len(paths))
		for _, p := range paths {
			d := difficulty{path: p, name: filepath.Base(p)}
			bm, _, err := beatmap.ReadFile(p)
			if err != nil {
				d.err = err
			} else {
				d.objects = len(bm.HitObjects)
				if bm.Metadata.Version != "" {
					d.name = bm.Metadata.Version
				}
			}
			diffs = append(diffs, d)
		}
		return mapsetMsg{diffs: diffs}
	}
}

func collectPreview(path string) bubbletea.Cmd {
	return func() bubbletea.Msg {
		bm, _, err := beatmap.ReadFile(path)
		if err != nil {
			return previewMsg{path: path, err: err}
		}
		data, err := hitsounds.Collect(bm, hitsounds.Options{})
		return previewMsg{path: path, data: data, err: err}
	}
}

func runCopy(cfg Config, req copyRequestMsg) bubbletea.Cmd {
	return func() bubbletea.Msg {
		c := &hitsounds.FileCopier{
			Options: hitsounds.Options{Leniency: req.leniency, Logger: cfg.Logger},
			Backup:  cfg.Backup,
		}
		results, err := c.CopyFiles(context.Background(), req.source, req.targets)
		return copyResultMsg{results: results, err: err}
	}
}
