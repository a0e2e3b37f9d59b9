package tui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	bubbletea "github.com/charmbracelet/bubbletea"
)

// pickerModel lists the mapset's difficulties and tracks which one is the
// hitsound source and which are targets.
type pickerModel struct {
	diffs      []difficulty
	cursor     int
	source     int // -1 until chosen
	targets    map[int]bool
	leniency   int
	editing    bool
	input      textinput.Model
	confirming bool
	width      int
	height     int
	loading    bool
	err        error
	result     string
}

func newPickerModel(leniency int) pickerModel {
	ti := textinput.New()
	ti.Placeholder = "ms"
	ti.CharLimit = 4
	return pickerModel{
		source:   -1,
		targets:  make(map[int]bool),
		leniency: leniency,
		input:    ti,
		loading:  true,
	}
}

func (m *pickerModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// setData replaces the list. Selections are reset since indexes move.
func (m *pickerModel) setData(msg mapsetMsg) {
	m.loading = false
	m.err = msg.err
	m.diffs = msg.diffs
	m.source = -1
	m.targets = make(map[int]bool)
	m.confirming = false
	if m.cursor >= len(m.diffs) {
		m.cursor = max(0, len(m.diffs)-1)
	}
}

func (m pickerModel) targetPaths() []string {
	var out []string
	for i, d := range m.diffs {
		if m.targets[i] {
			out = append(out, d.path)
		}
	}
	return out
}

func (m pickerModel) update(msg bubbletea.Msg) (pickerModel, bubbletea.Cmd) {
	if m.editing {
		return m.updateLeniency(msg)
	}
	km, ok := msg.(bubbletea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.confirming {
		switch {
		case key.Matches(km, keys.Confirm):
			m.confirming = false
			req := copyRequestMsg{source: m.diffs[m.source].path, targets: m.targetPaths(), leniency: m.leniency}
			return m, func() bubbletea.Msg { return req }
		case key.Matches(km, keys.Cancel):
			m.confirming = false
		}
		return m, nil
	}

	switch {
	case key.Matches(km, keys.Quit):
		return m, bubbletea.Quit
	case key.Matches(km, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, keys.Down):
		if m.cursor < len(m.diffs)-1 {
			m.cursor++
		}
	case len(m.diffs) == 0:
		return m, nil
	case key.Matches(km, keys.Source):
		if m.diffs[m.cursor].err != nil {
			m.result = styleError.Render("cannot use an unreadable difficulty as source")
			return m, nil
		}
		m.source = m.cursor
		delete(m.targets, m.cursor)
		m.result = ""
	case key.Matches(km, keys.Toggle):
		if m.cursor == m.source {
			return m, nil
		}
		if m.diffs[m.cursor].err != nil {
			m.result = styleError.Render("cannot copy onto an unreadable difficulty")
			return m, nil
		}
		m.targets[m.cursor] = !m.targets[m.cursor]
		if !m.targets[m.cursor] {
			delete(m.targets, m.cursor)
		}
	case key.Matches(km, keys.All):
		eligible := make(map[int]bool)
		for i, d := range m.diffs {
			if i != m.source && d.err == nil {
				eligible[i] = true
			}
		}
		if len(m.targets) < len(eligible) {
			m.targets = eligible
		} else {
			m.targets = make(map[int]bool)
		}
	case key.Matches(km, keys.Copy):
		switch {
		case m.source < 0:
			m.result = styleError.Render("choose a source with s first")
		case len(m.targets) == 0:
			m.result = styleError.Render("choose at least one target with space")
		default:
			m.confirming = true
			m.result = ""
		}
	case key.Matches(km, keys.Preview):
		d := m.diffs[m.cursor]
		return m, func() bubbletea.Msg { return previewRequestMsg{path: d.path, name: d.name} }
	case key.Matches(km, keys.Leniency):
		m.editing = true
		m.input.SetValue(strconv.Itoa(m.leniency))
		m.input.CursorEnd()
		return m, m.input.Focus()
	}
	return m, nil
}

func (m pickerModel) updateLeniency(msg bubbletea.Msg) (pickerModel, bubbletea.Cmd) {
	if km, ok := msg.(bubbletea.KeyMsg); ok {
		switch km.Type {
		case bubbletea.KeyEnter:
			n, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
			if err != nil || n < 0 {
				m.result = styleError.Render("leniency must be a non-negative integer")
			} else {
				m.leniency = n
				m.result = ""
			}
			m.editing = false
			m.input.Blur()
			return m, nil
		case bubbletea.KeyEsc:
			m.editing = false
			m.input.Blur()
			return m, nil
		}
	}
	var cmd bubbletea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m pickerModel) view() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Copy hitsounds"))
	b.WriteString(styleDim.Render(fmt.Sprintf("  leniency %dms", m.leniency)))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(styleDim.Render("Scanning mapset..."))
		return b.String()
	case m.err != nil:
		b.WriteString(styleError.Render("Error: " + m.err.Error()))
		return b.String()
	case len(m.diffs) == 0:
		b.WriteString(styleDim.Render("No .osu files in this directory."))
		return b.String()
	}

	for i, d := range m.diffs {
		line := roleMark(i == m.source, m.targets[i]) + d.name
		if d.err != nil {
			line += styleDim.Render("  (unreadable)")
		} else {
			line += styleDim.Render(fmt.Sprintf("  %d objects  %s", d.objects, filepath.Base(d.path)))
		}
		if i == m.cursor {
			line = styleSelected.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	switch {
	case m.editing:
		b.WriteString("Leniency: " + m.input.View())
	case m.confirming:
		fmt.Fprintf(&b, "Copy hitsounds from %s to %d difficulties? (y/n)",
			styleSource.Render(m.diffs[m.source].name), len(m.targets))
	default:
		b.WriteString(m.result)
	}
	return b.String()
}
