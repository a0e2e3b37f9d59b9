package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/julianknutsen/mapping-tools/internal/hitsounds"
	"github.com/julianknutsen/mapping-tools/internal/style"
)

// previewModel shows the hitsounds collected from one difficulty.
type previewModel struct {
	name     string
	path     string
	data     *hitsounds.Data
	viewport viewport.Model
	width    int
	height   int
	loading  bool
	err      error
}

func newPreviewModel() previewModel {
	return previewModel{viewport: viewport.New(0, 0)}
}

func (m *previewModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = max(1, h-2) // title + blank line
}

func (m *previewModel) open(req previewRequestMsg) {
	m.name = req.name
	m.path = req.path
	m.data = nil
	m.err = nil
	m.loading = true
}

func (m *previewModel) setData(msg previewMsg) {
	if msg.path != m.path {
		return
	}
	m.loading = false
	m.err = msg.err
	m.data = msg.data
	if m.data != nil {
		m.viewport.SetContent(renderHits(m.data))
		m.viewport.GotoTop()
	}
}

func renderHits(data *hitsounds.Data) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-10s  %-20s  %-7s  %-7s  %s\n", "time", "additions", "normal", "addition", "index")
	for _, h := range data.Hits {
		fmt.Fprintf(&b, "%-10s  %-20s  %-7s  %-7s  %d\n",
			style.Timestamp(h.Time), h.Additions, h.SampleInfo.SampleSet, h.SampleInfo.AdditionSet, h.SampleInfo.Index)
	}
	fmt.Fprintf(&b, "\n%d hits, %d timing sections\n", len(data.Hits), len(data.Points))
	return b.String()
}

func (m previewModel) update(msg bubbletea.Msg) (previewModel, bubbletea.Cmd) {
	if km, ok := msg.(bubbletea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.Back):
			return m, func() bubbletea.Msg { return backMsg{} }
		case key.Matches(km, keys.Quit):
			return m, bubbletea.Quit
		}
	}
	var cmd bubbletea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m previewModel) view() string {
	title := styleTitle.Render("Hitsounds: " + m.name)
	switch {
	case m.loading:
		return title + "\n\n" + styleDim.Render("Collecting...")
	case m.err != nil:
		return title + "\n\n" + styleError.Render("Error: "+m.err.Error())
	}
	return title + "\n\n" + m.viewport.View()
}
