// Package tui renders one contract's event timeline in the terminal.
// It is a thin shell: all interactive semantics live in the timeline
// controller; this package maps key presses onto controller commands,
// runs the controller's loads as asynchronous tea commands, and draws
// the derived view.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"soroview/internal/export"
	"soroview/internal/gateway"
	"soroview/internal/models"
	"soroview/internal/timeline"
)

type focusArea int

const (
	focusFilters focusArea = iota
	focusGroups
)

type contractLoadedMsg struct {
	gen  uint64
	info *models.ContractInfo
	err  error
}

type eventTypesLoadedMsg struct {
	gen   uint64
	types []string
	err   error
}

type timelineLoadedMsg struct {
	gen    uint64
	result *models.EventTimelineResult
	err    error
}

// Model is the Bubble Tea model for one contract session.
type Model struct {
	controller  *timeline.Controller
	coordinator *export.Coordinator
	client      *gateway.Client
	form        *exportForm
	keys        keyMap

	focus        focusArea
	filterCursor int
	groupCursor  int
	width        int
	height       int
	quitting     bool
}

// dialogSurface is the in-process export surface.
type dialogSurface struct {
	form *exportForm
}

func (s *dialogSurface) Open(filters models.ExportFilters) { s.form.open(filters) }
func (s *dialogSurface) Close()                            { s.form.reset() }

// NewModel builds the model for contractID. timezone is the IANA zone
// name sent with timeline requests; loc is the matching location.
func NewModel(contractID string, client *gateway.Client, timezone string, loc *time.Location) *Model {
	controller := timeline.NewController(contractID, timezone, loc)
	form := newExportForm(loc)
	return &Model{
		controller:  controller,
		coordinator: export.NewCoordinator(controller, &dialogSurface{form: form}, loc),
		client:      client,
		form:        form,
		keys:        defaultKeyMap(),
	}
}

// Init kicks off the three initial loads.
func (m *Model) Init() tea.Cmd {
	return m.startLoads(m.controller.Start())
}

func (m *Model) startLoads(loads []timeline.Load) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(loads))
	for _, load := range loads {
		cmds = append(cmds, m.loadCmd(load))
	}
	return tea.Batch(cmds...)
}

func (m *Model) startLoad(load timeline.Load, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	return m.loadCmd(load)
}

// loadCmd turns one controller load into a tea command. The command
// carries the load's generation so a superseded result is discarded
// on arrival.
func (m *Model) loadCmd(load timeline.Load) tea.Cmd {
	contractID := m.controller.ContractID()
	switch load.Kind {
	case timeline.LoadContract:
		return func() tea.Msg {
			info, err := m.client.FetchContract(context.Background(), contractID)
			return contractLoadedMsg{gen: load.Gen, info: info, err: err}
		}
	case timeline.LoadEventTypes:
		return func() tea.Msg {
			types, err := m.client.FetchEventTypes(context.Background(), contractID)
			return eventTypesLoadedMsg{gen: load.Gen, types: types, err: err}
		}
	default:
		request := load.Timeline
		return func() tea.Msg {
			result, err := m.client.FetchTimeline(context.Background(), request)
			return timelineLoadedMsg{gen: load.Gen, result: result, err: err}
		}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case contractLoadedMsg:
		if !m.controller.ApplyContract(msg.gen, msg.info, msg.err) {
			slog.Debug("Discarded stale contract result", "gen", msg.gen)
		}
		return m, nil

	case eventTypesLoadedMsg:
		if m.controller.ApplyEventTypes(msg.gen, msg.types, msg.err) {
			m.clampCursors()
		}
		return m, nil

	case timelineLoadedMsg:
		if m.controller.ApplyTimeline(msg.gen, msg.result, msg.err) {
			m.clampCursors()
		}
		return m, nil

	case tea.KeyMsg:
		if m.form.visible {
			return m.updateExportDialog(msg)
		}
		return m.updateMain(msg)
	}
	return m, nil
}

func (m *Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.controller.BuildView()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.ZoomOut):
		return m, m.startLoad(m.controller.ZoomOut())

	case key.Matches(msg, m.keys.ZoomIn):
		return m, m.startLoad(m.controller.ZoomIn())

	case key.Matches(msg, m.keys.ClearFilters):
		return m, m.startLoad(m.controller.ClearFilters())

	case key.Matches(msg, m.keys.Export):
		m.coordinator.Open()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		if m.focus == focusFilters {
			m.focus = focusGroups
		} else {
			m.focus = focusFilters
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, view)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, view)
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if m.focus == focusFilters {
			if m.filterCursor < len(view.FilterOptions) {
				option := view.FilterOptions[m.filterCursor]
				return m, m.startLoad(m.controller.ToggleEventType(option.EventType, !option.Selected))
			}
			return m, nil
		}
		if m.groupCursor < len(view.Groups) {
			m.controller.ToggleGroup(view.Groups[m.groupCursor].Key)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) updateExportDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.coordinator.Close()
		return m, nil

	case "tab":
		m.form.cycleFocus()
		return m, nil

	case "enter":
		since := strings.TrimSpace(m.form.since.Value())
		until := strings.TrimSpace(m.form.until.Value())
		if message := m.coordinator.SetDateRange(since, until); message != "" {
			m.form.errText = message
			return m, nil
		}
		count := len(m.form.filters.EventTypes)
		m.coordinator.Close()
		if count == 0 {
			m.coordinator.Report("Export request submitted for all event types.", false)
		} else {
			m.coordinator.Report(fmt.Sprintf("Export request submitted for %d event types.", count), false)
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.form.focusIdx == 0 {
		m.form.since, cmd = m.form.since.Update(msg)
	} else {
		m.form.until, cmd = m.form.until.Update(msg)
	}
	return m, cmd
}

func (m *Model) moveCursor(delta int, view timeline.View) {
	if m.focus == focusFilters {
		m.filterCursor = clamp(m.filterCursor+delta, len(view.FilterOptions))
		return
	}
	m.groupCursor = clamp(m.groupCursor+delta, len(view.Groups))
}

// clampCursors keeps the cursors inside the refreshed lists.
func (m *Model) clampCursors() {
	view := m.controller.BuildView()
	m.filterCursor = clamp(m.filterCursor, len(view.FilterOptions))
	m.groupCursor = clamp(m.groupCursor, len(view.Groups))
}

func clamp(value, length int) int {
	if length == 0 {
		return 0
	}
	if value < 0 {
		return 0
	}
	if value >= length {
		return length - 1
	}
	return value
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	view := m.controller.BuildView()
	var b strings.Builder

	b.WriteString(kickerStyle.Render("SoroScan Contract Event History"))
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(view.ContractName))
	b.WriteString("\n")
	b.WriteString(contractIDStyle.Render(view.ContractID))
	b.WriteString("\n\n")

	b.WriteString(m.renderZoom(view))
	b.WriteString("\n\n")
	b.WriteString(m.renderFilters(view))
	b.WriteString("\n")
	b.WriteString(m.renderTimeline(view))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab pane · space toggle · +/- zoom · c clear · e export · q quit"))

	if m.form.visible {
		b.WriteString("\n\n")
		b.WriteString(m.renderExportDialog())
	}
	return b.String()
}

func (m *Model) renderZoom(view timeline.View) string {
	zoomOut := "Zoom Out (-)"
	if !view.CanZoomOut {
		zoomOut = disabledStyle.Render(zoomOut)
	}
	zoomIn := "Zoom In (+)"
	if !view.CanZoomIn {
		zoomIn = disabledStyle.Render(zoomIn)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		sectionStyle.Render("Zoom"), "  ",
		zoomOut, "  ",
		pillStyle.Render(view.ZoomLabel), "  ",
		zoomIn,
	)
}

func (m *Model) renderFilters(view timeline.View) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Filter by Event Type"))
	b.WriteString("\n")

	if len(view.FilterOptions) == 0 {
		b.WriteString(summaryStyle.Render("No event types found for this contract."))
		b.WriteString("\n")
		return b.String()
	}

	for i, option := range view.FilterOptions {
		cursor := "  "
		if m.focus == focusFilters && i == m.filterCursor {
			cursor = cursorStyle.Render("> ")
		}
		check := "[ ]"
		if option.Selected {
			check = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, check, option.EventType))
	}

	clear := "Clear Filters (c)"
	if !view.CanClearFilters {
		clear = disabledStyle.Render(clear)
	}
	b.WriteString(clear)
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderTimeline(view timeline.View) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Timeline"))
	b.WriteString("  ")
	b.WriteString(summaryStyle.Render(view.Summary))
	b.WriteString("\n")

	if view.Status.IsError {
		b.WriteString(errorStyle.Render(view.Status.Message))
	} else {
		b.WriteString(statusStyle.Render(view.Status.Message))
	}
	b.WriteString("\n\n")

	if view.EmptyText != "" {
		b.WriteString(summaryStyle.Render(view.EmptyText))
		b.WriteString("\n")
		return b.String()
	}

	for i, group := range view.Groups {
		cursor := "  "
		if m.focus == focusGroups && i == m.groupCursor {
			cursor = cursorStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s  %s\n",
			cursor,
			branchStyle.Render(group.Marker+" "+group.Branch),
			group.Range,
			summaryStyle.Render(group.Counts+" · "+group.Total),
		))
		for _, event := range group.Events {
			b.WriteString("    ")
			b.WriteString(event.Detail)
			b.WriteString("\n")
			if event.Payload != "" {
				b.WriteString("    ")
				b.WriteString(payloadStyle.Render(event.Payload))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func (m *Model) renderExportDialog() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Export Events"))
	b.WriteString("\n\n")
	if len(m.form.filters.EventTypes) == 0 {
		b.WriteString("Event types: all\n")
	} else {
		b.WriteString("Event types: " + strings.Join(m.form.filters.EventTypes, ", ") + "\n")
	}
	b.WriteString("Since: " + m.form.since.View() + "\n")
	b.WriteString("Until: " + m.form.until.View() + "\n")
	if m.form.errText != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.form.errText))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter submit · tab field · esc cancel"))
	return dialogStyle.Render(b.String())
}
