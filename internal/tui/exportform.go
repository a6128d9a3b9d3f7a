package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"soroview/internal/format"
	"soroview/internal/models"
)

// exportForm is the in-process export dialog: a since/until pair in
// datetime-input form plus the filter selection handed over when the
// dialog opened.
type exportForm struct {
	since    textinput.Model
	until    textinput.Model
	focusIdx int
	filters  models.ExportFilters
	visible  bool
	errText  string
	loc      *time.Location
}

func newExportForm(loc *time.Location) *exportForm {
	since := textinput.New()
	since.Placeholder = "YYYY-MM-DDTHH:mm"
	since.CharLimit = 16
	since.Width = 18

	until := textinput.New()
	until.Placeholder = "YYYY-MM-DDTHH:mm"
	until.CharLimit = 16
	until.Width = 18

	return &exportForm{since: since, until: until, loc: loc}
}

// open seeds the form from the coordinator's filter selection.
func (f *exportForm) open(filters models.ExportFilters) {
	f.visible = true
	f.filters = filters
	f.errText = ""
	if filters.Since != nil {
		f.since.SetValue(format.ToDateTimeInputValue(*filters.Since, f.loc))
	} else {
		f.since.SetValue("")
	}
	if filters.Until != nil {
		f.until.SetValue(format.ToDateTimeInputValue(*filters.Until, f.loc))
	} else {
		f.until.SetValue("")
	}
	f.focusIdx = 0
	f.since.Focus()
	f.until.Blur()
}

func (f *exportForm) reset() {
	f.visible = false
	f.errText = ""
	f.since.Blur()
	f.until.Blur()
}

// cycleFocus moves between the two date fields.
func (f *exportForm) cycleFocus() {
	f.focusIdx = (f.focusIdx + 1) % 2
	if f.focusIdx == 0 {
		f.since.Focus()
		f.until.Blur()
		return
	}
	f.until.Focus()
	f.since.Blur()
}
