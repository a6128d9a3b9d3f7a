package timeline

import (
	"fmt"
	"strings"
	"time"

	"soroview/internal/format"
	"soroview/internal/models"
)

// View is the renderable projection of the controller state. It is
// derived, never stored; building it has no side effects.
type View struct {
	ContractID      string
	ContractName    string
	ContractMissing bool

	Summary string
	Status  Status

	ZoomLabel  string
	CanZoomOut bool
	CanZoomIn  bool

	FilterOptions   []FilterOption
	CanClearFilters bool

	CanExport  bool
	ExportOpen bool

	// EmptyText is set when there are no groups to render.
	EmptyText string
	Groups    []GroupRow
}

// FilterOption is one entry of the event type checklist.
type FilterOption struct {
	EventType string
	Selected  bool
}

// GroupRow is one timeline group prepared for rendering.
type GroupRow struct {
	Key      string
	Marker   string // "[-]" expanded, "[+]" collapsed
	Branch   string // "|--" interior, "\--" terminal
	Range    string
	Counts   string
	Total    string
	Expanded bool

	// Events is populated only while the group is expanded.
	Events []EventLine
}

// EventLine is one event detail row inside an expanded group.
type EventLine struct {
	Detail  string
	Payload string
}

// BuildView derives the renderable view from the current state.
func (c *Controller) BuildView() View {
	view := View{
		ContractID:      c.contractID,
		ContractName:    c.contractName,
		ContractMissing: c.contractMissing,
		Status:          c.status,
		ZoomLabel:       models.BucketLabels[models.Buckets[c.bucketIndex]],
		CanZoomOut:      c.bucketIndex > 0,
		CanZoomIn:       c.bucketIndex < len(models.Buckets)-1,
		CanClearFilters: len(c.selected) > 0,
		CanExport:       !c.contractMissing,
		ExportOpen:      c.exportOpen,
	}

	for _, eventType := range c.eventTypes {
		view.FilterOptions = append(view.FilterOptions, FilterOption{
			EventType: eventType,
			Selected:  c.isSelected(eventType),
		})
	}

	view.Summary = c.summaryText()

	if c.timeline == nil || len(c.timeline.Groups) == 0 {
		if c.contractMissing {
			view.EmptyText = "This contract does not exist in the indexed registry."
		} else {
			view.EmptyText = "No events found in the selected filter and zoom range."
		}
		return view
	}

	bucketSize := c.timeline.BucketSize
	for i, group := range c.timeline.Groups {
		view.Groups = append(view.Groups, c.buildGroupRow(group, bucketSize, i == len(c.timeline.Groups)-1))
	}
	return view
}

func (c *Controller) summaryText() string {
	if c.timeline != nil {
		return fmt.Sprintf("%d events across %d groups (%s to %s)",
			c.timeline.TotalEvents,
			len(c.timeline.Groups),
			format.FormatDateTime(c.timeline.Since, c.loc),
			format.FormatDateTime(c.timeline.Until, c.loc),
		)
	}
	if c.contractMissing {
		return "Contract not found."
	}
	return "Timeline unavailable."
}

func (c *Controller) isSelected(eventType string) bool {
	for _, selected := range c.selected {
		if selected == eventType {
			return true
		}
	}
	return false
}

func (c *Controller) buildGroupRow(group models.EventTimelineGroup, bucketSize models.BucketSize, last bool) GroupRow {
	row := GroupRow{
		Key:      group.Start,
		Marker:   "[+]",
		Branch:   "|--",
		Range:    formatRange(group.Start, group.End, bucketSize, c.loc),
		Counts:   formatTypeCounts(group.EventTypeCounts),
		Total:    fmt.Sprintf("%d events", group.EventCount),
		Expanded: c.IsExpanded(group.Start),
	}
	if last {
		row.Branch = `\--`
	}
	if !row.Expanded {
		return row
	}

	row.Marker = "[-]"
	if len(group.Events) == 0 {
		row.Events = []EventLine{{Detail: "No event details in this group."}}
		return row
	}
	for _, event := range group.Events {
		row.Events = append(row.Events, EventLine{
			Detail: fmt.Sprintf("|   |-- %s [%s] ledger %d tx %s",
				format.FormatDateTime(event.Timestamp, c.loc),
				event.EventType,
				event.Ledger,
				format.ShortHash(event.TxHash),
			),
			Payload: format.TrimPayload(event.Payload, format.DefaultPayloadLength),
		})
	}
	return row
}

// formatTypeCounts renders a group's per-type breakdown, or a label
// when the group carries no categorized events.
func formatTypeCounts(counts []models.EventTypeCount) string {
	if len(counts) == 0 {
		return "No categorized events"
	}
	parts := make([]string, 0, len(counts))
	for _, item := range counts {
		parts = append(parts, fmt.Sprintf("[%s] %d", item.EventType, item.Count))
	}
	return strings.Join(parts, ", ")
}

// formatRange renders a group's half-open interval, date-only at the
// ONE_DAY granularity.
func formatRange(start, end string, bucketSize models.BucketSize, loc *time.Location) string {
	if bucketSize == models.BucketOneDay {
		return format.FormatDateOnly(start, loc) + " - " + format.FormatDateOnly(end, loc)
	}
	return format.FormatDateTime(start, loc) + " - " + format.FormatDateTime(end, loc)
}
