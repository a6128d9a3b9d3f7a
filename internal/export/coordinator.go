// Package export bridges the timeline controller and the external
// export surface. The surface itself (dialog rendering, file
// generation) is a collaborator; the coordinator only hands it the
// current filter selection and routes its outcome report back into
// the controller's status line.
package export

import (
	"time"

	"soroview/internal/format"
	"soroview/internal/models"
	"soroview/internal/timeline"
)

// Surface is the external export boundary. Open receives the starting
// filter selection; the surface reports back through the coordinator.
type Surface interface {
	Open(filters models.ExportFilters)
	Close()
}

// Coordinator wires one controller to one export surface.
type Coordinator struct {
	controller *timeline.Controller
	surface    Surface
	loc        *time.Location

	// Manual since/until override in datetime-input form. When set,
	// it replaces the timeline bounds handed to the surface.
	since string
	until string
}

// NewCoordinator creates the coordinator. loc interprets manual
// datetime-input values.
func NewCoordinator(controller *timeline.Controller, surface Surface, loc *time.Location) *Coordinator {
	if loc == nil {
		loc = time.UTC
	}
	return &Coordinator{controller: controller, surface: surface, loc: loc}
}

// SetDateRange records a manual since/until override. The returned
// string is the validation message; the override is only stored when
// the pair validates.
func (c *Coordinator) SetDateRange(since, until string) string {
	if message := format.ValidateDateRange(since, until, c.loc); message != "" {
		return message
	}
	c.since = since
	c.until = until
	return ""
}

// Open opens the export dialog seeded with the controller's current
// selection. Reports false when the controller refuses (missing
// contract).
func (c *Coordinator) Open() bool {
	filters, ok := c.controller.OpenExport()
	if !ok {
		return false
	}
	if c.since != "" && c.until != "" {
		filters.Since = format.ToISOOrNull(c.since, c.loc)
		filters.Until = format.ToISOOrNull(c.until, c.loc)
	}
	c.surface.Open(filters)
	return true
}

// Close closes the dialog on both sides of the boundary.
func (c *Coordinator) Close() {
	c.controller.CloseExport()
	c.surface.Close()
}

// Report routes the surface's outcome into the controller's status
// line, replacing whatever status was previously shown.
func (c *Coordinator) Report(message string, isError bool) {
	c.controller.SetStatus(message, isError)
}
