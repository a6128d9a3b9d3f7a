// Package timeline owns the interactive state of one contract's event
// timeline session: zoom level, event type filters, per-group
// expand/collapse, status line, and the loaded timeline itself.
//
// The controller is a plain state machine. Mutating commands return
// the loads the caller must start; each load carries a generation
// number, and results are applied through the Apply methods, which
// discard anything from a superseded generation. State therefore
// always reflects the most recently initiated request, never an older
// one that resolved later.
package timeline

import (
	"time"

	"soroview/internal/models"
)

// limitGroups caps the number of groups requested per timeline fetch.
const limitGroups = 500

// LoadKind identifies one of the three independent load sequences.
type LoadKind int

const (
	LoadContract LoadKind = iota
	LoadEventTypes
	LoadTimeline
	loadKindCount
)

// Load describes one fetch the caller must start on behalf of the
// controller. Gen ties the eventual result back to the state that
// requested it.
type Load struct {
	Kind LoadKind
	Gen  uint64

	// Timeline is set when Kind is LoadTimeline.
	Timeline models.TimelineRequest
}

// Status is the controller's one-line status channel.
type Status struct {
	Message string
	IsError bool
}

// Controller holds the transient state for one contract session.
// It has a single owner; all methods are called from one goroutine.
type Controller struct {
	contractID      string
	contractName    string
	contractMissing bool

	bucketIndex int
	eventTypes  []string
	selected    []string
	expanded    map[string]struct{}
	timeline    *models.EventTimelineResult
	status      Status
	exportOpen  bool

	timezone string
	loc      *time.Location

	gens [loadKindCount]uint64
}

// NewController creates the controller for one contract. The zoom
// starts at THIRTY_MINUTES. timezone is the IANA zone name sent with
// timeline requests; loc is the matching location for rendering.
func NewController(contractID, timezone string, loc *time.Location) *Controller {
	if loc == nil {
		loc = time.UTC
	}
	if timezone == "" {
		timezone = "UTC"
	}
	return &Controller{
		contractID:   contractID,
		contractName: contractID,
		bucketIndex:  2,
		expanded:     make(map[string]struct{}),
		status:       Status{Message: "Loading timeline data..."},
		timezone:     timezone,
		loc:          loc,
	}
}

// Start issues the three initial loads for the contract session.
func (c *Controller) Start() []Load {
	contract := Load{Kind: LoadContract, Gen: c.next(LoadContract)}
	c.status = Status{Message: "Loading event type filters..."}
	types := Load{Kind: LoadEventTypes, Gen: c.next(LoadEventTypes)}
	return []Load{contract, types, c.reloadTimeline()}
}

func (c *Controller) next(kind LoadKind) uint64 {
	c.gens[kind]++
	return c.gens[kind]
}

// reloadTimeline starts a new timeline generation, superseding any
// in-flight timeline fetch.
func (c *Controller) reloadTimeline() Load {
	c.status = Status{Message: "Loading timeline..."}
	return Load{Kind: LoadTimeline, Gen: c.next(LoadTimeline), Timeline: c.timelineRequest()}
}

func (c *Controller) timelineRequest() models.TimelineRequest {
	var types []string
	if len(c.selected) > 0 {
		types = append([]string(nil), c.selected...)
	}
	return models.TimelineRequest{
		ContractID:    c.contractID,
		BucketSize:    models.Buckets[c.bucketIndex],
		EventTypes:    types,
		Timezone:      c.timezone,
		IncludeEvents: true,
		LimitGroups:   limitGroups,
	}
}

// ZoomOut moves one bucket coarser. Reports false at the floor.
func (c *Controller) ZoomOut() (Load, bool) {
	if c.bucketIndex <= 0 {
		return Load{}, false
	}
	c.bucketIndex--
	return c.reloadTimeline(), true
}

// ZoomIn moves one bucket finer. Reports false at the finest level.
func (c *Controller) ZoomIn() (Load, bool) {
	if c.bucketIndex >= len(models.Buckets)-1 {
		return Load{}, false
	}
	c.bucketIndex++
	return c.reloadTimeline(), true
}

// ToggleEventType adds or removes one event type from the filter
// selection. Redundant toggles are no-ops and start no load.
func (c *Controller) ToggleEventType(eventType string, checked bool) (Load, bool) {
	if checked {
		for _, existing := range c.selected {
			if existing == eventType {
				return Load{}, false
			}
		}
		c.selected = append(c.selected, eventType)
		return c.reloadTimeline(), true
	}

	kept := c.selected[:0]
	removed := false
	for _, existing := range c.selected {
		if existing == eventType {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	c.selected = kept
	if !removed {
		return Load{}, false
	}
	return c.reloadTimeline(), true
}

// ClearFilters empties the filter selection and collapses all groups.
// The joint reset is deliberate. No-op when nothing is selected.
func (c *Controller) ClearFilters() (Load, bool) {
	if len(c.selected) == 0 {
		return Load{}, false
	}
	c.selected = nil
	c.expanded = make(map[string]struct{})
	return c.reloadTimeline(), true
}

// ToggleGroup flips the expand state of one group, keyed by its
// bucket start timestamp. Keys for groups no longer present are
// harmless.
func (c *Controller) ToggleGroup(key string) {
	if _, ok := c.expanded[key]; ok {
		delete(c.expanded, key)
		return
	}
	c.expanded[key] = struct{}{}
}

// IsExpanded reports whether the group with the given start key is
// expanded.
func (c *Controller) IsExpanded(key string) bool {
	_, ok := c.expanded[key]
	return ok
}

// ApplyContract applies the outcome of a contract load. Results from
// a superseded generation are discarded and leave state untouched.
func (c *Controller) ApplyContract(gen uint64, info *models.ContractInfo, err error) bool {
	if gen != c.gens[LoadContract] {
		return false
	}
	if err != nil {
		c.status = Status{Message: errorMessage(err, "Unable to load contract details."), IsError: true}
		return true
	}
	if info == nil {
		c.contractMissing = true
		c.contractName = c.contractID
		return true
	}
	c.contractMissing = false
	c.contractName = info.Name
	if c.contractName == "" {
		c.contractName = c.contractID
	}
	return true
}

// ApplyEventTypes applies the outcome of an event type load. A
// failure surfaces as a status error but does not block the timeline.
// Stale filter selections are kept even when the type list changes.
func (c *Controller) ApplyEventTypes(gen uint64, types []string, err error) bool {
	if gen != c.gens[LoadEventTypes] {
		return false
	}
	if err != nil {
		c.status = Status{Message: errorMessage(err, "Unable to load event type filters."), IsError: true}
		return true
	}
	c.eventTypes = types
	c.status = Status{Message: "Event type filters loaded."}
	return true
}

// ApplyTimeline applies the outcome of a timeline load. On failure
// the previous timeline is cleared so the view never shows data from
// an earlier filter or zoom state.
func (c *Controller) ApplyTimeline(gen uint64, result *models.EventTimelineResult, err error) bool {
	if gen != c.gens[LoadTimeline] {
		return false
	}
	if err != nil {
		c.timeline = nil
		c.status = Status{Message: errorMessage(err, "Timeline unavailable."), IsError: true}
		return true
	}
	c.timeline = result
	c.status = Status{Message: "Timeline loaded."}
	return true
}

// OpenExport opens the export dialog and returns the filter selection
// to seed it with: the current event type selection plus the loaded
// timeline's bounds. Reports false when the contract is missing.
func (c *Controller) OpenExport() (models.ExportFilters, bool) {
	if c.contractMissing {
		return models.ExportFilters{}, false
	}
	c.exportOpen = true
	filters := models.ExportFilters{
		EventTypes: append([]string(nil), c.selected...),
	}
	if c.timeline != nil {
		since := c.timeline.Since
		until := c.timeline.Until
		filters.Since = &since
		filters.Until = &until
	}
	return filters, true
}

// CloseExport closes the export dialog.
func (c *Controller) CloseExport() {
	c.exportOpen = false
}

// SetStatus replaces the status line. Used by the export coordinator
// to route the export surface's outcome report.
func (c *Controller) SetStatus(message string, isError bool) {
	c.status = Status{Message: message, IsError: isError}
}

// ContractID returns the contract this session is scoped to.
func (c *Controller) ContractID() string {
	return c.contractID
}

// EventTypes returns the filter checklist entries.
func (c *Controller) EventTypes() []string {
	return c.eventTypes
}

// SelectedEventTypes returns the current filter selection.
func (c *Controller) SelectedEventTypes() []string {
	return append([]string(nil), c.selected...)
}

// BucketIndex returns the current zoom index into models.Buckets.
func (c *Controller) BucketIndex() int {
	return c.bucketIndex
}

// Timeline returns the loaded timeline, nil when none is loaded.
func (c *Controller) Timeline() *models.EventTimelineResult {
	return c.timeline
}

func errorMessage(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
