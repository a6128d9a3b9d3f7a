package models

// ExportFilters is the filter selection handed to the export surface.
// Since and Until are ISO-8601 instants; nil means unbounded.
type ExportFilters struct {
	EventTypes []string `json:"eventTypes"`
	Since      *string  `json:"since"`
	Until      *string  `json:"until"`
}
