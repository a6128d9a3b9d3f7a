package models

// BucketSize identifies the fixed bucket width used to group events on the timeline.
type BucketSize string

const (
	BucketOneDay        BucketSize = "ONE_DAY"
	BucketOneHour       BucketSize = "ONE_HOUR"
	BucketThirtyMinutes BucketSize = "THIRTY_MINUTES"
	BucketFiveMinutes   BucketSize = "FIVE_MINUTES"
)

// Buckets lists the bucket sizes ordered coarse to fine.
// The controller's zoom index is an index into this slice.
var Buckets = []BucketSize{
	BucketOneDay,
	BucketOneHour,
	BucketThirtyMinutes,
	BucketFiveMinutes,
}

// BucketLabels maps each bucket size to its zoom pill label.
var BucketLabels = map[BucketSize]string{
	BucketOneDay:        "1 day",
	BucketOneHour:       "1 hour",
	BucketThirtyMinutes: "30 minutes",
	BucketFiveMinutes:   "5 minutes",
}

// ContractInfo identifies a contract in the indexed registry.
// Name falls back to the contract ID when the registry has no resolved name.
type ContractInfo struct {
	ContractID string `json:"contractId"`
	Name       string `json:"name"`
}

// EventTypeCount is the per-type aggregate inside one timeline group.
type EventTypeCount struct {
	EventType string `json:"eventType"`
	Count     int    `json:"count"`
}

// EventRecord represents a single event emitted by a contract.
type EventRecord struct {
	// Identification
	ID           string `json:"id"`
	ContractID   string `json:"contractId"`
	ContractName string `json:"contractName"`
	EventType    string `json:"eventType"`

	// Ledger context
	Ledger     uint32 `json:"ledger"`
	EventIndex int    `json:"eventIndex"`
	Timestamp  string `json:"timestamp"` // ISO-8601
	TxHash     string `json:"txHash"`

	// Event data
	Payload          interface{} `json:"payload"`
	PayloadHash      string      `json:"payloadHash,omitempty"`
	SchemaVersion    string      `json:"schemaVersion,omitempty"`
	ValidationStatus string      `json:"validationStatus,omitempty"`
}

// EventTimelineGroup aggregates the events whose timestamps fall in one
// bucket. The interval is half-open: [Start, End).
type EventTimelineGroup struct {
	Start           string           `json:"start"`
	End             string           `json:"end"`
	EventCount      int              `json:"eventCount"`
	EventTypeCounts []EventTypeCount `json:"eventTypeCounts"`

	// Events may be empty when detail events were not requested.
	Events []EventRecord `json:"events"`
}

// EventTimelineResult is the bucketed timeline for one contract.
// Groups are ordered by start ascending, non-overlapping, contiguous
// per bucket size.
type EventTimelineResult struct {
	ContractID  string               `json:"contractId"`
	BucketSize  BucketSize           `json:"bucketSize"`
	Since       string               `json:"since"`
	Until       string               `json:"until"`
	TotalEvents int                  `json:"totalEvents"`
	Groups      []EventTimelineGroup `json:"groups"`
}

// TimelineRequest carries the parameters for one timeline query.
type TimelineRequest struct {
	ContractID    string
	BucketSize    BucketSize
	EventTypes    []string // nil means no event type filter
	Timezone      string   // IANA zone name
	IncludeEvents bool
	LimitGroups   int
}
