// Package gateway is the read layer between the viewer and the
// backend's GraphQL query surface. It exposes the three operations
// the timeline controller needs and maps failures onto two
// distinguishable error classes: TransportError when the backend is
// unreachable and BackendError when it responds with a failure.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"soroview/internal/models"

	"github.com/stellar/go/strkey"
)

const requestTimeout = 30 * time.Second

const contractQuery = `query ($contractId: String!) {
  contract(contractId: $contractId) {
    contractId
    name
  }
}`

const eventTypesQuery = `query ($contractId: String!) {
  eventTypes(contractId: $contractId)
}`

const timelineQuery = `query (
  $contractId: String!
  $bucketSize: TimelineBucketSize!
  $eventTypes: [String!]
  $timezone: String!
  $includeEvents: Boolean!
  $limitGroups: Int!
) {
  timeline(
    contractId: $contractId
    bucketSize: $bucketSize
    eventTypes: $eventTypes
    timezone: $timezone
    includeEvents: $includeEvents
    limitGroups: $limitGroups
  ) {
    contractId
    bucketSize
    since
    until
    totalEvents
    groups {
      start
      end
      eventCount
      eventTypeCounts {
        eventType
        count
      }
      events {
        id
        contractId
        contractName
        eventType
        ledger
        eventIndex
        timestamp
        txHash
        payload
        payloadHash
        schemaVersion
        validationStatus
      }
    }
  }
}`

// Client issues GraphQL queries against the backend (directly or
// through the relay proxy).
type Client struct {
	url        string
	authToken  string
	httpClient *http.Client
}

// NewClient creates a gateway client for the given GraphQL endpoint.
// authToken, when non-empty, is forwarded as a bearer authorization.
func NewClient(url, authToken string) *Client {
	return &Client{
		url:       url,
		authToken: authToken,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

// query posts one GraphQL operation and decodes the data payload into
// out. GraphQL-level errors and non-2xx statuses become BackendError.
func (c *Client) query(ctx context.Context, operation string, variables map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(graphqlRequest{Query: operation, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to encode GraphQL request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build GraphQL request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	decodeErr := json.Unmarshal(payload, &envelope)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &BackendError{StatusCode: resp.StatusCode, Messages: errorMessages(envelope.Errors)}
	}
	if decodeErr != nil {
		return &BackendError{StatusCode: resp.StatusCode, Messages: []string{"malformed GraphQL response"}}
	}
	if len(envelope.Errors) > 0 {
		return &BackendError{StatusCode: resp.StatusCode, Messages: errorMessages(envelope.Errors)}
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return &BackendError{StatusCode: resp.StatusCode, Messages: []string{"malformed GraphQL data payload"}}
		}
	}
	return nil
}

func errorMessages(errs []graphqlError) []string {
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.Message != "" {
			messages = append(messages, e.Message)
		}
	}
	return messages
}

// FetchContract resolves contract metadata. A nil result with nil
// error means the contract is not in the indexed registry, which is
// an expected outcome distinct from a transport or backend failure.
func (c *Client) FetchContract(ctx context.Context, contractID string) (*models.ContractInfo, error) {
	var data struct {
		Contract *models.ContractInfo `json:"contract"`
	}
	err := c.query(ctx, contractQuery, map[string]interface{}{"contractId": contractID}, &data)
	if err != nil {
		return nil, err
	}
	return data.Contract, nil
}

// FetchEventTypes returns the distinct event type names observed for
// the contract. The result may be empty.
func (c *Client) FetchEventTypes(ctx context.Context, contractID string) ([]string, error) {
	var data struct {
		EventTypes []string `json:"eventTypes"`
	}
	err := c.query(ctx, eventTypesQuery, map[string]interface{}{"contractId": contractID}, &data)
	if err != nil {
		return nil, err
	}
	return data.EventTypes, nil
}

// FetchTimeline returns the bucketed timeline for the request.
func (c *Client) FetchTimeline(ctx context.Context, request models.TimelineRequest) (*models.EventTimelineResult, error) {
	variables := map[string]interface{}{
		"contractId":    request.ContractID,
		"bucketSize":    string(request.BucketSize),
		"eventTypes":    nil,
		"timezone":      request.Timezone,
		"includeEvents": request.IncludeEvents,
		"limitGroups":   request.LimitGroups,
	}
	if request.EventTypes != nil {
		variables["eventTypes"] = request.EventTypes
	}

	var data struct {
		Timeline *models.EventTimelineResult `json:"timeline"`
	}
	err := c.query(ctx, timelineQuery, variables, &data)
	if err != nil {
		return nil, err
	}
	if data.Timeline == nil {
		return nil, &BackendError{Messages: []string{"backend returned no timeline"}}
	}
	return data.Timeline, nil
}

// ValidateContractID checks that id is a well-formed C... contract
// strkey. The registry may hold non-strkey test identifiers, so
// callers treat a failure here as advisory.
func ValidateContractID(id string) error {
	if _, err := strkey.Decode(strkey.VersionByteContract, id); err != nil {
		return fmt.Errorf("%q is not a valid contract strkey: %w", id, err)
	}
	return nil
}
