// Package proxy implements the server-side GraphQL relay. It accepts
// the viewer's query payload verbatim, attaches a freshly generated
// anti-forgery token plus any forwarded bearer authorization, forwards
// to the upstream endpoint, and relays the upstream response
// unchanged.
package proxy

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"soroview/internal/metrics"
)

// Relay forwards GraphQL payloads to the upstream backend.
type Relay struct {
	upstreamURL string
	client      *http.Client
}

// NewRelay creates a relay targeting the given upstream GraphQL URL.
func NewRelay(upstreamURL string) *Relay {
	return &Relay{
		upstreamURL: upstreamURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// csrfToken generates a fresh 16-byte hex token. One token per
// request; tokens are never reused.
func csrfToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate CSRF token: %w", err)
	}
	metrics.TokensIssued.Inc()
	return hex.EncodeToString(buf), nil
}

// ServeHTTP relays one GraphQL request.
func (rl *Relay) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendErrors(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		metrics.RelayFailures.WithLabelValues("read_payload").Inc()
		sendErrors(w, http.StatusBadRequest, "Unable to read GraphQL request payload.")
		return
	}

	token, err := csrfToken()
	if err != nil {
		slog.Error("Token generation failed", "error", err)
		sendErrors(w, http.StatusInternalServerError, "Unable to prepare upstream request.")
		return
	}

	upstream, err := http.NewRequestWithContext(r.Context(), http.MethodPost, rl.upstreamURL, bytes.NewReader(body))
	if err != nil {
		sendErrors(w, http.StatusInternalServerError, "Unable to prepare upstream request.")
		return
	}
	upstream.Header.Set("Content-Type", "application/json")
	upstream.Header.Set("Accept", "application/json")
	upstream.Header.Set("Cookie", "csrftoken="+token)
	upstream.Header.Set("X-CSRFToken", token)
	if authorization := r.Header.Get("Authorization"); authorization != "" {
		upstream.Header.Set("Authorization", authorization)
	}

	started := time.Now()
	resp, err := rl.client.Do(upstream)
	if err != nil {
		metrics.RelayFailures.WithLabelValues("upstream_unreachable").Inc()
		slog.Error("Upstream unreachable", "url", rl.upstreamURL, "error", err)
		sendErrors(w, http.StatusBadGateway,
			"GraphQL backend is unavailable. Ensure the backend is running and BACKEND_GRAPHQL_URL is configured correctly.")
		return
	}
	defer resp.Body.Close()
	metrics.UpstreamDuration.Observe(time.Since(started).Seconds())

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		slog.Warn("Failed to stream upstream response", "error", err)
	}
	metrics.RelayRequests.WithLabelValues(statusClass(resp.StatusCode)).Inc()
}

// sendErrors writes a GraphQL error-array body with the given status.
func sendErrors(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	payload := map[string]interface{}{
		"errors": []map[string]string{{"message": message}},
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode error response", "error", err)
	}
}

func statusClass(status int) string {
	return fmt.Sprintf("%dxx", status/100)
}
