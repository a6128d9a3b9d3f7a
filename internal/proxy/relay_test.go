package proxy

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRelay_ForwardsPayloadAndRelaysResponse(t *testing.T) {
	var gotBody string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"data":{"eventTypes":["swap"]}}`))
	}))
	defer upstream.Close()

	relay := NewRelay(upstream.URL)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":"{ eventTypes }"}`))
	relay.ServeHTTP(recorder, request)

	if gotBody != `{"query":"{ eventTypes }"}` {
		t.Errorf("upstream received %q, want the payload verbatim", gotBody)
	}
	if recorder.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", recorder.Code)
	}
	if got := recorder.Header().Get("Content-Type"); got != "application/json; charset=utf-8" {
		t.Errorf("content type = %q, want the upstream's", got)
	}
	if recorder.Body.String() != `{"data":{"eventTypes":["swap"]}}` {
		t.Errorf("body = %q, want the upstream body unchanged", recorder.Body.String())
	}
}

func TestRelay_FreshTokenPerRequest(t *testing.T) {
	var cookies, headers []string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookies = append(cookies, r.Header.Get("Cookie"))
		headers = append(headers, r.Header.Get("X-CSRFToken"))
		w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	relay := NewRelay(upstream.URL)
	for i := 0; i < 2; i++ {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{}`))
		relay.ServeHTTP(recorder, request)
	}

	if len(headers) != 2 {
		t.Fatalf("upstream saw %d requests, want 2", len(headers))
	}
	for i, header := range headers {
		if len(header) != 32 {
			t.Errorf("token %d = %q, want 32 hex characters", i, header)
		}
		if cookies[i] != "csrftoken="+header {
			t.Errorf("cookie %q does not match header token %q", cookies[i], header)
		}
	}
	if headers[0] == headers[1] {
		t.Error("token reused across requests")
	}
}

func TestRelay_ForwardsAuthorization(t *testing.T) {
	var gotAuth string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	relay := NewRelay(upstream.URL)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{}`))
	request.Header.Set("Authorization", "Bearer viewer-token")
	relay.ServeHTTP(recorder, request)

	if gotAuth != "Bearer viewer-token" {
		t.Errorf("Authorization = %q, want Bearer viewer-token", gotAuth)
	}
}

func TestRelay_UpstreamErrorStatusPassesThrough(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"errors":[{"message":"Rate limit exceeded."}]}`))
	}))
	defer upstream.Close()

	relay := NewRelay(upstream.URL)
	recorder := httptest.NewRecorder()
	relay.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{}`)))

	if recorder.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429 passed through", recorder.Code)
	}
}

func TestRelay_UnreachableUpstreamAnswers502(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // nothing is listening anymore

	relay := NewRelay(upstream.URL)
	recorder := httptest.NewRecorder()
	relay.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{}`)))

	if recorder.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", recorder.Code)
	}
	assertErrorArrayBody(t, recorder)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestRelay_UnreadablePayloadAnswers400(t *testing.T) {
	relay := NewRelay("http://localhost:0")
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/graphql", failingReader{})
	relay.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}
	assertErrorArrayBody(t, recorder)
}

func TestRelay_RejectsNonPost(t *testing.T) {
	relay := NewRelay("http://localhost:0")
	recorder := httptest.NewRecorder()
	relay.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/graphql", nil))

	if recorder.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", recorder.Code)
	}
}

func assertErrorArrayBody(t *testing.T, recorder *httptest.ResponseRecorder) {
	t.Helper()
	var payload struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if len(payload.Errors) == 0 || payload.Errors[0].Message == "" {
		t.Errorf("expected an error-array body, got %q", recorder.Body.String())
	}
}
