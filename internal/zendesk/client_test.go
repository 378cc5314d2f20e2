package zendesk

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/support-kit/analytics-service/internal/config"
)

func testConfig(baseURL string) config.ZendeskConfig {
	return config.ZendeskConfig{
		BaseURL:            baseURL,
		Authorization:      "dGVzdDp0ZXN0",
		PageTimeoutSeconds: 5,
		MaxPageRetries:     0,
	}
}

func TestFetchAllSincePaginatesUntilNoProgress(t *testing.T) {
	// Three pages with advancing cursors, then the server repeats the last
	// end_time to signal end of data.
	pages := map[string]string{
		"0":   `{"tickets":[{"id":1,"created_at":"2018-01-01T10:00:00Z","updated_at":"2018-01-01T10:00:00Z","subject":"a","tags":[]}],"end_time":100}`,
		"100": `{"tickets":[{"id":2,"created_at":"2018-01-02T10:00:00Z","updated_at":"2018-01-02T10:00:00Z","subject":"b","tags":[]}],"end_time":200}`,
		"200": `{"tickets":[{"id":3,"created_at":"2018-01-03T10:00:00Z","updated_at":"2018-01-03T10:00:00Z","subject":"c","tags":[]}],"end_time":300}`,
		"300": `{"tickets":[],"end_time":300}`,
	}

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/incremental/tickets.json", r.URL.Path)
		body, ok := pages[r.URL.Query().Get("start_time")]
		require.True(t, ok, "unexpected start_time %q", r.URL.Query().Get("start_time"))
		fmt.Fprint(w, body)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), zap.NewNop())
	export, err := client.FetchAllSince(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, 4, requests, "three data pages plus the terminal no-progress page")
	assert.Equal(t, 4, export.Pages)
	require.Len(t, export.Tickets, 3)
	assert.Equal(t, int64(1), export.Tickets[0].ID)
	assert.Equal(t, int64(3), export.Tickets[2].ID)
}

func TestFetchAllSinceSendsBasicAuthorization(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Basic dGVzdDp0ZXN0", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"tickets":[],"end_time":0}`)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), zap.NewNop())
	_, err := client.FetchAllSince(context.Background(), 0)
	require.NoError(t, err)
}

func TestFetchAllSinceIgnoresUnknownFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"tickets":[{"id":7,"created_at":"2018-01-01T10:00:00Z","updated_at":"2018-01-01T10:00:00Z","subject":"x","unknown_field":true,"via":{"channel":"email","source":{"from":{"name":"N"}}}}],"end_time":0,"next_page":"ignored"}`)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), zap.NewNop())
	export, err := client.FetchAllSince(context.Background(), 0)

	require.NoError(t, err)
	require.Len(t, export.Tickets, 1)
	assert.Equal(t, "", export.Tickets[0].Via.Source.From.Email())
}

func TestFetchAllSinceHTTPErrorIsTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), zap.NewNop())
	_, err := client.FetchAllSince(context.Background(), 0)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, int64(0), transportErr.StartTime)
}

func TestFetchAllSinceMalformedPayloadIsDeserialization(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"tickets": not json`)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), zap.NewNop())
	_, err := client.FetchAllSince(context.Background(), 0)

	var deserErr *DeserializationError
	require.ErrorAs(t, err, &deserErr)
}

func TestFetchAllSinceRetriesTransportFailures(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"tickets":[],"end_time":0}`)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.MaxPageRetries = 2
	client := NewClient(cfg, zap.NewNop())

	_, err := client.FetchAllSince(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}
