package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confsync/confsync/internal/common"
	"github.com/confsync/confsync/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFetchJSON_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/programming_events", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"s1","name":"Opening"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testLogger())
	v, err := c.FetchJSON(context.Background(), EndpointProgrammingEvents)
	require.NoError(t, err)

	list, ok := v.([]any)
	require.True(t, ok, "payload should come back as a decoded array")
	require.Len(t, list, 1)
}

func TestFetchJSON_QueryParamsAreEncoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "all sessions", r.URL.Query().Get("scope"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ep := EndpointSessionList
	ep.Query = map[string][]string{"scope": {"all sessions"}}

	c := NewClient(srv.URL, testLogger())
	_, err := c.FetchJSON(context.Background(), ep)
	require.NoError(t, err)
}

func TestFetchJSON_HTTPErrorIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testLogger())
	_, err := c.FetchJSON(context.Background(), EndpointGuestList)
	assert.ErrorIs(t, err, common.ErrTransport)
}

func TestFetchJSON_ConnectionRefusedIsTransport(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", testLogger())
	_, err := c.FetchJSON(context.Background(), EndpointGuestList)
	assert.ErrorIs(t, err, common.ErrTransport)
}

func TestFetchJSON_MalformedBodyIsDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"broken":`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testLogger())
	_, err := c.FetchJSON(context.Background(), EndpointGuestList)
	assert.ErrorIs(t, err, common.ErrDecode)
	assert.NotErrorIs(t, err, common.ErrTransport)
}

func TestFetchJSON_RetriesTransportErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testLogger(), WithRetries(3, 10*time.Millisecond))
	_, err := c.FetchJSON(context.Background(), EndpointProgrammingEvents)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchJSON_NoRetryByDefault(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testLogger())
	_, err := c.FetchJSON(context.Background(), EndpointProgrammingEvents)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "default policy is a single attempt")
}

func TestFetchJSON_DecodeErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"broken":`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testLogger(), WithRetries(5, 10*time.Millisecond))
	_, err := c.FetchJSON(context.Background(), EndpointProgrammingEvents)
	assert.ErrorIs(t, err, common.ErrDecode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchJSON_Cancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	c := NewClient(srv.URL, testLogger())
	_, err := c.FetchJSON(ctx, EndpointProgrammingEvents)
	require.Error(t, err)
}

func TestFetchBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte{0x89, 0x50, 0x4e, 0x47})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testLogger())
	b, err := c.FetchBytes(context.Background(), srv.URL+"/photo.png")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, b)
}
