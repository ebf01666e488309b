package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/trip-planner/internal/llm"
)

func TestRESTClient_Generate_Success(t *testing.T) {
	var gotPath, gotKey, gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")

		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotText = body.Contents[0].Parts[0].Text

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Itinerary: Day 1"}]}}]}`))
	}))
	defer srv.Close()

	c := llm.NewRESTClientWithURL(srv.URL, "test-key", "gemini-1.5-flash")
	got, err := c.Generate(context.Background(), "plan a trip")

	require.NoError(t, err)
	assert.Equal(t, "Itinerary: Day 1", got)
	assert.Equal(t, "/models/gemini-1.5-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "plan a trip", gotText)
}

func TestRESTClient_Generate_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	got, err := llm.NewRESTClientWithURL(srv.URL, "k", "").Generate(context.Background(), "p")

	require.NoError(t, err)
	assert.Equal(t, llm.NoResponse, got)
}

func TestRESTClient_Generate_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"API key invalid"}}`))
	}))
	defer srv.Close()

	_, err := llm.NewRESTClientWithURL(srv.URL, "bad", "").Generate(context.Background(), "p")

	var upstream *llm.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusForbidden, upstream.StatusCode)
	assert.Contains(t, upstream.Body, "API key invalid")
	assert.False(t, llm.IsTransient(err))
}

func TestRESTClient_Generate_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := llm.NewRESTClientWithURL(srv.URL, "k", "").Generate(context.Background(), "p")
	require.ErrorIs(t, err, llm.ErrMalformedResponse)
	assert.False(t, llm.IsTransient(err))
}

func TestRESTClient_Generate_MalformedJSONIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"candidates": [`))
	}))
	defer srv.Close()

	cfg := fastConfig()
	cfg.BreakerFailures = 1
	r := llm.NewResilient(llm.NewRESTClientWithURL(srv.URL, "k", ""), cfg, testLogger())

	for i := 0; i < 2; i++ {
		_, err := r.Generate(context.Background(), "p")
		require.ErrorIs(t, err, llm.ErrMalformedResponse)
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "one call per request and the breaker stays closed")
}

func TestRESTClient_Generate_MissingKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := llm.NewRESTClientWithURL(srv.URL, "", "").Generate(context.Background(), "p")

	assert.ErrorIs(t, err, llm.ErrMissingAPIKey)
	assert.False(t, called, "no request should be sent without a key")
}

func TestRESTClient_Generate_NetworkErrorHidesKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := llm.NewRESTClientWithURL(url, "secret-key", "").Generate(context.Background(), "p")

	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret-key")
	assert.True(t, llm.IsTransient(err))
}

func TestSDKClient_MissingKey(t *testing.T) {
	c := llm.NewSDKClient("", "")
	_, err := c.Generate(context.Background(), "p")
	assert.ErrorIs(t, err, llm.ErrMissingAPIKey)
	assert.NoError(t, c.Close())
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"missing key", llm.ErrMissingAPIKey, false},
		{"cancelled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, true},
		{"rate limited", &llm.UpstreamError{StatusCode: 429}, true},
		{"server error", &llm.UpstreamError{StatusCode: 503}, true},
		{"bad request", &llm.UpstreamError{StatusCode: 400}, false},
		{"network", errors.New("connection reset"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, llm.IsTransient(tt.err))
		})
	}
}
