package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/printwatch"
	pwhttp "github.com/fwojciec/printwatch/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *printwatch.ExtractionResult {
	mm := 840.0
	return &printwatch.ExtractionResult{
		SourceFile: "whistle.gcode",
		Slicer:     printwatch.SlicerCura,
		FilamentMM: &mm,
	}
}

// noDelays avoids real backoff waits in tests.
func noDelays() []time.Duration {
	return []time.Duration{0, 0, 0}
}

func TestPushWriter_WriteResult(t *testing.T) {
	t.Parallel()

	t.Run("posts result JSON with bearer token", func(t *testing.T) {
		t.Parallel()

		var gotAuth, gotContentType string
		var gotBody map[string]any

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotContentType = r.Header.Get("Content-Type")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.WriteHeader(http.StatusCreated)
		}))
		defer srv.Close()

		w := pwhttp.NewPushWriter(srv.URL, "secret-token", pwhttp.WithRetryDelays(noDelays()))
		require.NoError(t, w.WriteResult(context.Background(), sampleResult()))

		assert.Equal(t, "Bearer secret-token", gotAuth)
		assert.Equal(t, "application/json", gotContentType)
		assert.Equal(t, "whistle.gcode", gotBody["source_file"])
		assert.Equal(t, 840.0, gotBody["filament_mm"])
	})

	t.Run("omits authorization header without token", func(t *testing.T) {
		t.Parallel()

		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
		}))
		defer srv.Close()

		w := pwhttp.NewPushWriter(srv.URL, "", pwhttp.WithRetryDelays(noDelays()))
		require.NoError(t, w.WriteResult(context.Background(), sampleResult()))
		assert.Empty(t, gotAuth)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int64
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		w := pwhttp.NewPushWriter(srv.URL, "", pwhttp.WithRetryDelays(noDelays()))
		require.NoError(t, w.WriteResult(context.Background(), sampleResult()))
		assert.Equal(t, int64(3), calls.Load())
	})

	t.Run("gives up after exhausting retries", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int64
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		w := pwhttp.NewPushWriter(srv.URL, "", pwhttp.WithRetryDelays(noDelays()))
		err := w.WriteResult(context.Background(), sampleResult())
		require.Error(t, err)
		assert.Equal(t, printwatch.EINTERNAL, printwatch.ErrorCode(err))
		assert.Equal(t, int64(4), calls.Load()) // 1 initial + 3 retries
	})

	t.Run("rejects invalid result without calling the endpoint", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("endpoint should not be called")
		}))
		defer srv.Close()

		w := pwhttp.NewPushWriter(srv.URL, "", pwhttp.WithRetryDelays(noDelays()))
		err := w.WriteResult(context.Background(), &printwatch.ExtractionResult{})
		require.Error(t, err)
		assert.Equal(t, printwatch.EINVALID, printwatch.ErrorCode(err))
	})
}
