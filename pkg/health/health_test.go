package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusBody struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func passing() CheckFunc {
	return func(_ context.Context) error { return nil }
}

func failing(msg string) CheckFunc {
	return func(_ context.Context) error { return errors.New(msg) }
}

func getEndpoint(t *testing.T, endpoint http.HandlerFunc, path string) (int, statusBody) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	endpoint(w, req)

	var body statusBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return w.Code, body
}

func TestLiveEndpoint(t *testing.T) {
	t.Run("all passing", func(t *testing.T) {
		h := New()
		h.AddLivenessCheck("check1", time.Second, passing())
		h.AddLivenessCheck("check2", time.Second, passing())

		code, body := getEndpoint(t, h.LiveEndpoint, "/livez")

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", body.Status)
	})

	t.Run("no checks registered", func(t *testing.T) {
		code, body := getEndpoint(t, New().LiveEndpoint, "/livez")

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", body.Status)
	})

	t.Run("failing check past threshold", func(t *testing.T) {
		h := New()
		h.AddLivenessCheck("db", time.Second, failing("connection refused"))

		ctx := context.Background()
		for range failureThreshold {
			h.liveness[0].execute(ctx)
		}

		code, body := getEndpoint(t, h.LiveEndpoint, "/livez")

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unhealthy", body.Status)
		assert.Equal(t, "connection refused", body.Checks["db"])
	})

	t.Run("failures below threshold stay healthy", func(t *testing.T) {
		h := New()
		h.AddLivenessCheck("flaky", time.Second, failing("temporary"))

		ctx := context.Background()
		for range failureThreshold - 1 {
			h.liveness[0].execute(ctx)
		}

		code, _ := getEndpoint(t, h.LiveEndpoint, "/livez")
		assert.Equal(t, http.StatusOK, code)
	})
}

func TestReadyEndpoint(t *testing.T) {
	t.Run("ready and passing", func(t *testing.T) {
		h := New()
		h.AddReadinessCheck("postgres", time.Second, passing())
		h.SetReady(true)

		code, body := getEndpoint(t, h.ReadyEndpoint, "/readyz")

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", body.Status)
	})

	t.Run("not ready until SetReady", func(t *testing.T) {
		h := New()
		h.AddReadinessCheck("postgres", time.Second, passing())

		code, body := getEndpoint(t, h.ReadyEndpoint, "/readyz")

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unhealthy", body.Status)
		assert.Contains(t, body.Checks, "_readiness")
	})

	t.Run("SetReady false drains", func(t *testing.T) {
		h := New()
		h.SetReady(true)

		code, _ := getEndpoint(t, h.ReadyEndpoint, "/readyz")
		require.Equal(t, http.StatusOK, code)

		h.SetReady(false)

		code, _ = getEndpoint(t, h.ReadyEndpoint, "/readyz")
		assert.Equal(t, http.StatusServiceUnavailable, code)
	})

	t.Run("one failing check reported by name", func(t *testing.T) {
		h := New()
		h.AddReadinessCheck("db", time.Second, passing())
		h.AddReadinessCheck("cache", time.Second, failing("cache miss"))
		h.SetReady(true)

		ctx := context.Background()
		for range failureThreshold {
			h.readiness[1].execute(ctx)
		}

		code, body := getEndpoint(t, h.ReadyEndpoint, "/readyz")

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Contains(t, body.Checks, "cache")
		assert.NotContains(t, body.Checks, "db")
	})
}

func TestIsReady(t *testing.T) {
	h := New()
	h.AddReadinessCheck("db", time.Second, passing())

	assert.False(t, h.IsReady(), "not ready before SetReady")

	h.SetReady(true)
	assert.True(t, h.IsReady())

	h.SetReady(false)
	assert.False(t, h.IsReady())
}

func TestProbeRecovery(t *testing.T) {
	// A probe that fails past the threshold recovers on the first success.
	down := true
	h := New()
	h.AddLivenessCheck("flaky", time.Second, func(_ context.Context) error {
		if down {
			return errors.New("down")
		}
		return nil
	})
	p := h.liveness[0]
	ctx := context.Background()

	for range failureThreshold {
		p.execute(ctx)
	}
	assert.False(t, p.healthy.Load())

	down = false
	p.execute(ctx)
	assert.True(t, p.healthy.Load())
}

func TestStopIsIdempotent(t *testing.T) {
	h := New()
	h.AddLivenessCheck("goroutine", time.Second, passing())

	h.Start(context.Background(), 100*time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	h.Stop()
	h.Stop()
}

func TestConcurrentAccess(t *testing.T) {
	h := New()
	h.AddLivenessCheck("concurrent", time.Second, failing("err"))
	h.AddReadinessCheck("concurrent", time.Second, passing())
	h.SetReady(true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.Start(ctx, 10*time.Millisecond)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				h.IsReady()

				req := httptest.NewRequest(http.MethodGet, "/livez", nil)
				h.LiveEndpoint(httptest.NewRecorder(), req)

				req = httptest.NewRequest(http.MethodGet, "/readyz", nil)
				h.ReadyEndpoint(httptest.NewRecorder(), req)
			}
		}()
	}
	wg.Wait()
	h.Stop()
}

func TestGoroutineCountCheck(t *testing.T) {
	assert.NoError(t, GoroutineCountCheck(100000)(context.Background()))

	err := GoroutineCountCheck(0)(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds threshold")
}

func TestGCMaxPauseCheck(t *testing.T) {
	assert.NoError(t, GCMaxPauseCheck(time.Hour)(context.Background()))
}
