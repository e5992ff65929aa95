package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

var testCustomerID = strings.Repeat("c", 32)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

// setupEcho returns an echo instance where POST /loans is guarded by the
// idempotency middleware and counts how often the handler actually ran.
func setupEcho(rdb *redis.Client, calls *int32) *echo.Echo {
	e := echo.New()
	g := e.Group("/loans", Idempotency(rdb, 5*time.Minute))
	g.POST("", func(c echo.Context) error {
		n := atomic.AddInt32(calls, 1)
		return c.JSON(http.StatusCreated, map[string]any{"call": n})
	})
	return e
}

func doReq(e *echo.Echo, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/loans", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func validHeaders() map[string]string {
	return map[string]string{
		"X-Request-Id":  strings.Repeat("a", 32),
		"X-Request-At":  strconv.FormatInt(time.Now().Unix(), 10),
		"X-Customer-Id": testCustomerID,
	}
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	rdb := newTestRedis(t)
	var calls int32
	e := setupEcho(rdb, &calls)
	h := validHeaders()

	first := doReq(e, `{"principal":1000}`, h)
	if first.Code != http.StatusCreated {
		t.Fatalf("first status = %d, body = %s", first.Code, first.Body.String())
	}
	second := doReq(e, `{"principal":1000}`, h)
	if second.Code != http.StatusCreated {
		t.Fatalf("replay status = %d, body = %s", second.Code, second.Body.String())
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("replayed body differs: %q vs %q", first.Body.String(), second.Body.String())
	}
}

func TestIdempotency_SameIDDifferentBody(t *testing.T) {
	rdb := newTestRedis(t)
	var calls int32
	e := setupEcho(rdb, &calls)
	h := validHeaders()

	if rec := doReq(e, `{"principal":1000}`, h); rec.Code != http.StatusCreated {
		t.Fatalf("first status = %d", rec.Code)
	}
	rec := doReq(e, `{"principal":9999}`, h)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
}

func TestIdempotency_DistinctIDsRunIndependently(t *testing.T) {
	rdb := newTestRedis(t)
	var calls int32
	e := setupEcho(rdb, &calls)

	h1 := validHeaders()
	h2 := validHeaders()
	h2["X-Request-Id"] = strings.Repeat("b", 32)

	doReq(e, `{"n":1}`, h1)
	doReq(e, `{"n":2}`, h2)
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("handler ran %d times, want 2", calls)
	}
}

func TestIdempotency_HeaderValidation(t *testing.T) {
	rdb := newTestRedis(t)
	var calls int32
	e := setupEcho(rdb, &calls)

	cases := []struct {
		name   string
		mutate func(map[string]string)
	}{
		{"missing request id", func(h map[string]string) { delete(h, "X-Request-Id") }},
		{"bad request id", func(h map[string]string) { h["X-Request-Id"] = "not-an-id" }},
		{"missing request at", func(h map[string]string) { delete(h, "X-Request-At") }},
		{"naive timestamp", func(h map[string]string) { h["X-Request-At"] = "2025-09-05T10:00:00" }},
		{"skewed timestamp", func(h map[string]string) {
			h["X-Request-At"] = strconv.FormatInt(time.Now().Add(-time.Hour).Unix(), 10)
		}},
		{"missing customer id", func(h map[string]string) { delete(h, "X-Customer-Id") }},
		{"bad customer id", func(h map[string]string) { h["X-Customer-Id"] = "XYZ" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := validHeaders()
			tc.mutate(h)
			rec := doReq(e, `{}`, h)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (%s)", rec.Code, rec.Body.String())
			}
		})
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatalf("handler ran %d times, want 0", calls)
	}
}

func TestIdempotency_GetBypasses(t *testing.T) {
	rdb := newTestRedis(t)
	e := echo.New()
	var calls int32
	g := e.Group("/loans", Idempotency(rdb, 5*time.Minute))
	g.GET("/:loan_id", func(c echo.Context) error {
		atomic.AddInt32(&calls, 1)
		return c.JSON(http.StatusOK, map[string]string{"ok": "1"})
	})

	// No idempotency headers at all
	req := httptest.NewRequest(http.MethodGet, "/loans/"+strings.Repeat("f", 32), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
}

func TestIdempotency_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()

	var calls int32
	e := setupEcho(rdb, &calls)
	rec := doReq(e, `{}`, validHeaders())
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 (%s)", rec.Code, rec.Body.String())
	}
}

func TestIdempotency_UUIDRequestID(t *testing.T) {
	rdb := newTestRedis(t)
	var calls int32
	e := setupEcho(rdb, &calls)

	h := validHeaders()
	h["X-Request-Id"] = "9b2d7c1a-4f3e-4a2b-8c1d-0123456789ab"
	rec := doReq(e, `{}`, h)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestIdempotency_KeyIsolatedByCustomer(t *testing.T) {
	rdb := newTestRedis(t)
	var calls int32
	e := setupEcho(rdb, &calls)

	h1 := validHeaders()
	h2 := validHeaders()
	h2["X-Customer-Id"] = strings.Repeat("d", 32)

	doReq(e, `{}`, h1)
	doReq(e, `{}`, h2)
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("handler ran %d times, want 2", calls)
	}
}
