package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server) *Client {
	c := NewClient("test-token")
	c.BaseURL = srv.URL
	return c
}

func TestCallSetsAuthAndContentHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Call(context.Background(), http.MethodGet, "/team/1/space", nil)
	require.NoError(t, err)
}

func TestCallRetriesOnceOnRateLimit(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	start := time.Now()
	out, err := newTestClient(srv).Call(context.Background(), http.MethodGet, "/list/1", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(out))
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
	assert.GreaterOrEqual(t, time.Since(start), time.Second)
}

func TestCallGivesUpAfterRetryBudget(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(srv)
	c.MaxRetries = 2
	_, err := c.Call(context.Background(), http.MethodGet, "/list/1", nil)

	var rateErr *RateLimitError
	require.ErrorAs(t, err, &rateErr)
	assert.Equal(t, 3, rateErr.Attempts)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestCallReturnsAPIErrorOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"err":"NOT_FOUND","ECODE":"ITEM_013"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Call(context.Background(), http.MethodGet, "/task/missing", nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Contains(t, apiErr.Message, "NOT_FOUND")
}

func TestRetryAfterDelay(t *testing.T) {
	assert.Equal(t, 5*time.Second, retryAfterDelay(""))
	assert.Equal(t, 3*time.Second, retryAfterDelay("3"))
	assert.Equal(t, 5*time.Second, retryAfterDelay("soon"))
	assert.Equal(t, 5*time.Second, retryAfterDelay("-1"))
}

func TestFriendlyError(t *testing.T) {
	assert.Nil(t, FriendlyError(nil))

	err := FriendlyError(&APIError{Status: 404, Message: `{"err":"NOT_FOUND"}`})
	assert.Contains(t, err.Error(), "resource not found")
	assert.Contains(t, err.Error(), "NOT_FOUND")

	err = FriendlyError(&APIError{Status: 400, Message: `{"err":"MISSING_PARAMETER name"}`})
	assert.Contains(t, err.Error(), "missing parameter")

	err = FriendlyError(&APIError{Status: 401, Message: `{"err":"UNAUTHORIZED"}`})
	assert.EqualError(t, err, "unauthorized: please check your ClickUp API token")

	plain := errors.New("dial tcp: connection refused")
	assert.Same(t, plain, FriendlyError(plain))
}
