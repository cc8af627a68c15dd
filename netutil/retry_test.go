package netutil_test

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AR-js-org/artoolkit5-go/netutil"
)

// mockTransport is a test double for http.RoundTripper.
type mockTransport struct {
	responses []*http.Response
	errors    []error
	calls     int
}

func (m *mockTransport) RoundTrip(*http.Request) (*http.Response, error) {
	idx := m.calls
	m.calls++

	if idx < len(m.errors) && m.errors[idx] != nil {
		return nil, m.errors[idx]
	}
	if idx < len(m.responses) {
		return m.responses[idx], nil
	}
	return okResponse(), nil
}

func okResponse() *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader("ok")),
		Header:     http.Header{},
	}
}

func statusResponse(code int) *http.Response {
	return &http.Response{
		StatusCode: code,
		Body:       io.NopCloser(strings.NewReader("")),
		Header:     http.Header{},
	}
}

func newRequest(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "http://example.test/camera_para.dat", nil)
	require.NoError(t, err)
	return req
}

func TestRetryTransport_SuccessFirstAttempt(t *testing.T) {
	mock := &mockTransport{responses: []*http.Response{okResponse()}}
	rt := &netutil.RetryTransport{Base: mock, InitialBackoff: time.Millisecond}

	resp, err := rt.RoundTrip(newRequest(t))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, mock.calls)
}

func TestRetryTransport_RetriesTransientStatus(t *testing.T) {
	mock := &mockTransport{responses: []*http.Response{
		statusResponse(http.StatusServiceUnavailable),
		okResponse(),
	}}
	var retries []int
	rt := &netutil.RetryTransport{
		Base:           mock,
		InitialBackoff: time.Millisecond,
		OnRetry: func(attempt int, _ time.Duration, statusCode int) {
			retries = append(retries, statusCode)
		},
	}

	resp, err := rt.RoundTrip(newRequest(t))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []int{http.StatusServiceUnavailable}, retries)
}

func TestRetryTransport_NoRetryOn404(t *testing.T) {
	mock := &mockTransport{responses: []*http.Response{
		statusResponse(http.StatusNotFound),
		okResponse(),
	}}
	rt := &netutil.RetryTransport{Base: mock, InitialBackoff: time.Millisecond}

	resp, err := rt.RoundTrip(newRequest(t))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, 1, mock.calls, "4xx responses must not be retried")
}

func TestRetryTransport_RetryAfterHeader(t *testing.T) {
	slow := statusResponse(http.StatusTooManyRequests)
	slow.Header.Set("Retry-After", "0")
	mock := &mockTransport{responses: []*http.Response{slow, okResponse()}}
	rt := &netutil.RetryTransport{Base: mock, InitialBackoff: time.Second}

	start := time.Now()
	resp, err := rt.RoundTrip(newRequest(t))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Less(t, time.Since(start), time.Second, "Retry-After: 0 should override backoff")
}

func TestRetryTransport_ExhaustsRetries(t *testing.T) {
	mock := &mockTransport{responses: []*http.Response{
		statusResponse(http.StatusBadGateway),
		statusResponse(http.StatusBadGateway),
		statusResponse(http.StatusBadGateway),
	}}
	rt := &netutil.RetryTransport{Base: mock, MaxRetries: 2, InitialBackoff: time.Millisecond}

	resp, err := rt.RoundTrip(newRequest(t))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, 3, mock.calls)
}

func TestIsRetryableStatus(t *testing.T) {
	assert.True(t, netutil.IsRetryableStatus(http.StatusTooManyRequests))
	assert.True(t, netutil.IsRetryableStatus(http.StatusBadGateway))
	assert.True(t, netutil.IsRetryableStatus(http.StatusServiceUnavailable))
	assert.True(t, netutil.IsRetryableStatus(http.StatusGatewayTimeout))
	assert.False(t, netutil.IsRetryableStatus(http.StatusOK))
	assert.False(t, netutil.IsRetryableStatus(http.StatusNotFound))
	assert.False(t, netutil.IsRetryableStatus(http.StatusInternalServerError))
}
