package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"

	"picsum/grid/internal/config"
	"picsum/grid/internal/domain"
	"picsum/grid/internal/metrics"

	"github.com/jarcoal/httpmock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "http://picsum.test/v2"

func newTestClient(t *testing.T) (*picsumClient, *httpmock.MockTransport, *metrics.Metrics) {
	t.Helper()

	cfg := config.Default().Picsum
	cfg.BaseURL = testBaseURL

	transport := httpmock.NewMockTransport()
	m := metrics.New()
	c := newPicsumClient(cfg, nil, m, &http.Client{Transport: transport})
	return c, transport, m
}

func TestGetListDecodesPhotos(t *testing.T) {
	c, transport, m := newTestClient(t)

	body := `[
		{"id":"0","author":"Alejandro Escamilla","width":5000,"height":3333,
		 "url":"https://unsplash.com/photos/yC-Yzbqy7PY","download_url":"https://picsum.photos/id/0/5000/3333"},
		{"id":"1","author":"Alejandro Escamilla","width":5000,"height":3333,
		 "url":"https://unsplash.com/photos/LNRyGwIJr5c","download_url":"https://picsum.photos/id/1/5000/3333"}
	]`
	transport.RegisterResponder("GET", testBaseURL+"/list?page=1",
		httpmock.NewStringResponder(http.StatusOK, body))

	photos, err := c.GetList(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, photos, 2)
	assert.Equal(t, domain.Photo{
		ID:          "0",
		Author:      "Alejandro Escamilla",
		Width:       5000,
		Height:      3333,
		URL:         "https://unsplash.com/photos/yC-Yzbqy7PY",
		DownloadURL: "https://picsum.photos/id/0/5000/3333",
	}, photos[0])
	assert.Equal(t, "1", photos[1].ID)
	assert.Equal(t, 1, transport.GetTotalCallCount())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchesTotal.WithLabelValues("success")))
}

func TestGetListRequestsGivenPage(t *testing.T) {
	c, transport, _ := newTestClient(t)

	transport.RegisterResponder("GET", testBaseURL+"/list?page=7",
		httpmock.NewStringResponder(http.StatusOK, `[]`))

	photos, err := c.GetList(context.Background(), 7)
	require.NoError(t, err)

	assert.Empty(t, photos)
	assert.NotNil(t, photos)
	info := transport.GetCallCountInfo()
	assert.Equal(t, 1, info["GET "+testBaseURL+"/list?page=7"])
}

func TestGetListNullBodyIsEmpty(t *testing.T) {
	c, transport, _ := newTestClient(t)

	transport.RegisterResponder("GET", testBaseURL+"/list?page=1",
		httpmock.NewStringResponder(http.StatusOK, `null`))

	photos, err := c.GetList(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []domain.Photo{}, photos)
}

func TestGetListFailures(t *testing.T) {
	tests := []struct {
		name      string
		responder httpmock.Responder
		wantType  string
	}{
		{
			name:      "malformed json",
			responder: httpmock.NewStringResponder(http.StatusOK, `{"not":"an array"}`),
			wantType:  "decode",
		},
		{
			name:      "truncated json",
			responder: httpmock.NewStringResponder(http.StatusOK, `[{"id":"1"`),
			wantType:  "decode",
		},
		{
			name:      "not found",
			responder: httpmock.NewStringResponder(http.StatusNotFound, ""),
			wantType:  "not_found",
		},
		{
			name:      "rate limited",
			responder: httpmock.NewStringResponder(http.StatusTooManyRequests, ""),
			wantType:  "rate_limited",
		},
		{
			name:      "server error",
			responder: httpmock.NewStringResponder(http.StatusInternalServerError, "oops"),
			wantType:  "http_status",
		},
		{
			name:      "connection refused",
			responder: httpmock.NewErrorResponder(&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}),
			wantType:  "connection",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, transport, m := newTestClient(t)
			transport.RegisterResponder("GET", testBaseURL+"/list?page=2", tt.responder)

			photos, err := c.GetList(context.Background(), 2)

			require.Error(t, err)
			assert.Nil(t, photos)
			assert.Equal(t, tt.wantType, errorTypeLabel(err))
			assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchErrorsTotal.WithLabelValues(tt.wantType)))
			assert.Equal(t, 1, transport.GetTotalCallCount(), "failed fetches are never retried")
		})
	}
}

func TestFormatPhotoURI(t *testing.T) {
	c, _, _ := newTestClient(t)

	tests := []struct {
		id            string
		width, height float64
		want          string
	}{
		{id: "42", width: 100.7, height: 50.2, want: "https://picsum.photos/id/42/100/50"},
		{id: "0", width: 130, height: 130, want: "https://picsum.photos/id/0/130/130"},
		{id: "7", width: 129.99, height: 129.99, want: "https://picsum.photos/id/7/129/129"},
		{id: "x", width: 0.4, height: 0.9, want: "https://picsum.photos/id/x/0/0"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%v_%v", tt.id, tt.width, tt.height), func(t *testing.T) {
			assert.Equal(t, tt.want, c.FormatPhotoURI(tt.id, tt.width, tt.height))
		})
	}
}

func TestFormatPhotoURITrimsBase(t *testing.T) {
	assert.Equal(t, "http://img.test/id/3/10/20", FormatPhotoURI("http://img.test/", "3", 10.5, 20.5))
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		statusCode int
		expected   string
	}{
		{name: "nil", err: nil, statusCode: 0, expected: "unknown"},
		{name: "context timeout", err: context.DeadlineExceeded, statusCode: 0, expected: "timeout"},
		{name: "net timeout", err: &net.DNSError{IsTimeout: true}, statusCode: 0, expected: "timeout"},
		{name: "connection", err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, statusCode: 0, expected: "connection"},
		{name: "not found", err: nil, statusCode: http.StatusNotFound, expected: "not_found"},
		{name: "rate limited", err: nil, statusCode: http.StatusTooManyRequests, expected: "rate_limited"},
		{name: "bad gateway", err: nil, statusCode: http.StatusBadGateway, expected: "http_status"},
		{name: "other", err: errors.New("some other error"), statusCode: 0, expected: "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errorTypeLabel(classifyError(tt.err, tt.statusCode)))
		})
	}
}

func TestGetListStatusErrorMessage(t *testing.T) {
	c, transport, _ := newTestClient(t)

	transport.RegisterResponder("GET", testBaseURL+"/list?page=3",
		func(req *http.Request) (*http.Response, error) {
			resp := httpmock.NewStringResponse(http.StatusInternalServerError, "oops")
			resp.Status = "500 Internal Server Error"
			return resp, nil
		})

	_, err := c.GetList(context.Background(), 3)

	require.EqualError(t, err, "failed to fetch page 3: http_status 500: HTTP error: 500 Internal Server Error")
}
