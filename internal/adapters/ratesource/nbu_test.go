package ratesource_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fintrackhq/fintrack_backend/internal/adapters/ratesource"
	"github.com/fintrackhq/fintrack_backend/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestFetchQuotes_ParsesQuotes(t *testing.T) {
	srv := newTestServer(http.StatusOK, `[
		{"cc":"USD","rate":41.25},
		{"cc":"eur","rate":44.5652},
		{"cc":"","rate":10},
		{"cc":"XXX","rate":"not-a-number"}
	]`)
	defer srv.Close()

	client := ratesource.NewNBUClient(srv.URL, 5*time.Second)
	quotes, err := client.FetchQuotes(context.Background())

	require.NoError(t, err)
	// Empty codes and unparseable rates are dropped individually.
	require.Len(t, quotes, 2)
	assert.Equal(t, "USD", quotes[0].Code)
	assert.True(t, decimal.RequireFromString("41.25").Equal(quotes[0].Rate))
	assert.Equal(t, "EUR", quotes[1].Code)
}

func TestFetchQuotes_NonOKStatus(t *testing.T) {
	srv := newTestServer(http.StatusServiceUnavailable, `busy`)
	defer srv.Close()

	client := ratesource.NewNBUClient(srv.URL, 5*time.Second)
	_, err := client.FetchQuotes(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRateSourceUnavailable)
}

func TestFetchQuotes_MalformedBody(t *testing.T) {
	srv := newTestServer(http.StatusOK, `{"not":"an array"}`)
	defer srv.Close()

	client := ratesource.NewNBUClient(srv.URL, 5*time.Second)
	_, err := client.FetchQuotes(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRateSourceMalformed)
}

func TestFetchQuotes_ConnectionRefused(t *testing.T) {
	srv := newTestServer(http.StatusOK, `[]`)
	srv.Close()

	client := ratesource.NewNBUClient(srv.URL, time.Second)
	_, err := client.FetchQuotes(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRateSourceUnavailable)
}

func TestLocalPivot(t *testing.T) {
	client := ratesource.NewNBUClient("http://example.invalid", time.Second)
	assert.Equal(t, "UAH", client.LocalPivot())
}
