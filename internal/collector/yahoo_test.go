package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yahooBody = `{"chart":{"result":[{"timestamp":[1719878400,1719792000,1719964800],
"indicators":{"quote":[{
"open":[11,10,null],"high":[12,11,13],"low":[10,9,11],"close":[11.5,10.5,12],"volume":[200,100,300]}]}}],
"error":null}}`

func TestYahooFetcher_DecodesAndDropsPartialRows(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(yahooBody))
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	since := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	bars, err := f.FetchDailyBars(context.Background(), "ENI.MI", since)
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/ENI.MI", gotPath)
	assert.True(t, strings.Contains(gotQuery, "interval=1d"))
	assert.True(t, strings.Contains(gotQuery, "period1=1719792000"))

	require.Len(t, bars, 2, "row with null open is dropped")
	assert.True(t, bars[0].Time.Before(bars[1].Time))
	assert.Equal(t, 10.5, bars[0].Close)
	assert.Equal(t, 11.5, bars[1].Close)
	assert.Equal(t, 200.0, bars[1].Volume)
}

func TestYahooFetcher_NotFoundIsNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	_, err := f.FetchDailyBars(context.Background(), "BAD", time.Now())
	assert.ErrorIs(t, err, ErrNoData)
}

func TestYahooFetcher_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	_, err := f.FetchDailyBars(context.Background(), "GONE.MI", time.Now())
	assert.ErrorIs(t, err, ErrNoData)
	assert.Contains(t, err.Error(), "delisted")
}

func TestYahooFetcher_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	_, err := f.FetchDailyBars(context.Background(), "ENI.MI", time.Now())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoData)
}

func TestRESTFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/bars/daily", r.URL.Path)
		assert.Equal(t, "ENI.MI", r.URL.Query().Get("symbol"))
		assert.Equal(t, "2024-07-01", r.URL.Query().Get("from"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Write([]byte(`[
			{"timestamp":1719878400,"open":2,"high":3,"low":1,"close":2.5,"volume":10},
			{"timestamp":1719792000,"open":1,"high":2,"low":0.5,"close":1.5,"volume":10},
			{"timestamp":1719964800,"open":2,"high":3,"low":1,"close":null,"volume":10}
		]`))
	}))
	defer srv.Close()

	f := NewRESTFetcher(srv.URL, "secret", "")
	bars, err := f.FetchDailyBars(context.Background(), "ENI.MI", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, 1.5, bars[0].Close)
	assert.Equal(t, "rest", f.Name())
}

func TestRESTFetcher_EmptyIsNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := NewRESTFetcher(srv.URL, "", "").FetchDailyBars(context.Background(), "X", time.Now())
	assert.ErrorIs(t, err, ErrNoData)
}
