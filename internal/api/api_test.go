package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"HSScanner/internal/model"
	"HSScanner/internal/recorder"
	"HSScanner/internal/report"
)

// MockHistory implements HistorySource for testing.
type MockHistory struct {
	mock.Mock
}

func (m *MockHistory) RecentSignals(limit int) ([]recorder.StoredSignal, error) {
	args := m.Called(limit)
	return args.Get(0).([]recorder.StoredSignal), args.Error(1)
}

func testReport() *model.Report {
	return &model.Report{
		GeneratedAt: "2025-06-30 16:30 UTC",
		Parameters:  model.DefaultParams().Echo(),
		Signals: []model.Signal{
			{Symbol: "ENI", Ticker: "ENI.MI", SignalType: model.SignalBuy, EntryPrice: 108},
			{Symbol: "UCG", Ticker: "UCG.MI", SignalType: model.SignalSell, EntryPrice: 38.5},
		},
	}
}

func setup(withReport bool, history HistorySource) (http.Handler, *report.Store) {
	store := report.NewStore()
	if withReport {
		store.Set(testReport())
	}
	if history == nil {
		history = recorder.NewNoopRecorder()
	}
	return NewHandler(store, history, zerolog.Nop()).SetupRoutes(), store
}

func do(t *testing.T, h http.Handler, path string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	h, _ := setup(false, nil)
	w := do(t, h, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, ServiceName, body["service"])
	assert.Equal(t, false, body["has_report"])
	assert.NotEmpty(t, w.Header().Get(RequestIDHeaderKey))
}

func TestRequestIDPropagated(t *testing.T) {
	h, _ := setup(false, nil)
	w := do(t, h, "/health", http.Header{RequestIDHeaderKey: {"abc-123"}})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeaderKey))
}

func TestGetSignals(t *testing.T) {
	h, _ := setup(false, nil)
	assert.Equal(t, http.StatusNotFound, do(t, h, "/api/v1/signals", nil).Code)

	h, _ = setup(true, nil)
	w := do(t, h, "/api/v1/signals", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got model.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, *testReport(), got)
}

func TestGetSignal(t *testing.T) {
	h, _ := setup(true, nil)

	tests := []struct {
		path   string
		status int
		ticker string
	}{
		{"/api/v1/signals/ENI", http.StatusOK, "ENI.MI"},
		{"/api/v1/signals/ucg", http.StatusOK, "UCG.MI"},
		{"/api/v1/signals/ucg.mi", http.StatusOK, "UCG.MI"},
		{"/api/v1/signals/ISP", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(t, h, tt.path, nil)
			require.Equal(t, tt.status, w.Code)
			if tt.ticker == "" {
				return
			}
			var s model.Signal
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
			assert.Equal(t, tt.ticker, s.Ticker)
		})
	}
}

func TestGetHistory(t *testing.T) {
	m := new(MockHistory)
	m.On("RecentSignals", 2).Return([]recorder.StoredSignal{
		{RunID: "r1", Timestamp: time.Date(2025, 6, 30, 16, 30, 0, 0, time.UTC), Signal: testReport().Signals[0]},
	}, nil)
	m.On("RecentSignals", DefaultHistoryLimit).Return([]recorder.StoredSignal(nil), errors.New("db locked"))
	h, _ := setup(false, m)

	w := do(t, h, "/api/v1/history?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Count   int `json:"count"`
		Signals []struct {
			RunID     string       `json:"run_id"`
			Timestamp string       `json:"timestamp"`
			Signal    model.Signal `json:"signal"`
		} `json:"signals"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "2025-06-30T16:30:00Z", body.Signals[0].Timestamp)
	assert.Equal(t, "ENI", body.Signals[0].Signal.Symbol)

	assert.Equal(t, http.StatusInternalServerError, do(t, h, "/api/v1/history", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, "/api/v1/history?limit=0", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, "/api/v1/history?limit=abc", nil).Code)
	m.AssertExpectations(t)
}
