package ingestion

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	v1 "github.com/salesdash-lab/salesdash/internal/api/v1"
	"github.com/salesdash-lab/salesdash/internal/core/sales"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolder_StartsLoading(t *testing.T) {
	h := NewHolder()

	status, reason := h.Status()
	assert.Equal(t, StatusLoading, status)
	assert.Empty(t, reason)

	ds, err := h.Current()
	require.ErrorIs(t, err, ErrDatasetLoading)
	require.Nil(t, ds)
}

func TestHolder_ReadyIsTerminal(t *testing.T) {
	h := NewHolder()
	ds := &sales.Dataset{ID: "ds-1"}

	require.True(t, h.Ready(ds))
	require.False(t, h.Fail("late failure"))
	require.False(t, h.Ready(&sales.Dataset{ID: "ds-2"}))

	got, err := h.Current()
	require.NoError(t, err)
	require.Equal(t, "ds-1", got.ID)
}

func TestHolder_FailIsTerminal(t *testing.T) {
	h := NewHolder()

	require.True(t, h.Fail("file not found"))
	require.False(t, h.Ready(&sales.Dataset{ID: "ds-1"}))

	status, reason := h.Status()
	require.Equal(t, StatusFailed, status)
	require.Equal(t, "file not found", reason)

	_, err := h.Current()
	require.ErrorIs(t, err, ErrDatasetFailed)
	require.ErrorContains(t, err, "file not found")
}

func TestHolder_ReadyRejectsNil(t *testing.T) {
	h := NewHolder()
	require.False(t, h.Ready(nil))

	status, _ := h.Status()
	require.Equal(t, StatusLoading, status)
}

func TestHolder_ConcurrentTransitions(t *testing.T) {
	h := NewHolder()

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var ok bool
			if i%2 == 0 {
				ok = h.Ready(&sales.Dataset{ID: "ds"})
			} else {
				ok = h.Fail("boom")
			}
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, wins)
}

func TestStatusHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	loadedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		setup    func(h *Holder)
		expected v1.DatasetStatus
	}{
		{
			name:     "loading",
			setup:    func(h *Holder) {},
			expected: v1.DatasetStatus{Status: "loading"},
		},
		{
			name: "ready",
			setup: func(h *Holder) {
				h.Ready(&sales.Dataset{
					ID:       "ds-1",
					Source:   "csv:sales.csv",
					LoadedAt: loadedAt,
					RawCount: 5,
					Dropped:  1,
					Facts:    make([]sales.Fact, 4),
				})
			},
			expected: v1.DatasetStatus{
				Status:     "ready",
				DatasetID:  "ds-1",
				Source:     "csv:sales.csv",
				LoadedAt:   &loadedAt,
				RawRecords: 5,
				Facts:      4,
				Dropped:    1,
			},
		},
		{
			name:     "failed",
			setup:    func(h *Holder) { h.Fail("read csv: permission denied") },
			expected: v1.DatasetStatus{Status: "failed", Reason: "read csv: permission denied"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHolder()
			tt.setup(h)

			r := gin.New()
			h.RegisterRoutes(r)

			req := httptest.NewRequest(http.MethodGet, "/v1/dataset", nil)
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, req)

			require.Equal(t, http.StatusOK, resp.Code)

			var got v1.DatasetStatus
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
			if tt.expected.LoadedAt != nil {
				require.NotNil(t, got.LoadedAt)
				require.True(t, tt.expected.LoadedAt.Equal(*got.LoadedAt))
				got.LoadedAt = tt.expected.LoadedAt
			}
			require.Equal(t, tt.expected, got)
		})
	}
}
