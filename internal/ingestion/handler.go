package ingestion

import (
	"net/http"

	"github.com/gin-gonic/gin"
	v1 "github.com/salesdash-lab/salesdash/internal/api/v1"
)

// RegisterRoutes registers the dataset status route.
func (h *Holder) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/dataset", h.StatusHandler)
}

// StatusHandler handles GET /v1/dataset. It always answers 200 so clients
// can poll it while the load is running; the body carries the state.
func (h *Holder) StatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Describe())
}

// Describe renders the current load state for the API.
func (h *Holder) Describe() v1.DatasetStatus {
	st := h.state.Load()
	out := v1.DatasetStatus{
		Status: string(st.status),
		Reason: st.reason,
	}
	if st.dataset != nil {
		loadedAt := st.dataset.LoadedAt
		out.DatasetID = st.dataset.ID
		out.Source = st.dataset.Source
		out.LoadedAt = &loadedAt
		out.RawRecords = st.dataset.RawCount
		out.Facts = len(st.dataset.Facts)
		out.Dropped = st.dataset.Dropped
	}
	return out
}
