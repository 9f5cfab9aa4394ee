package projection

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	httperr "github.com/salesdash-lab/salesdash/internal/core/errors"
	"github.com/salesdash-lab/salesdash/internal/core/sales"
	"github.com/salesdash-lab/salesdash/internal/ingestion"
)

// RegisterRoutes registers all projection API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/dimensions", s.HandleDimensions)
	r.GET("/v1/series", s.HandleSeries)
	r.GET("/v1/summary", s.HandleSummary)
	r.GET("/v1/stats", s.HandleStats)
}

// HandleDimensions handles GET /v1/dimensions
func (s *Service) HandleDimensions(c *gin.Context) {
	ds, err := s.datasets.Current()
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Dimensions(ds))
}

// HandleSeries handles GET /v1/series
// Query parameters: dimension, year, value (repeatable)
func (s *Service) HandleSeries(c *gin.Context) {
	ds, v, ok := s.bindView(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Chart(ds.Index, v))
}

// HandleSummary handles GET /v1/summary
// Query parameters: dimension, year
func (s *Service) HandleSummary(c *gin.Context) {
	ds, v, ok := s.bindView(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Summary(ds.Index, v))
}

// HandleStats handles GET /v1/stats
// Query parameters: dimension, year, value (repeatable)
func (s *Service) HandleStats(c *gin.Context) {
	ds, v, ok := s.bindView(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Stats(ds.Index, v))
}

func (s *Service) bindView(c *gin.Context) (*sales.Dataset, *View, bool) {
	var req ViewQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return nil, nil, false
	}

	ds, err := s.datasets.Current()
	if err != nil {
		RespondError(c, err)
		return nil, nil, false
	}

	v, err := s.View(c.Request.Context(), Query{
		Dimension: sales.Dimension(req.Dimension),
		Year:      req.Year,
		Selected:  req.Values,
	})
	if err != nil {
		RespondError(c, err)
		return nil, nil, false
	}
	return ds, v, true
}

// RespondError maps dataset and query errors onto HTTP responses.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ingestion.ErrDatasetLoading):
		c.Header("Retry-After", "1")
		c.JSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
			ErrorType: httperr.HttpDatasetLoading,
			Message:   "Dataset is still loading",
		})
	case errors.Is(err, ingestion.ErrDatasetFailed):
		c.JSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
			ErrorType: httperr.HttpDatasetFailed,
			Message:   "Dataset failed to load",
			Details:   err.Error(),
		})
	case errors.Is(err, ErrInvalidQuery), errors.Is(err, sales.ErrUnknownDimension):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid view query",
			Details:   err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to build view",
			Details:   err.Error(),
		})
	}
}
