package selection

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	v1 "github.com/salesdash-lab/salesdash/internal/api/v1"
	httperr "github.com/salesdash-lab/salesdash/internal/core/errors"
	"github.com/salesdash-lab/salesdash/internal/core/sales"
	"github.com/salesdash-lab/salesdash/internal/projection"
)

// Defaults is the size of the initial selection.
type Defaults struct {
	Categories int
	Warehouses int
}

// Handler serves selection sessions and the view each one derives.
type Handler struct {
	store    *Store
	views    *projection.Service
	defaults Defaults
}

// NewHandler creates a session handler.
func NewHandler(store *Store, views *projection.Service, defaults Defaults) *Handler {
	if store == nil {
		panic("selection: store must not be nil")
	}
	if views == nil {
		panic("selection: projection service must not be nil")
	}
	return &Handler{
		store:    store,
		views:    views,
		defaults: defaults,
	}
}

// RegisterRoutes registers all session routes on the given router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/sessions", h.HandleCreate)
	r.GET("/v1/sessions/:id", h.HandleGet)
	r.POST("/v1/sessions/:id/actions", h.HandleAction)
}

// HandleCreate handles POST /v1/sessions
// A session can be created while the dataset is loading; it is seeded later.
func (h *Handler) HandleCreate(c *gin.Context) {
	id := h.store.Create(Initial())

	ds, err := h.views.Dataset()
	if err != nil {
		st, getErr := h.store.Get(id)
		if getErr != nil {
			h.respondError(c, getErr)
			return
		}
		c.JSON(http.StatusCreated, v1.SessionResponse{SessionID: id, State: toWire(st)})
		return
	}

	h.respond(c, http.StatusCreated, id, ds)
}

// HandleGet handles GET /v1/sessions/:id
func (h *Handler) HandleGet(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.store.Get(id); err != nil {
		h.respondError(c, err)
		return
	}

	ds, err := h.views.Dataset()
	if err != nil {
		projection.RespondError(c, err)
		return
	}
	h.respond(c, http.StatusOK, id, ds)
}

// HandleAction handles POST /v1/sessions/:id/actions
func (h *Handler) HandleAction(c *gin.Context) {
	id := c.Param("id")

	var req v1.Action
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid action body",
			Details:   err.Error(),
		})
		return
	}

	ds, err := h.views.Dataset()
	if err != nil {
		projection.RespondError(c, err)
		return
	}

	// Seed before applying the action so a first toggle does not count as a
	// user selection that blocks seeding.
	if _, err := h.seed(id, ds); err != nil {
		h.respondError(c, err)
		return
	}

	action := Action{Type: ActionType(req.Type), Value: req.Value}
	if action.Type == ActionSeed {
		action = SeedAction(ds.Index, h.defaults.Categories, h.defaults.Warehouses)
	}
	if _, err := h.store.Dispatch(id, action); err != nil {
		h.respondError(c, err)
		return
	}

	h.respond(c, http.StatusOK, id, ds)
}

func (h *Handler) seed(id string, ds *sales.Dataset) (State, error) {
	return h.store.Update(id, func(st State) (State, error) {
		if st.Seeded {
			return st, nil
		}
		return Reduce(st, SeedAction(ds.Index, h.defaults.Categories, h.defaults.Warehouses))
	})
}

func (h *Handler) respond(c *gin.Context, code int, id string, ds *sales.Dataset) {
	st, err := h.seed(id, ds)
	if err != nil {
		h.respondError(c, err)
		return
	}

	view, err := h.views.View(c.Request.Context(), projection.Query{
		Dimension: st.Dimension,
		Year:      st.Year,
		Selected:  st.Selected(),
	})
	if err != nil {
		projection.RespondError(c, err)
		return
	}
	rendered := h.views.Render(ds.Index, view)

	c.JSON(code, v1.SessionResponse{
		SessionID:        id,
		State:            toWire(st),
		WarehouseOptions: h.views.WarehouseOptions(ds.Index, VisibleWarehouses(ds.Index, st.WarehouseSearch)),
		View:             &rendered,
	})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpSessionNotFound,
			Message:   "Session not found",
			Details:   err.Error(),
		})
	case errors.Is(err, ErrInvalidAction):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidActionError,
			Message:   "Invalid selection action",
			Details:   err.Error(),
		})
	default:
		projection.RespondError(c, err)
	}
}

func toWire(st State) v1.SelectionState {
	return v1.SelectionState{
		Dimension:       string(st.Dimension),
		Categories:      clone(st.Categories),
		Warehouses:      clone(st.Warehouses),
		Year:            st.Year,
		ChartType:       string(st.ChartType),
		WarehouseSearch: st.WarehouseSearch,
		Seeded:          st.Seeded,
	}
}
