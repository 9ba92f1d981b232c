package taxpayers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taxprep-backend/internal/shared/server/middleware"
	"taxprep-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.get)
	rg.PUT("/profile", h.put)
}

type profileRequest struct {
	FullName     string `json:"fullName"`
	FilingStatus string `json:"filingStatus"`
	Dependents   int    `json:"dependents"`
	State        string `json:"state"`
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	p, err := h.Svc.Get(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "no_profile", "no taxpayer profile on file", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch profile", nil)
		}
		return
	}
	respond.OK(c, p)
}

func (h *Handler) put(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	p, err := h.Svc.Save(c.Request.Context(), Profile{
		UserID:       userID,
		FullName:     strings.TrimSpace(req.FullName),
		Email:        middleware.UserEmailFromContext(c),
		FilingStatus: req.FilingStatus,
		Dependents:   req.Dependents,
		State:        strings.TrimSpace(req.State),
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save profile", nil)
		}
		return
	}
	respond.OK(c, p)
}
