package taxcalc

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"taxprep-backend/internal/shared/server/middleware"
	"taxprep-backend/internal/shared/server/respond"
	"taxprep-backend/internal/taxpayers"
)

type estimateRequest struct {
	Wages                *decimal.Decimal `json:"wages"`
	SelfEmploymentIncome *decimal.Decimal `json:"selfEmploymentIncome"`
	InvestmentIncome     *decimal.Decimal `json:"investmentIncome"`
	FilingStatus         string           `json:"filingStatus"`
	Dependents           *int             `json:"dependents"`
}

// Handler serves tax estimate requests. Filing status and dependents fall
// back to the caller's saved profile when the request leaves them out.
type Handler struct {
	Profiles *taxpayers.Service
}

func NewHandler(profiles *taxpayers.Service) *Handler {
	return &Handler{Profiles: profiles}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/calculations/estimate", h.estimate)
}

func (h *Handler) estimate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing identity", nil)
		return
	}

	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}

	in := Input{FilingStatus: req.FilingStatus}
	if req.Wages != nil {
		in.Wages = *req.Wages
	}
	if req.SelfEmploymentIncome != nil {
		in.SelfEmploymentIncome = *req.SelfEmploymentIncome
	}
	if req.InvestmentIncome != nil {
		in.InvestmentIncome = *req.InvestmentIncome
	}
	if req.Dependents != nil {
		in.Dependents = *req.Dependents
	}

	if req.FilingStatus == "" || req.Dependents == nil {
		profile, err := h.Profiles.Get(c.Request.Context(), userID)
		if err != nil && !errors.Is(err, taxpayers.ErrNotFound) {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load profile", nil)
			return
		}
		if err == nil {
			if req.FilingStatus == "" {
				in.FilingStatus = profile.FilingStatus
			}
			if req.Dependents == nil {
				in.Dependents = profile.Dependents
			}
		}
	}

	outcome := <-Dispatch(c.Request.Context(), in)
	if outcome.Err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", outcome.Err.Error(), nil)
		return
	}
	respond.OK(c, outcome.Result)
}
