package sessions

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taxprep-backend/internal/interview"
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

// RegisterRoutes attaches interview routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/interview/start", h.start)
	rg.POST("/interview/answer", h.answer)
	rg.POST("/interview/skip", h.skip)
	rg.POST("/interview/reset", h.reset)
	rg.GET("/interview/questions", h.questions)
	rg.GET("/interview/progress", h.progress)
	rg.GET("/interview/summary", h.summary)
}

func (h *Handler) start(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	res, err := h.Svc.Start(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start interview", nil)
		return
	}
	c.Set("sessionId", res.SessionID)

	respond.Created(c, startResponse{
		SessionID: res.SessionID,
		TaxYear:   res.TaxYear,
		Questions: toQuestionResponses(res.Questions),
	})
}

func (h *Handler) answer(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.QuestionID = strings.TrimSpace(req.QuestionID)
	if req.QuestionID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "questionId is required", nil)
		return
	}

	res, err := h.Svc.Answer(c.Request.Context(), userID, req.QuestionID, req.Value)
	if err != nil {
		h.writeInterviewError(c, err, "failed to record answer")
		return
	}

	respond.OK(c, stepResponse{
		NextQuestions:   toQuestionResponses(res.NextQuestions),
		Recommendations: res.Recommendations,
		Completed:       res.Completed,
	})
}

func (h *Handler) skip(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req skipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.QuestionID = strings.TrimSpace(req.QuestionID)
	if req.QuestionID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "questionId is required", nil)
		return
	}

	if err := h.Svc.Skip(c.Request.Context(), userID, req.QuestionID); err != nil {
		h.writeInterviewError(c, err, "failed to skip question")
		return
	}

	progress, err := h.Svc.Progress(c.Request.Context(), userID)
	if err != nil {
		h.writeInterviewError(c, err, "failed to read progress")
		return
	}
	respond.OK(c, gin.H{"skipped": req.QuestionID, "progressPercentage": progress})
}

func (h *Handler) reset(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Reset(c.Request.Context(), userID); err != nil {
		h.writeInterviewError(c, err, "failed to reset interview")
		return
	}
	respond.OK(c, gin.H{"reset": true})
}

func (h *Handler) questions(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	qs, err := h.Svc.PendingQuestions(c.Request.Context(), userID)
	if err != nil {
		h.writeInterviewError(c, err, "failed to list questions")
		return
	}
	respond.OK(c, gin.H{"questions": toQuestionResponses(qs)})
}

func (h *Handler) progress(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	progress, err := h.Svc.Progress(c.Request.Context(), userID)
	if err != nil {
		h.writeInterviewError(c, err, "failed to read progress")
		return
	}
	respond.OK(c, gin.H{"progressPercentage": progress})
}

func (h *Handler) summary(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	sum, err := h.Svc.Summary(c.Request.Context(), userID)
	if err != nil {
		h.writeInterviewError(c, err, "failed to build summary")
		return
	}
	respond.OK(c, sum)
}

// writeInterviewError maps engine and repo errors to HTTP responses. Any
// propagated error is retryable from the client's point of view; prior
// session state is never destroyed by a failed call.
func (h *Handler) writeInterviewError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, interview.ErrUnknownQuestion):
		respond.Error(c, http.StatusBadRequest, "unknown_question", err.Error(), nil)
	case errors.Is(err, interview.ErrNotStarted):
		respond.Error(c, http.StatusConflict, "not_started", "interview has not been started", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "no_session", "no interview session; call start first", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
