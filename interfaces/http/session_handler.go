package http

import (
	"net/http"
	"strconv"

	"yt-dashboard/domain/dto"
	"yt-dashboard/domain/model"
	"yt-dashboard/infrastructure/utils"
	"yt-dashboard/usecase"

	"github.com/gin-gonic/gin"
)

// ISessionHandler exposes pagination sessions
type ISessionHandler interface {
	Create(ctx *gin.Context)
	Get(ctx *gin.Context)
	Search(ctx *gin.Context)
	GoToPage(ctx *gin.Context)
	Retry(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type SessionHandler struct {
	sessionUseCase usecase.ISessionUseCase
}

func NewSessionHandler(sessionUseCase usecase.ISessionUseCase) ISessionHandler {
	return &SessionHandler{sessionUseCase: sessionUseCase}
}

// Create handles POST /api/sessions
func (h *SessionHandler) Create(ctx *gin.Context) {
	session, err := h.sessionUseCase.Create(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err, "Failed to create session", nil)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"success": true, "data": sessionView(session)})
}

// Get handles GET /api/sessions/:sessionId
func (h *SessionHandler) Get(ctx *gin.Context) {
	session, err := h.sessionUseCase.Get(ctx.Request.Context(), ctx.Param("sessionId"))
	if err != nil {
		respondError(ctx, err, "Failed to get session", nil)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": sessionView(session)})
}

// Search handles POST /api/sessions/:sessionId/search
func (h *SessionHandler) Search(ctx *gin.Context) {
	var req dto.SessionCommand
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}
	session, err := h.sessionUseCase.Search(ctx.Request.Context(), ctx.Param("sessionId"), req.Keyword)
	h.respond(ctx, session, err, "Failed to search videos")
}

// GoToPage handles POST /api/sessions/:sessionId/pages/:page
func (h *SessionHandler) GoToPage(ctx *gin.Context) {
	page, err := strconv.Atoi(ctx.Param("page"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid page number",
			"message": err.Error(),
		})
		return
	}
	session, err := h.sessionUseCase.GoToPage(ctx.Request.Context(), ctx.Param("sessionId"), page)
	h.respond(ctx, session, err, "Failed to load page")
}

// Retry handles POST /api/sessions/:sessionId/retry
func (h *SessionHandler) Retry(ctx *gin.Context) {
	session, err := h.sessionUseCase.Retry(ctx.Request.Context(), ctx.Param("sessionId"))
	h.respond(ctx, session, err, "Failed to retry page")
}

// Delete handles DELETE /api/sessions/:sessionId
func (h *SessionHandler) Delete(ctx *gin.Context) {
	if err := h.sessionUseCase.Delete(ctx.Request.Context(), ctx.Param("sessionId")); err != nil {
		respondError(ctx, err, "Failed to delete session", nil)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// respond keeps the still-valid session in failed fetch responses so the
// dashboard can keep showing the previous page next to the error
func (h *SessionHandler) respond(ctx *gin.Context, session *model.SearchSession, err error, message string) {
	if err != nil {
		var extra gin.H
		if session != nil {
			extra = gin.H{"data": sessionView(session)}
		}
		respondError(ctx, err, message, extra)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": sessionView(session)})
}

func sessionView(s *model.SearchSession) dto.SessionView {
	view := dto.SessionView{
		Session: s,
		Videos:  usecase.BuildVideoCards(s.Videos, utils.GetCurrentTime()),
		HasNext: s.HasNext(),
		HasPrev: s.HasPrev(),
		Summary: usecase.Summarize(s.Videos),
		Pages:   []int{},
	}
	if s.Keyword == "" {
		return view
	}
	for page := 1; page <= s.TotalPages; page++ {
		if _, ok := s.TokenFor(page); ok {
			view.Pages = append(view.Pages, page)
		}
	}
	return view
}
