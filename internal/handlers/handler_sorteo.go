package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/banca_settlement/internal/core/domain"
	portssvc "github.com/SscSPs/banca_settlement/internal/core/ports/services"
	"github.com/SscSPs/banca_settlement/internal/dto"
	"github.com/SscSPs/banca_settlement/internal/middleware"
	"github.com/gin-gonic/gin"
)

// sorteoHandler drives the draw lifecycle.
type sorteoHandler struct {
	sorteoService portssvc.SorteoSvcFacade
}

func registerSorteoRoutes(rg *gin.RouterGroup, sorteoService portssvc.SorteoSvcFacade) {
	h := &sorteoHandler{sorteoService: sorteoService}

	sorteos := rg.Group("/sorteos")
	{
		sorteos.POST("", h.createSorteo)
		sorteos.GET("/:sorteo_id", h.getSorteo)
		sorteos.POST("/:sorteo_id/open", h.openSorteo)
		sorteos.POST("/:sorteo_id/evaluate", h.evaluate)
		sorteos.POST("/:sorteo_id/revert-evaluation", h.revertEvaluation)
		sorteos.POST("/:sorteo_id/close", h.closeSorteo)
		sorteos.POST("/:sorteo_id/force-open", h.forceOpenSorteo)
	}
}

// createSorteo godoc
// @Summary Schedule a sorteo
// @Tags sorteos
// @Accept  json
// @Produce  json
// @Param   sorteo body dto.CreateSorteoRequest true "Sorteo details"
// @Success 201 {object} domain.Sorteo
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Security BearerAuth
// @Router /sorteos [post]
func (h *sorteoHandler) createSorteo(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSorteoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	sorteo, err := h.sorteoService.CreateSorteo(c.Request.Context(), domain.NewSorteo{
		LoteriaID:   req.LoteriaID,
		Name:        req.Name,
		ScheduledAt: req.ScheduledAt,
	}, actor)
	if err != nil {
		respondError(c, err, "Failed to create sorteo")
		return
	}
	logger.Info("Sorteo created", slog.String("sorteo_id", sorteo.SorteoID))
	c.JSON(http.StatusCreated, sorteo)
}

// getSorteo godoc
// @Summary Get a sorteo
// @Tags sorteos
// @Produce  json
// @Param   sorteo_id path string true "Sorteo ID"
// @Success 200 {object} domain.Sorteo
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Sorteo not found"
// @Security BearerAuth
// @Router /sorteos/{sorteo_id} [get]
func (h *sorteoHandler) getSorteo(c *gin.Context) {
	sorteo, err := h.sorteoService.GetSorteo(c.Request.Context(), c.Param("sorteo_id"))
	if err != nil {
		respondError(c, err, "Failed to get sorteo")
		return
	}
	c.JSON(http.StatusOK, sorteo)
}

// openSorteo godoc
// @Summary Open a sorteo for sales
// @Tags sorteos
// @Produce  json
// @Param   sorteo_id path string true "Sorteo ID"
// @Success 200 {object} domain.Sorteo
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Sorteo not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid transition"
// @Security BearerAuth
// @Router /sorteos/{sorteo_id}/open [post]
func (h *sorteoHandler) openSorteo(c *gin.Context) {
	h.transition(h.sorteoService.Open, "open")(c)
}

// forceOpenSorteo godoc
// @Summary Force a sorteo back to open
// @Description Admin only.
// @Tags sorteos
// @Produce  json
// @Param   sorteo_id path string true "Sorteo ID"
// @Success 200 {object} domain.Sorteo
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin only"
// @Failure 404 {object} dto.ErrorResponse "Sorteo not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid transition"
// @Security BearerAuth
// @Router /sorteos/{sorteo_id}/force-open [post]
func (h *sorteoHandler) forceOpenSorteo(c *gin.Context) {
	h.transition(h.sorteoService.ForceOpen, "force-open")(c)
}

// transition wraps the body-less lifecycle moves.
func (h *sorteoHandler) transition(move func(context.Context, string, domain.Actor) (*domain.Sorteo, error), name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		actor, ok := actorOrAbort(c)
		if !ok {
			return
		}
		sorteoID := c.Param("sorteo_id")
		sorteo, err := move(c.Request.Context(), sorteoID, actor)
		if err != nil {
			respondError(c, err, "Failed to "+name+" sorteo")
			return
		}
		logger.Info("Sorteo transitioned", slog.String("sorteo_id", sorteoID), slog.String("status", string(sorteo.Status)))
		c.JSON(http.StatusOK, sorteo)
	}
}

// evaluate godoc
// @Summary Evaluate a sorteo
// @Description Records the winning number, marks winners and refreshes the affected statements.
// @Tags sorteos
// @Accept  json
// @Produce  json
// @Param   sorteo_id path string true "Sorteo ID"
// @Param   result body dto.EvaluateSorteoRequest true "Winning number"
// @Success 200 {object} domain.EvaluationResult
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Sorteo not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid transition"
// @Failure 503 {object} dto.ErrorResponse "Settlement unavailable, retry"
// @Security BearerAuth
// @Router /sorteos/{sorteo_id}/evaluate [post]
func (h *sorteoHandler) evaluate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.EvaluateSorteoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	sorteoID := c.Param("sorteo_id")
	result, err := h.sorteoService.Evaluate(c.Request.Context(), sorteoID, req.ToDomain(), actor)
	if err != nil {
		respondError(c, err, "Failed to evaluate sorteo")
		return
	}
	logger.Info("Sorteo evaluated",
		slog.String("sorteo_id", sorteoID),
		slog.Int("winning_lines", result.WinningLines),
		slog.String("total_payout", result.TotalPayout.String()))
	c.JSON(http.StatusOK, result)
}

// revertEvaluation godoc
// @Summary Revert a sorteo evaluation
// @Description Clears winners and ticket payments and resets the affected statements.
// @Tags sorteos
// @Produce  json
// @Param   sorteo_id path string true "Sorteo ID"
// @Success 200 {object} domain.EvaluationResult
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Sorteo not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid transition"
// @Security BearerAuth
// @Router /sorteos/{sorteo_id}/revert-evaluation [post]
func (h *sorteoHandler) revertEvaluation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	sorteoID := c.Param("sorteo_id")
	result, err := h.sorteoService.RevertEvaluation(c.Request.Context(), sorteoID, actor)
	if err != nil {
		respondError(c, err, "Failed to revert evaluation")
		return
	}
	logger.Info("Sorteo evaluation reverted", slog.String("sorteo_id", sorteoID), slog.Int("tickets_touched", result.TicketsTouched))
	c.JSON(http.StatusOK, result)
}

// closeSorteo godoc
// @Summary Close a sorteo
// @Description Closes the sorteo and cascades to its tickets.
// @Tags sorteos
// @Produce  json
// @Param   sorteo_id path string true "Sorteo ID"
// @Success 200 {object} domain.CloseResult
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Sorteo not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid transition"
// @Security BearerAuth
// @Router /sorteos/{sorteo_id}/close [post]
func (h *sorteoHandler) closeSorteo(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	result, err := h.sorteoService.CloseWithCascade(c.Request.Context(), c.Param("sorteo_id"), actor)
	if err != nil {
		respondError(c, err, "Failed to close sorteo")
		return
	}
	c.JSON(http.StatusOK, result)
}
