package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/banca_settlement/internal/core/ports/services"
	"github.com/SscSPs/banca_settlement/internal/dto"
	"github.com/SscSPs/banca_settlement/internal/middleware"
	"github.com/gin-gonic/gin"
)

type depositHandler struct {
	depositService portssvc.DepositSvcFacade
}

func registerDepositRoutes(rg *gin.RouterGroup, depositService portssvc.DepositSvcFacade) {
	h := &depositHandler{depositService: depositService}

	deposits := rg.Group("/deposits")
	{
		deposits.POST("", h.createDeposit)
		deposits.GET("/:deposit_id", h.getDeposit)
	}
}

// createDeposit godoc
// @Summary Register a bank deposit
// @Description Records the deposit and credits the banca account.
// @Tags deposits
// @Accept  json
// @Produce  json
// @Param   deposit body dto.CreateDepositRequest true "Deposit details"
// @Success 201 {object} domain.DepositResult "Created, or 200 on replay"
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Security BearerAuth
// @Router /deposits [post]
func (h *depositHandler) createDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	in, err := req.ToDomain()
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	result, err := h.depositService.CreateDeposit(c.Request.Context(), in, actor)
	if err != nil {
		respondError(c, err, "Failed to create deposit")
		return
	}
	logger.Info("Deposit recorded", slog.String("deposit_id", result.Deposit.DepositID), slog.Bool("replayed", result.Replayed))
	c.JSON(createdOrOK(result.Replayed), result)
}

// getDeposit godoc
// @Summary Get a bank deposit
// @Tags deposits
// @Produce  json
// @Param   deposit_id path string true "Deposit ID"
// @Success 200 {object} domain.BankDeposit
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Deposit not found"
// @Security BearerAuth
// @Router /deposits/{deposit_id} [get]
func (h *depositHandler) getDeposit(c *gin.Context) {
	deposit, err := h.depositService.GetDeposit(c.Request.Context(), c.Param("deposit_id"))
	if err != nil {
		respondError(c, err, "Failed to get deposit")
		return
	}
	c.JSON(http.StatusOK, deposit)
}
