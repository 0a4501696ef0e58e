package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/banca_settlement/internal/core/ports/services"
	"github.com/SscSPs/banca_settlement/internal/dto"
	"github.com/gin-gonic/gin"
)

type commissionHandler struct {
	commissionService portssvc.CommissionSvcFacade
}

func registerCommissionRoutes(rg *gin.RouterGroup, commissionService portssvc.CommissionSvcFacade) {
	h := &commissionHandler{commissionService: commissionService}
	rg.POST("/commissions/resolve", h.resolve)
}

// resolve previews the seller commission for one bet line. The listero share
// is only computed when the caller names the seller's ventana and banca.
// @Summary Preview a commission
// @Description Resolves the seller commission of one bet line, and the listero share when ventana and banca are given.
// @Tags commissions
// @Accept  json
// @Produce  json
// @Param   bet body dto.ResolveCommissionRequest true "Bet line"
// @Success 200 {object} dto.CommissionPreviewResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Unknown seller"
// @Security BearerAuth
// @Router /commissions/resolve [post]
func (h *commissionHandler) resolve(c *gin.Context) {
	var req dto.ResolveCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	ctx := c.Request.Context()

	seller, err := h.commissionService.ResolveForVendedor(ctx, req.VendedorID, req.Bet, req.Amount)
	if err != nil {
		respondError(c, err, "Failed to resolve commission")
		return
	}
	resp := dto.CommissionPreviewResponse{Seller: *seller}
	if req.VentanaID != "" && req.BancaID != "" {
		listero, err := h.commissionService.ResolveListero(ctx, req.VentanaID, req.BancaID, req.Bet, req.Amount, seller.Amount)
		if err != nil {
			respondError(c, err, "Failed to resolve listero commission")
			return
		}
		resp.Listero = listero
	}
	c.JSON(http.StatusOK, resp)
}
