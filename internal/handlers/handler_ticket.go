package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/banca_settlement/internal/core/domain"
	portssvc "github.com/SscSPs/banca_settlement/internal/core/ports/services"
	"github.com/SscSPs/banca_settlement/internal/dto"
	"github.com/SscSPs/banca_settlement/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ticketHandler struct {
	ticketService portssvc.TicketSvcFacade
}

func registerTicketRoutes(rg *gin.RouterGroup, ticketService portssvc.TicketSvcFacade) {
	h := &ticketHandler{ticketService: ticketService}

	tickets := rg.Group("/tickets")
	{
		tickets.POST("", h.createTicket)
		tickets.GET("/:ticket_id", h.getTicket)
		tickets.POST("/:ticket_id/cancel", h.cancelTicket)
		tickets.POST("/:ticket_id/payments", h.payTicket)
	}
}

// createTicket godoc
// @Summary Sell a ticket
// @Description Sells a ticket on an open sorteo and stores the seller commission of each line.
// @Tags tickets
// @Accept  json
// @Produce  json
// @Param   ticket body dto.CreateTicketRequest true "Ticket lines"
// @Success 201 {object} domain.Ticket
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Sorteo not open"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Security BearerAuth
// @Router /tickets [post]
func (h *ticketHandler) createTicket(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	ticket, err := h.ticketService.CreateTicket(c.Request.Context(), req.ToDomain(), actor)
	if err != nil {
		respondError(c, err, "Failed to create ticket")
		return
	}
	logger.Info("Ticket sold", slog.String("ticket_id", ticket.TicketID), slog.Int("lines", len(ticket.Jugadas)))
	c.JSON(http.StatusCreated, ticket)
}

// getTicket godoc
// @Summary Get a ticket
// @Tags tickets
// @Produce  json
// @Param   ticket_id path string true "Ticket ID"
// @Success 200 {object} domain.Ticket
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Ticket not found"
// @Security BearerAuth
// @Router /tickets/{ticket_id} [get]
func (h *ticketHandler) getTicket(c *gin.Context) {
	ticket, err := h.ticketService.GetTicket(c.Request.Context(), c.Param("ticket_id"))
	if err != nil {
		respondError(c, err, "Failed to get ticket")
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// cancelTicket godoc
// @Summary Cancel a ticket
// @Tags tickets
// @Produce  json
// @Param   ticket_id path string true "Ticket ID"
// @Success 200 {object} domain.Ticket
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Ticket not found"
// @Failure 409 {object} dto.ErrorResponse "Ticket cannot be cancelled"
// @Security BearerAuth
// @Router /tickets/{ticket_id}/cancel [post]
func (h *ticketHandler) cancelTicket(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	ticket, err := h.ticketService.CancelTicket(c.Request.Context(), c.Param("ticket_id"), actor)
	if err != nil {
		respondError(c, err, "Failed to cancel ticket")
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// payTicket godoc
// @Summary Pay a winning ticket
// @Tags tickets
// @Accept  json
// @Produce  json
// @Param   ticket_id path string true "Ticket ID"
// @Param   payment body dto.PayTicketRequest true "Payout details"
// @Success 201 {object} domain.TicketPaymentResult "Created, or 200 on replay"
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Ticket not found"
// @Failure 409 {object} dto.ErrorResponse "Ticket not payable"
// @Security BearerAuth
// @Router /tickets/{ticket_id}/payments [post]
func (h *ticketHandler) payTicket(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PayTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	result, err := h.ticketService.PayTicket(c.Request.Context(), domain.NewTicketPayment{
		TicketID:       c.Param("ticket_id"),
		Amount:         req.Amount,
		Method:         req.Method,
		IdempotencyKey: req.IdempotencyKey,
	}, actor)
	if err != nil {
		respondError(c, err, "Failed to pay ticket")
		return
	}
	logger.Info("Prize paid",
		slog.String("ticket_id", result.Ticket.TicketID),
		slog.String("remaining", result.Ticket.RemainingAmount.String()),
		slog.Bool("replayed", result.Replayed))
	c.JSON(createdOrOK(result.Replayed), result)
}
