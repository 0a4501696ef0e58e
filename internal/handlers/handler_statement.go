package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/banca_settlement/internal/core/domain"
	portssvc "github.com/SscSPs/banca_settlement/internal/core/ports/services"
	"github.com/SscSPs/banca_settlement/internal/dto"
	"github.com/SscSPs/banca_settlement/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statementHandler handles statements and the payments applied to them.
type statementHandler struct {
	statementService portssvc.StatementSvcFacade
	paymentService   portssvc.PaymentSvcFacade
}

func registerStatementRoutes(rg *gin.RouterGroup, statementService portssvc.StatementSvcFacade, paymentService portssvc.PaymentSvcFacade) {
	h := &statementHandler{statementService: statementService, paymentService: paymentService}

	days := rg.Group("/statement-days/:date")
	{
		days.GET("", h.getStatementForDay)
		days.POST("/close", h.closeDay)
		days.GET("/summary", h.getDailySummary)
	}

	statements := rg.Group("/statements/:statement_id")
	{
		statements.GET("", h.getStatementByID)
		statements.PATCH("", h.updateStatement)
		statements.DELETE("", h.deleteStatement)
		statements.POST("/unlock", h.unlockDay)
		statements.GET("/activity", h.getDayActivity)
		statements.GET("/payments", h.listPayments)
	}

	payments := rg.Group("/payments")
	{
		payments.POST("", h.createPayment)
		payments.GET("/:payment_id", h.getPayment)
		payments.POST("/:payment_id/reverse", h.reversePayment)
	}
}

// getStatementForDay finds or creates the statement of a dimension and refreshes it.
// @Summary Get the statement of a day
// @Description Finds or creates the statement of the most specific dimension given and recomputes it while the day is open.
// @Tags statements
// @Produce  json
// @Param   date path string true "Statement date (YYYY-MM-DD)"
// @Param   bancaId query string false "Banca ID"
// @Param   ventanaId query string false "Ventana ID"
// @Param   vendedorId query string false "Vendedor ID"
// @Success 200 {object} domain.AccountStatement
// @Failure 400 {object} dto.ErrorResponse "Invalid date or dimension"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Unknown seller"
// @Security BearerAuth
// @Router /statement-days/{date} [get]
func (h *statementHandler) getStatementForDay(c *gin.Context) {
	day, err := dto.ParseDate(c.Param("date"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	var q dto.DimensionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBadRequest(c, err)
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	st, err := h.statementService.GetStatement(c.Request.Context(), day, q.ToDomain(), actor)
	if err != nil {
		respondError(c, err, "Failed to get statement")
		return
	}
	c.JSON(http.StatusOK, st)
}

// closeDay godoc
// @Summary Close a statement day
// @Description Recomputes and closes the statement. Closing a closed day returns it unchanged.
// @Tags statements
// @Produce  json
// @Param   date path string true "Statement date (YYYY-MM-DD)"
// @Param   bancaId query string false "Banca ID"
// @Param   ventanaId query string false "Ventana ID"
// @Param   vendedorId query string false "Vendedor ID"
// @Success 200 {object} domain.AccountStatement
// @Failure 400 {object} dto.ErrorResponse "Invalid date or dimension"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Outside the caller's ventana"
// @Security BearerAuth
// @Router /statement-days/{date}/close [post]
func (h *statementHandler) closeDay(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	day, err := dto.ParseDate(c.Param("date"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	var q dto.DimensionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBadRequest(c, err)
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	st, err := h.statementService.CloseDay(c.Request.Context(), day, q.ToDomain(), actor)
	if err != nil {
		respondError(c, err, "Failed to close statement")
		return
	}
	logger.Info("Statement closed", slog.String("statement_id", st.StatementID))
	c.JSON(http.StatusOK, st)
}

// getDailySummary godoc
// @Summary Summarize a statement day
// @Description Recomputes every seller statement of the day under the filters and totals them.
// @Tags statements
// @Produce  json
// @Param   date path string true "Statement date (YYYY-MM-DD)"
// @Param   bancaId query string false "Banca ID"
// @Param   ventanaId query string false "Ventana ID"
// @Success 200 {object} domain.DailySummary
// @Failure 400 {object} dto.ErrorResponse "Invalid date"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /statement-days/{date}/summary [get]
func (h *statementHandler) getDailySummary(c *gin.Context) {
	day, err := dto.ParseDate(c.Param("date"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	var q dto.DimensionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBadRequest(c, err)
		return
	}
	key := q.ToDomain()

	summary, err := h.statementService.GetDailySummary(c.Request.Context(), day, key.BancaID, key.VentanaID)
	if err != nil {
		respondError(c, err, "Failed to get daily summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getStatementByID godoc
// @Summary Get a statement
// @Tags statements
// @Produce  json
// @Param   statement_id path string true "Statement ID"
// @Success 200 {object} domain.AccountStatement
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Statement not found"
// @Security BearerAuth
// @Router /statements/{statement_id} [get]
func (h *statementHandler) getStatementByID(c *gin.Context) {
	st, err := h.statementService.GetStatementByID(c.Request.Context(), c.Param("statement_id"))
	if err != nil {
		respondError(c, err, "Failed to get statement")
		return
	}
	c.JSON(http.StatusOK, st)
}

// updateStatement godoc
// @Summary Adjust a statement
// @Description Adds signed adjustments that persist across recomputation.
// @Tags statements
// @Accept  json
// @Produce  json
// @Param   statement_id path string true "Statement ID"
// @Param   deltas body dto.UpdateStatementRequest true "Signed adjustments"
// @Success 200 {object} domain.AccountStatement
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Statement not found"
// @Failure 409 {object} dto.ErrorResponse "Statement closed"
// @Failure 422 {object} dto.ErrorResponse "Ticket count would become negative"
// @Security BearerAuth
// @Router /statements/{statement_id} [patch]
func (h *statementHandler) updateStatement(c *gin.Context) {
	var req dto.UpdateStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	st, err := h.statementService.Update(c.Request.Context(), c.Param("statement_id"), req.ToDomain(), actor)
	if err != nil {
		respondError(c, err, "Failed to update statement")
		return
	}
	c.JSON(http.StatusOK, st)
}

// deleteStatement godoc
// @Summary Delete an empty statement
// @Description Admin only. Refused while the statement has lines or payments.
// @Tags statements
// @Param   statement_id path string true "Statement ID"
// @Success 204
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin only"
// @Failure 404 {object} dto.ErrorResponse "Statement not found"
// @Failure 409 {object} dto.ErrorResponse "Statement not empty"
// @Security BearerAuth
// @Router /statements/{statement_id} [delete]
func (h *statementHandler) deleteStatement(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	if err := h.statementService.DeleteStatement(c.Request.Context(), c.Param("statement_id"), actor); err != nil {
		respondError(c, err, "Failed to delete statement")
		return
	}
	c.Status(http.StatusNoContent)
}

// unlockDay godoc
// @Summary Unlock a closed statement
// @Tags statements
// @Produce  json
// @Param   statement_id path string true "Statement ID"
// @Success 200 {object} domain.AccountStatement
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin only"
// @Failure 404 {object} dto.ErrorResponse "Statement not found"
// @Security BearerAuth
// @Router /statements/{statement_id}/unlock [post]
func (h *statementHandler) unlockDay(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	st, err := h.statementService.UnlockDay(c.Request.Context(), c.Param("statement_id"), actor)
	if err != nil {
		respondError(c, err, "Failed to unlock statement")
		return
	}
	c.JSON(http.StatusOK, st)
}

// getDayActivity godoc
// @Summary List the activity of a statement day
// @Description Draws and payments newest first with the running balance.
// @Tags statements
// @Produce  json
// @Param   statement_id path string true "Statement ID"
// @Success 200 {object} dto.DayActivityResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Statement not found"
// @Security BearerAuth
// @Router /statements/{statement_id}/activity [get]
func (h *statementHandler) getDayActivity(c *gin.Context) {
	statementID := c.Param("statement_id")
	rows, err := h.statementService.GetDayActivity(c.Request.Context(), statementID)
	if err != nil {
		respondError(c, err, "Failed to get day activity")
		return
	}
	if rows == nil {
		rows = []domain.DayActivity{}
	}
	c.JSON(http.StatusOK, dto.DayActivityResponse{StatementID: statementID, Activity: rows})
}

// listPayments godoc
// @Summary List statement payments
// @Tags payments
// @Produce  json
// @Param   statement_id path string true "Statement ID"
// @Param   includeReversed query bool false "Include reversed payments"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid includeReversed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /statements/{statement_id}/payments [get]
func (h *statementHandler) listPayments(c *gin.Context) {
	includeReversed, err := strconv.ParseBool(c.DefaultQuery("includeReversed", "false"))
	if err != nil {
		respondBadRequest(c, fmt.Errorf("invalid includeReversed: %w", err))
		return
	}
	payments, err := h.paymentService.ListPayments(c.Request.Context(), c.Param("statement_id"), includeReversed)
	if err != nil {
		respondError(c, err, "Failed to list payments")
		return
	}
	if payments == nil {
		payments = []domain.AccountPayment{}
	}
	c.JSON(http.StatusOK, dto.ListPaymentsResponse{Payments: payments})
}

// createPayment godoc
// @Summary Register a payment or collection
// @Description Applies a payment or collection to a statement day. A final payment must settle the day and closes it.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} domain.PaymentResult "Created, or 200 on replay"
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Outside the caller's ventana"
// @Failure 409 {object} dto.ErrorResponse "Statement closed"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Security BearerAuth
// @Router /payments [post]
func (h *statementHandler) createPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePaymentRequest
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

	result, err := h.paymentService.CreatePayment(c.Request.Context(), in, actor)
	if err != nil {
		respondError(c, err, "Failed to create payment")
		return
	}
	logger.Info("Payment applied",
		slog.String("payment_id", result.Payment.PaymentID),
		slog.String("statement_id", result.Statement.StatementID),
		slog.Bool("replayed", result.Replayed))
	c.JSON(createdOrOK(result.Replayed), result)
}

// getPayment godoc
// @Summary Get a payment
// @Tags payments
// @Produce  json
// @Param   payment_id path string true "Payment ID"
// @Success 200 {object} domain.AccountPayment
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Security BearerAuth
// @Router /payments/{payment_id} [get]
func (h *statementHandler) getPayment(c *gin.Context) {
	payment, err := h.paymentService.GetPayment(c.Request.Context(), c.Param("payment_id"))
	if err != nil {
		respondError(c, err, "Failed to get payment")
		return
	}
	c.JSON(http.StatusOK, payment)
}

// reversePayment godoc
// @Summary Reverse a payment
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   payment_id path string true "Payment ID"
// @Param   reversal body dto.ReversePaymentRequest true "Reversal reason"
// @Success 200 {object} domain.PaymentResult
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 409 {object} dto.ErrorResponse "Already reversed or statement closed"
// @Security BearerAuth
// @Router /payments/{payment_id}/reverse [post]
func (h *statementHandler) reversePayment(c *gin.Context) {
	var req dto.ReversePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	result, err := h.paymentService.ReversePayment(c.Request.Context(), c.Param("payment_id"), actor, req.Reason)
	if err != nil {
		respondError(c, err, "Failed to reverse payment")
		return
	}
	c.JSON(http.StatusOK, result)
}
