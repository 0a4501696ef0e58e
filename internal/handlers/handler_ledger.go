package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/banca_settlement/internal/apperrors"
	"github.com/SscSPs/banca_settlement/internal/core/domain"
	portssvc "github.com/SscSPs/banca_settlement/internal/core/ports/services"
	"github.com/SscSPs/banca_settlement/internal/dto"
	"github.com/SscSPs/banca_settlement/internal/middleware"
	"github.com/gin-gonic/gin"
)

const defaultEntryPageSize = 50

// ledgerHandler handles HTTP requests for accounts, entries and transfers.
type ledgerHandler struct {
	ledgerService   portssvc.LedgerSvcFacade
	snapshotService portssvc.SnapshotSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade, ss portssvc.SnapshotSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls, snapshotService: ss}
}

func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, snapshotService portssvc.SnapshotSvcFacade) {
	h := newLedgerHandler(ledgerService, snapshotService)

	accounts := rg.Group("/ledger/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("/:account_id", h.getAccount)
		accounts.GET("/:account_id/entries", h.listEntries)
		accounts.POST("/:account_id/adjustments", h.postAdjustment)
		accounts.GET("/:account_id/balance", h.getBalanceSummary)
		accounts.GET("/:account_id/reconcile", h.reconcileAccount)
		accounts.GET("/:account_id/snapshots/:date", h.getSnapshot)
		accounts.POST("/:account_id/snapshots/:date", h.takeSnapshot)
	}

	entries := rg.Group("/ledger/entries")
	{
		entries.GET("", h.findEntryByRequestID)
		entries.POST("/:entry_id/reverse", h.reverseEntry)
	}

	rg.POST("/ledger/transfers", h.postTransfer)
}

// createAccount godoc
// @Summary Open a ledger account
// @Description Returns the account of an owner, creating it on first use.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account owner"
// @Success 200 {object} domain.Account
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 422 {object} dto.ErrorResponse "Invalid owner or currency"
// @Security BearerAuth
// @Router /ledger/accounts [post]
func (h *ledgerHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	account, err := h.ledgerService.GetOrCreateAccount(c.Request.Context(), req.OwnerType, req.OwnerID, req.CurrencyCode, actor)
	if err != nil {
		respondError(c, err, "Failed to open account")
		return
	}
	logger.Info("Account ready", slog.String("account_id", account.AccountID), slog.String("owner_type", string(account.OwnerType)))
	c.JSON(http.StatusOK, account)
}

// getAccount godoc
// @Summary Get a ledger account
// @Tags ledger
// @Produce  json
// @Param   account_id path string true "Account ID"
// @Success 200 {object} domain.Account
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /ledger/accounts/{account_id} [get]
func (h *ledgerHandler) getAccount(c *gin.Context) {
	account, err := h.ledgerService.GetAccount(c.Request.Context(), c.Param("account_id"))
	if err != nil {
		respondError(c, err, "Failed to get account")
		return
	}
	c.JSON(http.StatusOK, account)
}

// listEntries godoc
// @Summary List ledger entries
// @Description Lists the entries of an account newest first with keyset pagination.
// @Tags ledger
// @Produce  json
// @Param   account_id path string true "Account ID"
// @Param   limit query int false "Page size (1-500)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /ledger/accounts/{account_id}/entries [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBadRequest(c, err)
		return
	}
	if params.Limit == 0 {
		params.Limit = defaultEntryPageSize
	}

	entries, next, err := h.ledgerService.ListEntries(c.Request.Context(), c.Param("account_id"), params.Limit, params.NextToken)
	if err != nil {
		respondError(c, err, "Failed to list entries")
		return
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	c.JSON(http.StatusOK, dto.ListEntriesResponse{Entries: entries, NextToken: next})
}

// postAdjustment posts a manual signed entry. Admin only.
// @Summary Post a manual adjustment
// @Description Appends a signed ADJUSTMENT entry. Requires the ADMIN role. A repeated requestId replays the original entry.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   account_id path string true "Account ID"
// @Param   adjustment body dto.AdjustmentRequest true "Signed amount and reason"
// @Success 201 {object} domain.PostedEntry "Created, or 200 on replay"
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin only"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 409 {object} dto.ErrorResponse "Account inactive"
// @Security BearerAuth
// @Router /ledger/accounts/{account_id}/adjustments [post]
func (h *ledgerHandler) postAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	if !actor.IsAdmin() {
		respondError(c, apperrors.Newf(apperrors.ErrForbidden, "manual adjustments require the ADMIN role"), "Adjustment refused")
		return
	}

	in := domain.NewLedgerEntry{
		EntryType:     domain.EntryAdjustment,
		ValueSigned:   req.ValueSigned,
		ReferenceType: domain.RefManualAdjust,
		ReferenceID:   actor.UserID,
		Description:   req.Description,
		RequestID:     req.RequestID,
		CreatedBy:     actor.UserID,
	}
	if req.EntryDate != nil {
		in.EntryDate = *req.EntryDate
	}
	posted, err := h.ledgerService.AddLedgerEntry(c.Request.Context(), c.Param("account_id"), in)
	if err != nil {
		respondError(c, err, "Failed to post adjustment")
		return
	}
	logger.Info("Adjustment posted", slog.String("entry_id", posted.Entry.EntryID), slog.Bool("replayed", posted.Replayed))
	c.JSON(createdOrOK(posted.Replayed), posted)
}

// getBalanceSummary godoc
// @Summary Get an account balance summary
// @Description Compares the cached balance with the sum of entries.
// @Tags ledger
// @Produce  json
// @Param   account_id path string true "Account ID"
// @Success 200 {object} domain.BalanceSummary
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /ledger/accounts/{account_id}/balance [get]
func (h *ledgerHandler) getBalanceSummary(c *gin.Context) {
	summary, err := h.ledgerService.GetBalanceSummary(c.Request.Context(), c.Param("account_id"))
	if err != nil {
		respondError(c, err, "Failed to get balance summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// reconcileAccount godoc
// @Summary Reconcile an account
// @Tags ledger
// @Produce  json
// @Param   account_id path string true "Account ID"
// @Success 200 {object} dto.ReconcileResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /ledger/accounts/{account_id}/reconcile [get]
func (h *ledgerHandler) reconcileAccount(c *gin.Context) {
	accountID := c.Param("account_id")
	drift, err := h.ledgerService.ReconcileAccount(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err, "Failed to reconcile account")
		return
	}
	c.JSON(http.StatusOK, dto.ReconcileResponse{AccountID: accountID, Drift: drift, Balanced: drift.IsZero()})
}

// getSnapshot godoc
// @Summary Get a daily balance snapshot
// @Tags ledger
// @Produce  json
// @Param   account_id path string true "Account ID"
// @Param   date path string true "Business date (YYYY-MM-DD)"
// @Success 200 {object} domain.DailyBalanceSnapshot
// @Failure 400 {object} dto.ErrorResponse "Invalid date"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Snapshot not found"
// @Security BearerAuth
// @Router /ledger/accounts/{account_id}/snapshots/{date} [get]
func (h *ledgerHandler) getSnapshot(c *gin.Context) {
	day, err := dto.ParseDate(c.Param("date"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	snap, err := h.snapshotService.GetSnapshot(c.Request.Context(), c.Param("account_id"), day)
	if err != nil {
		respondError(c, err, "Failed to get snapshot")
		return
	}
	c.JSON(http.StatusOK, snap)
}

// takeSnapshot godoc
// @Summary Take a daily balance snapshot
// @Description Computes and stores the closing balance of one business day. Idempotent per day.
// @Tags ledger
// @Produce  json
// @Param   account_id path string true "Account ID"
// @Param   date path string true "Business date (YYYY-MM-DD)"
// @Success 200 {object} domain.DailyBalanceSnapshot
// @Failure 400 {object} dto.ErrorResponse "Invalid date"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /ledger/accounts/{account_id}/snapshots/{date} [post]
func (h *ledgerHandler) takeSnapshot(c *gin.Context) {
	day, err := dto.ParseDate(c.Param("date"))
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	snap, err := h.snapshotService.TakeDailySnapshot(c.Request.Context(), c.Param("account_id"), day)
	if err != nil {
		respondError(c, err, "Failed to take snapshot")
		return
	}
	c.JSON(http.StatusOK, snap)
}

// findEntryByRequestID godoc
// @Summary Find an entry by request id
// @Tags ledger
// @Produce  json
// @Param   requestId query string true "Idempotency key of the entry"
// @Success 200 {object} domain.LedgerEntry
// @Failure 400 {object} dto.ErrorResponse "Missing requestId"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Security BearerAuth
// @Router /ledger/entries [get]
func (h *ledgerHandler) findEntryByRequestID(c *gin.Context) {
	requestID := strings.TrimSpace(c.Query("requestId"))
	if requestID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "requestId query parameter is required", Code: apperrors.CodeValidationConflict})
		return
	}
	entry, err := h.ledgerService.FindEntryByRequestID(c.Request.Context(), requestID)
	if err != nil {
		respondError(c, err, "Failed to find entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// reverseEntry godoc
// @Summary Reverse a ledger entry
// @Description Appends the opposite entry. An entry can be reversed once.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   entry_id path string true "Entry ID"
// @Param   reversal body dto.ReverseEntryRequest true "Reason and optional requestId"
// @Success 201 {object} domain.PostedEntry "Created, or 200 on replay"
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 409 {object} dto.ErrorResponse "Already reversed"
// @Security BearerAuth
// @Router /ledger/entries/{entry_id}/reverse [post]
func (h *ledgerHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	entryID := c.Param("entry_id")
	posted, err := h.ledgerService.ReverseEntry(c.Request.Context(), entryID, actor, req.Reason, req.RequestID)
	if err != nil {
		respondError(c, err, "Failed to reverse entry")
		return
	}
	logger.Info("Entry reversed", slog.String("entry_id", entryID), slog.String("reversal_id", posted.Entry.EntryID))
	c.JSON(createdOrOK(posted.Replayed), posted)
}

// postTransfer godoc
// @Summary Transfer between accounts
// @Description Posts the debit and credit legs in one transaction.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} domain.Transfer "Created, or 200 on replay"
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 422 {object} dto.ErrorResponse "Currency mismatch"
// @Security BearerAuth
// @Router /ledger/transfers [post]
func (h *ledgerHandler) postTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	transfer, err := h.ledgerService.PostTransfer(c.Request.Context(), req.ToDomain(), actor)
	if err != nil {
		respondError(c, err, "Failed to post transfer")
		return
	}
	logger.Info("Transfer posted", slog.String("debit_id", transfer.Debit.EntryID), slog.String("credit_id", transfer.Credit.EntryID))
	c.JSON(createdOrOK(transfer.Replayed), transfer)
}

// createdOrOK returns 200 for an idempotent replay and 201 otherwise.
func createdOrOK(replayed bool) int {
	if replayed {
		return http.StatusOK
	}
	return http.StatusCreated
}
