package domain

import "time"

// AuditRecord is emitted after every state-changing operation.
type AuditRecord struct {
	UserID     string         `json:"userId"`
	Action     string         `json:"action"`
	TargetType string         `json:"targetType"`
	TargetID   string         `json:"targetId"`
	Details    map[string]any `json:"details,omitempty"`
	RequestID  string         `json:"requestId,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// Audit actions.
const (
	ActionLedgerAppend    = "LEDGER_APPEND"
	ActionLedgerReverse   = "LEDGER_REVERSE"
	ActionLedgerTransfer  = "LEDGER_TRANSFER"
	ActionDepositCreate   = "BANK_DEPOSIT_CREATE"
	ActionSnapshotTake    = "DAILY_SNAPSHOT_TAKE"
	ActionStatementUpdate = "STATEMENT_UPDATE"
	ActionStatementClose  = "STATEMENT_CLOSE"
	ActionStatementUnlock = "STATEMENT_UNLOCK"
	ActionStatementDelete = "STATEMENT_DELETE"
	ActionPaymentCreate   = "PAYMENT_CREATE"
	ActionPaymentReverse  = "PAYMENT_REVERSE"
	ActionSorteoCreate    = "SORTEO_CREATE"
	ActionSorteoOpen      = "SORTEO_OPEN"
	ActionSorteoEvaluate  = "SORTEO_EVALUATE"
	ActionSorteoRevert    = "SORTEO_REVERT_EVALUATION"
	ActionSorteoClose     = "SORTEO_CLOSE"
	ActionSorteoForceOpen = "SORTEO_FORCE_OPEN"
	ActionTicketCreate    = "TICKET_CREATE"
	ActionTicketCancel    = "TICKET_CANCEL"
	ActionTicketPay       = "TICKET_PAY"
)
