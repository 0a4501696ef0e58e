package services

import (
	"context"
	"time"

	"github.com/SscSPs/banca_settlement/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// StatementReaderSvc defines read operations for statements
type StatementReaderSvc interface {
	GetStatementByID(ctx context.Context, statementID string) (*domain.AccountStatement, error)

	// GetStatement finds or creates the statement and refreshes it while it is editable.
	GetStatement(ctx context.Context, date time.Time, key domain.DimensionKey, actor domain.Actor) (*domain.AccountStatement, error)

	GetDailySummary(ctx context.Context, date time.Time, bancaID, ventanaID *string) (*domain.DailySummary, error)

	// GetDayActivity interleaves draws and payments, newest first.
	GetDayActivity(ctx context.Context, statementID string) ([]domain.DayActivity, error)
}

// StatementWriterSvc defines mutations of statements
type StatementWriterSvc interface {
	FindOrCreate(ctx context.Context, date time.Time, key domain.DimensionKey, actor domain.Actor) (*domain.AccountStatement, error)
	Update(ctx context.Context, statementID string, deltas domain.StatementDeltas, actor domain.Actor) (*domain.AccountStatement, error)
	CloseDay(ctx context.Context, date time.Time, key domain.DimensionKey, actor domain.Actor) (*domain.AccountStatement, error)
	UnlockDay(ctx context.Context, statementID string, actor domain.Actor) (*domain.AccountStatement, error)
	DeleteStatement(ctx context.Context, statementID string, actor domain.Actor) error
}

// StatementRefresherSvc is used by the draw state machine inside its own transaction
type StatementRefresherSvc interface {
	// RefreshInTx finds or creates the statement for ref and recomputes it from tickets and payments.
	RefreshInTx(ctx context.Context, tx pgx.Tx, ref domain.StatementRef, actor domain.Actor) (*domain.AccountStatement, error)

	// ResetInTx deletes the statement's payments and reopens it, then refreshes it.
	ResetInTx(ctx context.Context, tx pgx.Tx, ref domain.StatementRef, actor domain.Actor) (*domain.AccountStatement, int, error)
}

// StatementSvcFacade combines all statement service interfaces
type StatementSvcFacade interface {
	StatementReaderSvc
	StatementWriterSvc
	StatementRefresherSvc
}

// PaymentSvcFacade applies payments and collections to statements
type PaymentSvcFacade interface {
	CreatePayment(ctx context.Context, in domain.NewAccountPayment, actor domain.Actor) (*domain.PaymentResult, error)
	ReversePayment(ctx context.Context, paymentID string, actor domain.Actor, reason string) (*domain.PaymentResult, error)
	GetPayment(ctx context.Context, paymentID string) (*domain.AccountPayment, error)
	ListPayments(ctx context.Context, statementID string, includeReversed bool) ([]domain.AccountPayment, error)
}
