package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/banca_settlement/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// StatementReader defines read operations for account statements
type StatementReader interface {
	FindStatementByID(ctx context.Context, tx pgx.Tx, statementID string) (*domain.AccountStatement, error)

	// FindStatement matches the date, the key's dimension and all three ids exactly (nil matches NULL).
	FindStatement(ctx context.Context, tx pgx.Tx, date time.Time, key domain.DimensionKey) (*domain.AccountStatement, error)

	// FindLegacyVendedorStatement finds a seller statement created before ventana linkage existed.
	FindLegacyVendedorStatement(ctx context.Context, tx pgx.Tx, date time.Time, vendedorID string) (*domain.AccountStatement, error)

	// ListStatementsByDate lists statements of one dimension, optionally filtered by banca and ventana.
	ListStatementsByDate(ctx context.Context, date time.Time, dimension domain.StatementDimension, bancaID, ventanaID *string) ([]domain.AccountStatement, error)
}

// StatementWriter defines write operations for account statements
type StatementWriter interface {
	// InsertStatementIfAbsent returns false when the dimension key already exists for the date.
	InsertStatementIfAbsent(ctx context.Context, tx pgx.Tx, statement domain.AccountStatement) (bool, error)

	// BackfillStatementLinkage sets ventana and banca on a legacy row. A collision maps to apperrors.ErrDuplicate.
	BackfillStatementLinkage(ctx context.Context, tx pgx.Tx, statementID string, ventanaID, bancaID *string, userID string, now time.Time) error

	// UpdateStatement persists every mutable field.
	UpdateStatement(ctx context.Context, tx pgx.Tx, statement domain.AccountStatement) error

	DeleteStatement(ctx context.Context, tx pgx.Tx, statementID string) error
}

// StatementTransactionSupport defines locking reads
type StatementTransactionSupport interface {
	FindStatementForUpdate(ctx context.Context, tx pgx.Tx, statementID string) (*domain.AccountStatement, error)
}

// StatementRepositoryFacade combines all statement repository interfaces
type StatementRepositoryFacade interface {
	StatementReader
	StatementWriter
	StatementTransactionSupport
}

// PaymentRepositoryFacade persists statement payments and collections
type PaymentRepositoryFacade interface {
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.AccountPayment, error)
	FindPaymentForUpdate(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.AccountPayment, error)
	FindPaymentByIdempotencyKey(ctx context.Context, key string) (*domain.AccountPayment, error)

	// ListPaymentsByStatement returns payments oldest first.
	ListPaymentsByStatement(ctx context.Context, tx pgx.Tx, statementID string, includeReversed bool) ([]domain.AccountPayment, error)

	// InsertPaymentInTx maps an idempotency key collision to apperrors.ErrDuplicate.
	InsertPaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.AccountPayment) error
	MarkPaymentReversedInTx(ctx context.Context, tx pgx.Tx, paymentID, userID, reason string, now time.Time) error
	DeletePaymentsByStatementInTx(ctx context.Context, tx pgx.Tx, statementID string) (int, error)
}
