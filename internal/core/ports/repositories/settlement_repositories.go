package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/banca_settlement/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// SorteoRepositoryFacade persists draws and reads the multiplier catalog
type SorteoRepositoryFacade interface {
	// InsertSorteo maps a (loteria, scheduledAt) collision to apperrors.ErrDuplicate.
	InsertSorteo(ctx context.Context, sorteo domain.Sorteo) error
	FindSorteoByID(ctx context.Context, tx pgx.Tx, sorteoID string) (*domain.Sorteo, error)
	FindSorteoForUpdate(ctx context.Context, tx pgx.Tx, sorteoID string) (*domain.Sorteo, error)
	FindSorteosByIDs(ctx context.Context, sorteoIDs []string) (map[string]domain.Sorteo, error)
	UpdateSorteo(ctx context.Context, tx pgx.Tx, sorteo domain.Sorteo) error
	FindMultiplierByID(ctx context.Context, tx pgx.Tx, multiplierID string) (*domain.Multiplier, error)
}

// TicketReader defines read operations for tickets and their lines
type TicketReader interface {
	// FindTicketByID returns the ticket with its jugadas.
	FindTicketByID(ctx context.Context, tx pgx.Tx, ticketID string) (*domain.Ticket, error)
	FindTicketForUpdate(ctx context.Context, tx pgx.Tx, ticketID string) (*domain.Ticket, error)

	// ListTicketsBySorteo returns every ticket of the draw with its jugadas.
	ListTicketsBySorteo(ctx context.Context, tx pgx.Tx, sorteoID string) ([]domain.Ticket, error)

	// ListJugadaFactsForDay returns the lines of non-cancelled tickets sold on date
	// that fall under the key (a nil id is a wildcard).
	ListJugadaFactsForDay(ctx context.Context, tx pgx.Tx, date time.Time, key domain.DimensionKey) ([]domain.JugadaFact, error)
}

// TicketWriter defines write operations for tickets and their lines
type TicketWriter interface {
	InsertTicketInTx(ctx context.Context, tx pgx.Tx, ticket domain.Ticket) error
	UpdateTicketsInTx(ctx context.Context, tx pgx.Tx, tickets []domain.Ticket) error
	UpdateJugadasInTx(ctx context.Context, tx pgx.Tx, jugadas []domain.Jugada) error
	SetSorteoClosedInTx(ctx context.Context, tx pgx.Tx, sorteoID string, closed bool) (int, error)
}

// TicketPaymentRepository persists prize payments
type TicketPaymentRepository interface {
	InsertTicketPaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.TicketPayment) error
	FindTicketPaymentByIdempotencyKey(ctx context.Context, key string) (*domain.TicketPayment, error)
	DeleteTicketPaymentsBySorteoInTx(ctx context.Context, tx pgx.Tx, sorteoID string) (int, error)
}

// TicketRepositoryFacade combines all ticket repository interfaces
type TicketRepositoryFacade interface {
	TicketReader
	TicketWriter
	TicketPaymentRepository
}

// HierarchyRepositoryFacade reads the banca/ventana/vendedor tree and policies
type HierarchyRepositoryFacade interface {
	FindVendedorAssignment(ctx context.Context, vendedorID string) (*domain.VendedorAssignment, error)
	FindVentanaAssignment(ctx context.Context, ventanaID string) (*domain.VentanaAssignment, error)

	// FindPolicyStack loads the user, ventana and banca policies. Empty ids skip their tier.
	FindPolicyStack(ctx context.Context, vendedorID, ventanaID, bancaID string) (domain.PolicyStack, error)
}
