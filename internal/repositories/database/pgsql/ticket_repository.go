package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/banca_settlement/internal/apperrors"
	"github.com/SscSPs/banca_settlement/internal/core/domain"
	portsrepo "github.com/SscSPs/banca_settlement/internal/core/ports/repositories"
	"github.com/SscSPs/banca_settlement/internal/models"
	"github.com/SscSPs/banca_settlement/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ticketColumns = `ticket_id, ticket_number, sorteo_id, loteria_id, banca_id, ventana_id, vendedor_id,
	business_date, status, total_amount, total_payout, total_paid, remaining_amount, is_winner,
	is_sorteo_closed, last_payment_at, paid_by, created_at, created_by, last_updated_at, last_updated_by`

const jugadaColumns = `jugada_id, ticket_id, bet_type, number, amount, final_multiplier_x, multiplier_id,
	commission_percent, commission_amount, commission_origin, is_winner, payout`

const ticketPaymentColumns = `ticket_payment_id, ticket_id, sorteo_id, amount, method, idempotency_key, paid_at, paid_by`

type PgxTicketRepository struct {
	BaseRepository
}

func newPgxTicketRepository(pool *pgxpool.Pool) *PgxTicketRepository {
	return &PgxTicketRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TicketRepositoryFacade = (*PgxTicketRepository)(nil)

// jugadasOf loads the lines of the given tickets grouped by ticket id.
func (r *PgxTicketRepository) jugadasOf(ctx context.Context, tx pgx.Tx, ticketIDs []string) (map[string][]domain.Jugada, error) {
	out := make(map[string][]domain.Jugada, len(ticketIDs))
	if len(ticketIDs) == 0 {
		return out, nil
	}
	rows, err := r.q(tx).Query(ctx, `
		SELECT `+jugadaColumns+` FROM jugadas
		WHERE ticket_id = ANY($1)
		ORDER BY ticket_id, line_no`, ticketIDs)
	ms, err := collectAll[models.Jugada](rows, err, "jugadas")
	if err != nil {
		return nil, err
	}
	for _, m := range ms {
		out[m.TicketID] = append(out[m.TicketID], mapping.ToDomainJugada(m))
	}
	return out, nil
}

func (r *PgxTicketRepository) withJugadas(ctx context.Context, tx pgx.Tx, ms []models.Ticket) ([]domain.Ticket, error) {
	ids := make([]string, len(ms))
	for i, m := range ms {
		ids[i] = m.TicketID
	}
	lines, err := r.jugadasOf(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Ticket, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainTicket(m, lines[m.TicketID])
	}
	return out, nil
}

func (r *PgxTicketRepository) one(ctx context.Context, tx pgx.Tx, ticketID, suffix string) (*domain.Ticket, error) {
	rows, err := r.q(tx).Query(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE ticket_id = $1`+suffix, ticketID)
	m, err := collectOne[models.Ticket](rows, err, "ticket", ticketID)
	if err != nil {
		return nil, err
	}
	tickets, err := r.withJugadas(ctx, tx, []models.Ticket{*m})
	if err != nil {
		return nil, err
	}
	return &tickets[0], nil
}

func (r *PgxTicketRepository) FindTicketByID(ctx context.Context, tx pgx.Tx, ticketID string) (*domain.Ticket, error) {
	return r.one(ctx, tx, ticketID, "")
}

func (r *PgxTicketRepository) FindTicketForUpdate(ctx context.Context, tx pgx.Tx, ticketID string) (*domain.Ticket, error) {
	return r.one(ctx, tx, ticketID, " FOR UPDATE")
}

func (r *PgxTicketRepository) ListTicketsBySorteo(ctx context.Context, tx pgx.Tx, sorteoID string) ([]domain.Ticket, error) {
	rows, err := r.q(tx).Query(ctx, `
		SELECT `+ticketColumns+` FROM tickets
		WHERE sorteo_id = $1
		ORDER BY created_at, ticket_id`, sorteoID)
	ms, err := collectAll[models.Ticket](rows, err, "tickets")
	if err != nil {
		return nil, err
	}
	return r.withJugadas(ctx, tx, ms)
}

func (r *PgxTicketRepository) ListJugadaFactsForDay(ctx context.Context, tx pgx.Tx, date time.Time, key domain.DimensionKey) ([]domain.JugadaFact, error) {
	rows, err := r.q(tx).Query(ctx, `
		SELECT j.jugada_id, j.ticket_id, j.bet_type, j.number, j.amount, j.final_multiplier_x, j.multiplier_id,
		       j.commission_percent, j.commission_amount, j.commission_origin, j.is_winner, j.payout,
		       t.sorteo_id, t.loteria_id, t.banca_id, t.ventana_id, t.vendedor_id, t.business_date
		FROM jugadas j
		JOIN tickets t ON t.ticket_id = j.ticket_id
		WHERE t.business_date = $1 AND t.status <> 'CANCELLED'
		  AND ($2::text IS NULL OR t.banca_id = $2)
		  AND ($3::text IS NULL OR t.ventana_id = $3)
		  AND ($4::text IS NULL OR t.vendedor_id = $4)
		ORDER BY t.created_at, t.ticket_id, j.line_no`,
		date, key.BancaID, key.VentanaID, key.VendedorID)
	ms, err := collectAll[models.JugadaFact](rows, err, "jugada facts")
	if err != nil {
		return nil, err
	}
	out := make([]domain.JugadaFact, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainJugadaFact(m)
	}
	return out, nil
}

// sendBatch runs every queued statement and fails when any of them touched no row.
func sendBatch(ctx context.Context, q querier, batch *pgx.Batch, what string) error {
	if batch.Len() == 0 {
		return nil
	}
	br := q.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		tag, err := br.Exec()
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.Newf(apperrors.ErrDuplicate, "%s", what)
			}
			return fmt.Errorf("failed to write %s: %w", what, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.Newf(apperrors.ErrNotFound, "%s row %d", what, i)
		}
	}
	return nil
}

func (r *PgxTicketRepository) InsertTicketInTx(ctx context.Context, tx pgx.Tx, ticket domain.Ticket) error {
	m := mapping.ToModelTicket(ticket)
	batch := &pgx.Batch{}
	batch.Queue(`INSERT INTO tickets (`+ticketColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
		m.TicketID, m.TicketNumber, m.SorteoID, m.LoteriaID, m.BancaID, m.VentanaID, m.VendedorID,
		m.BusinessDate, m.Status, m.TotalAmount, m.TotalPayout, m.TotalPaid, m.RemainingAmount, m.IsWinner,
		m.IsSorteoClosed, m.LastPaymentAt, m.PaidBy, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	for i, j := range ticket.Jugadas {
		jm := mapping.ToModelJugada(j)
		batch.Queue(`INSERT INTO jugadas (`+jugadaColumns+`, line_no)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			jm.JugadaID, jm.TicketID, jm.Type, jm.Number, jm.Amount, jm.FinalMultiplierX, jm.MultiplierID,
			jm.CommissionPercent, jm.CommissionAmount, jm.CommissionOrigin, jm.IsWinner, jm.Payout, i,
		)
	}
	return sendBatch(ctx, r.q(tx), batch, "ticket "+ticket.TicketID)
}

// UpdateTicketsInTx writes ticket columns only; lines go through UpdateJugadasInTx.
func (r *PgxTicketRepository) UpdateTicketsInTx(ctx context.Context, tx pgx.Tx, tickets []domain.Ticket) error {
	batch := &pgx.Batch{}
	for _, t := range tickets {
		m := mapping.ToModelTicket(t)
		batch.Queue(`
			UPDATE tickets SET
				status = $2, total_payout = $3, total_paid = $4, remaining_amount = $5, is_winner = $6,
				is_sorteo_closed = $7, last_payment_at = $8, paid_by = $9, last_updated_at = $10, last_updated_by = $11
			WHERE ticket_id = $1`,
			m.TicketID, m.Status, m.TotalPayout, m.TotalPaid, m.RemainingAmount, m.IsWinner,
			m.IsSorteoClosed, m.LastPaymentAt, m.PaidBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}
	return sendBatch(ctx, r.q(tx), batch, "tickets")
}

func (r *PgxTicketRepository) UpdateJugadasInTx(ctx context.Context, tx pgx.Tx, jugadas []domain.Jugada) error {
	batch := &pgx.Batch{}
	for _, j := range jugadas {
		m := mapping.ToModelJugada(j)
		batch.Queue(`
			UPDATE jugadas SET final_multiplier_x = $2, multiplier_id = $3, is_winner = $4, payout = $5
			WHERE jugada_id = $1`,
			m.JugadaID, m.FinalMultiplierX, m.MultiplierID, m.IsWinner, m.Payout,
		)
	}
	return sendBatch(ctx, r.q(tx), batch, "jugadas")
}

func (r *PgxTicketRepository) SetSorteoClosedInTx(ctx context.Context, tx pgx.Tx, sorteoID string, closed bool) (int, error) {
	tag, err := r.q(tx).Exec(ctx, `UPDATE tickets SET is_sorteo_closed = $2 WHERE sorteo_id = $1`, sorteoID, closed)
	if err != nil {
		return 0, fmt.Errorf("failed to flag tickets of sorteo %s: %w", sorteoID, err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *PgxTicketRepository) InsertTicketPaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.TicketPayment) error {
	m := mapping.ToModelTicketPayment(payment)
	_, err := r.q(tx).Exec(ctx, `
		INSERT INTO ticket_payments (`+ticketPaymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.TicketPaymentID, m.TicketID, m.SorteoID, m.Amount, m.Method, m.IdempotencyKey, m.PaidAt, m.PaidBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Newf(apperrors.ErrDuplicate, "ticket payment idempotency key")
		}
		return fmt.Errorf("failed to insert ticket payment %s: %w", m.TicketPaymentID, err)
	}
	return nil
}

func (r *PgxTicketRepository) FindTicketPaymentByIdempotencyKey(ctx context.Context, key string) (*domain.TicketPayment, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+ticketPaymentColumns+` FROM ticket_payments WHERE idempotency_key = $1`, key)
	m, err := collectOne[models.TicketPayment](rows, err, "ticket payment", key)
	if err != nil {
		return nil, err
	}
	p := mapping.ToDomainTicketPayment(*m)
	return &p, nil
}

func (r *PgxTicketRepository) DeleteTicketPaymentsBySorteoInTx(ctx context.Context, tx pgx.Tx, sorteoID string) (int, error) {
	tag, err := r.q(tx).Exec(ctx, `DELETE FROM ticket_payments WHERE sorteo_id = $1`, sorteoID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete ticket payments of sorteo %s: %w", sorteoID, err)
	}
	return int(tag.RowsAffected()), nil
}
