package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/banca_settlement/internal/apperrors"
	"github.com/SscSPs/banca_settlement/internal/core/domain"
	portsrepo "github.com/SscSPs/banca_settlement/internal/core/ports/repositories"
	"github.com/SscSPs/banca_settlement/internal/models"
	"github.com/SscSPs/banca_settlement/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const sorteoColumns = `sorteo_id, loteria_id, name, scheduled_at, status, winning_number,
	extra_outcome_code, extra_multiplier_id, extra_multiplier_x, has_winner, evaluated_at,
	evaluated_by, closed_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxSorteoRepository struct {
	BaseRepository
}

func newPgxSorteoRepository(pool *pgxpool.Pool) *PgxSorteoRepository {
	return &PgxSorteoRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SorteoRepositoryFacade = (*PgxSorteoRepository)(nil)

func (r *PgxSorteoRepository) InsertSorteo(ctx context.Context, sorteo domain.Sorteo) error {
	m := mapping.ToModelSorteo(sorteo)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO sorteos (`+sorteoColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		m.SorteoID, m.LoteriaID, m.Name, m.ScheduledAt, m.Status, m.WinningNumber,
		m.ExtraOutcomeCode, m.ExtraMultiplierID, m.ExtraMultiplierX, m.HasWinner, m.EvaluatedAt,
		m.EvaluatedBy, m.ClosedAt, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Newf(apperrors.ErrDuplicate, "loteria %s already has a sorteo at %s", m.LoteriaID, m.ScheduledAt)
		}
		return fmt.Errorf("failed to insert sorteo %s: %w", m.SorteoID, err)
	}
	return nil
}

func (r *PgxSorteoRepository) one(ctx context.Context, tx pgx.Tx, sorteoID, suffix string) (*domain.Sorteo, error) {
	rows, err := r.q(tx).Query(ctx, `SELECT `+sorteoColumns+` FROM sorteos WHERE sorteo_id = $1`+suffix, sorteoID)
	m, err := collectOne[models.Sorteo](rows, err, "sorteo", sorteoID)
	if err != nil {
		return nil, err
	}
	s := mapping.ToDomainSorteo(*m)
	return &s, nil
}

func (r *PgxSorteoRepository) FindSorteoByID(ctx context.Context, tx pgx.Tx, sorteoID string) (*domain.Sorteo, error) {
	return r.one(ctx, tx, sorteoID, "")
}

func (r *PgxSorteoRepository) FindSorteoForUpdate(ctx context.Context, tx pgx.Tx, sorteoID string) (*domain.Sorteo, error) {
	return r.one(ctx, tx, sorteoID, " FOR UPDATE")
}

func (r *PgxSorteoRepository) FindSorteosByIDs(ctx context.Context, sorteoIDs []string) (map[string]domain.Sorteo, error) {
	out := make(map[string]domain.Sorteo, len(sorteoIDs))
	if len(sorteoIDs) == 0 {
		return out, nil
	}
	rows, err := r.Pool.Query(ctx, `SELECT `+sorteoColumns+` FROM sorteos WHERE sorteo_id = ANY($1)`, sorteoIDs)
	ms, err := collectAll[models.Sorteo](rows, err, "sorteos")
	if err != nil {
		return nil, err
	}
	for _, m := range ms {
		out[m.SorteoID] = mapping.ToDomainSorteo(m)
	}
	return out, nil
}

func (r *PgxSorteoRepository) UpdateSorteo(ctx context.Context, tx pgx.Tx, sorteo domain.Sorteo) error {
	m := mapping.ToModelSorteo(sorteo)
	tag, err := r.q(tx).Exec(ctx, `
		UPDATE sorteos SET
			status = $2, winning_number = $3, extra_outcome_code = $4, extra_multiplier_id = $5,
			extra_multiplier_x = $6, has_winner = $7, evaluated_at = $8, evaluated_by = $9,
			closed_at = $10, last_updated_at = $11, last_updated_by = $12
		WHERE sorteo_id = $1`,
		m.SorteoID, m.Status, m.WinningNumber, m.ExtraOutcomeCode, m.ExtraMultiplierID,
		m.ExtraMultiplierX, m.HasWinner, m.EvaluatedAt, m.EvaluatedBy,
		m.ClosedAt, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update sorteo %s: %w", m.SorteoID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Newf(apperrors.ErrNotFound, "sorteo %s", m.SorteoID)
	}
	return nil
}

func (r *PgxSorteoRepository) FindMultiplierByID(ctx context.Context, tx pgx.Tx, multiplierID string) (*domain.Multiplier, error) {
	rows, err := r.q(tx).Query(ctx, `
		SELECT multiplier_id, loteria_id, kind, name, value_x, is_active
		FROM loteria_multipliers WHERE multiplier_id = $1`, multiplierID)
	m, err := collectOne[models.Multiplier](rows, err, "multiplier", multiplierID)
	if err != nil {
		return nil, err
	}
	mult := mapping.ToDomainMultiplier(*m)
	return &mult, nil
}
