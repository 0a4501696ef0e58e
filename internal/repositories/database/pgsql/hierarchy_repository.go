package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/banca_settlement/internal/core/domain"
	portsrepo "github.com/SscSPs/banca_settlement/internal/core/ports/repositories"
	"github.com/SscSPs/banca_settlement/internal/utils/accounting"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxHierarchyRepository reads the banca/ventana/vendedor tree. Commission
// policies are stored as JSONB on each owner row.
type PgxHierarchyRepository struct {
	BaseRepository
}

func newPgxHierarchyRepository(pool *pgxpool.Pool) *PgxHierarchyRepository {
	return &PgxHierarchyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.HierarchyRepositoryFacade = (*PgxHierarchyRepository)(nil)

func (r *PgxHierarchyRepository) FindVendedorAssignment(ctx context.Context, vendedorID string) (*domain.VendedorAssignment, error) {
	var a domain.VendedorAssignment
	err := r.Pool.QueryRow(ctx, `
		SELECT v.vendedor_id, v.ventana_id, w.banca_id
		FROM vendedores v
		JOIN ventanas w ON w.ventana_id = v.ventana_id
		WHERE v.vendedor_id = $1 AND v.is_active`, vendedorID,
	).Scan(&a.VendedorID, &a.VentanaID, &a.BancaID)
	if err != nil {
		return nil, notFoundOr(err, "vendedor %s", vendedorID)
	}
	return &a, nil
}

func (r *PgxHierarchyRepository) FindVentanaAssignment(ctx context.Context, ventanaID string) (*domain.VentanaAssignment, error) {
	var a domain.VentanaAssignment
	err := r.Pool.QueryRow(ctx, `SELECT ventana_id, banca_id FROM ventanas WHERE ventana_id = $1 AND is_active`, ventanaID).
		Scan(&a.VentanaID, &a.BancaID)
	if err != nil {
		return nil, notFoundOr(err, "ventana %s", ventanaID)
	}
	return &a, nil
}

// policy loads one JSONB policy. A missing owner row means no policy.
func (r *PgxHierarchyRepository) policy(ctx context.Context, table, idColumn, id string) (*domain.CommissionPolicy, error) {
	if id == "" {
		return nil, nil
	}
	var raw []byte
	err := r.Pool.QueryRow(ctx, fmt.Sprintf(`SELECT commission_policy FROM %s WHERE %s = $1`, table, idColumn), id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load commission policy of %s %s: %w", table, id, err)
	}
	p, err := accounting.ParseCommissionPolicy(raw)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", table, id, err)
	}
	return p, nil
}

// FindPolicyStack loads the user, ventana and banca policies. Empty ids skip their tier.
func (r *PgxHierarchyRepository) FindPolicyStack(ctx context.Context, vendedorID, ventanaID, bancaID string) (domain.PolicyStack, error) {
	var stack domain.PolicyStack
	var err error
	if stack.User, err = r.policy(ctx, "vendedores", "vendedor_id", vendedorID); err != nil {
		return stack, err
	}
	if stack.Ventana, err = r.policy(ctx, "ventanas", "ventana_id", ventanaID); err != nil {
		return stack, err
	}
	if stack.Banca, err = r.policy(ctx, "bancas", "banca_id", bancaID); err != nil {
		return stack, err
	}
	return stack, nil
}
