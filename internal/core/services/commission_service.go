package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/banca_settlement/internal/apperrors"
	"github.com/SscSPs/banca_settlement/internal/core/domain"
	portsrepo "github.com/SscSPs/banca_settlement/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banca_settlement/internal/core/ports/services"
	"github.com/SscSPs/banca_settlement/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type commissionService struct {
	BaseService
	hierarchyRepo  portsrepo.HierarchyRepositoryFacade
	defaultPercent decimal.Decimal
}

// NewCommissionService creates the policy-loading side of the resolver.
func NewCommissionService(hierarchyRepo portsrepo.HierarchyRepositoryFacade, defaultPercent decimal.Decimal, opts ...BaseOption) portssvc.CommissionSvcFacade {
	return &commissionService{
		BaseService:    newBaseService(opts...),
		hierarchyRepo:  hierarchyRepo,
		defaultPercent: defaultPercent,
	}
}

var _ portssvc.CommissionSvcFacade = (*commissionService)(nil)

func (s *commissionService) DefaultPercent() decimal.Decimal {
	return s.defaultPercent
}

func (s *commissionService) ResolveForVendedor(ctx context.Context, vendedorID string, bet domain.BetContext, amount decimal.Decimal) (*domain.CommissionResult, error) {
	if amount.IsNegative() {
		return nil, apperrors.Newf(apperrors.ErrValidation, "amount must not be negative")
	}
	assignment, err := s.hierarchyRepo.FindVendedorAssignment(ctx, vendedorID)
	if err != nil {
		return nil, err
	}
	stack, err := s.hierarchyRepo.FindPolicyStack(ctx, vendedorID, assignment.VentanaID, assignment.BancaID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load commission policies", slog.String("vendedor_id", vendedorID))
		return nil, err
	}
	res := accounting.ResolveWithFallback(stack, bet, amount, s.defaultPercent)
	s.LogDebug(ctx, "Commission resolved",
		slog.String("layer", "commission"),
		slog.String("vendedor_id", vendedorID),
		slog.String("origin", string(res.Origin)),
		slog.String("percent", res.Percent.String()))
	return &res, nil
}

func (s *commissionService) ResolveListero(ctx context.Context, ventanaID, bancaID string, bet domain.BetContext, amount, sellerCommission decimal.Decimal) (decimal.Decimal, error) {
	stack, err := s.hierarchyRepo.FindPolicyStack(ctx, "", ventanaID, bancaID)
	if err != nil {
		return decimal.Zero, err
	}
	return accounting.ResolveListero(stack, bet, amount, sellerCommission, s.defaultPercent), nil
}
