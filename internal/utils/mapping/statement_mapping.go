package mapping

import (
	"github.com/SscSPs/banca_settlement/internal/core/domain"
	"github.com/SscSPs/banca_settlement/internal/models"
)

// ToModelStatement converts a domain AccountStatement to a model AccountStatement
func ToModelStatement(d domain.AccountStatement) models.AccountStatement {
	return models.AccountStatement{
		StatementID:        d.StatementID,
		StatementDate:      d.StatementDate,
		Dimension:          string(d.Dimension),
		BancaID:            d.BancaID,
		VentanaID:          d.VentanaID,
		VendedorID:         d.VendedorID,
		TicketCount:        d.TicketCount,
		TotalSales:         d.TotalSales,
		TotalPayouts:       d.TotalPayouts,
		ListeroCommission:  d.ListeroCommission,
		VendedorCommission: d.VendedorCommission,
		Balance:            d.Balance,
		TotalPaid:          d.TotalPaid,
		TotalCollected:     d.TotalCollected,
		RemainingBalance:   d.RemainingBalance,
		IsSettled:          d.IsSettled,
		CanEdit:            d.CanEdit,
		ClosedAt:           d.ClosedAt,
		ClosedBy:           d.ClosedBy,
		StatementAdjustments: models.StatementAdjustments{
			AdjTicketCount:        d.Adjustments.TicketCount,
			AdjTotalSales:         d.Adjustments.TotalSales,
			AdjTotalPayouts:       d.Adjustments.TotalPayouts,
			AdjListeroCommission:  d.Adjustments.ListeroCommission,
			AdjVendedorCommission: d.Adjustments.VendedorCommission,
		},
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStatement converts a model AccountStatement to a domain AccountStatement
func ToDomainStatement(m models.AccountStatement) domain.AccountStatement {
	return domain.AccountStatement{
		StatementID:        m.StatementID,
		StatementDate:      m.StatementDate,
		Dimension:          domain.StatementDimension(m.Dimension),
		BancaID:            m.BancaID,
		VentanaID:          m.VentanaID,
		VendedorID:         m.VendedorID,
		TicketCount:        m.TicketCount,
		TotalSales:         m.TotalSales,
		TotalPayouts:       m.TotalPayouts,
		ListeroCommission:  m.ListeroCommission,
		VendedorCommission: m.VendedorCommission,
		Balance:            m.Balance,
		TotalPaid:          m.TotalPaid,
		TotalCollected:     m.TotalCollected,
		RemainingBalance:   m.RemainingBalance,
		IsSettled:          m.IsSettled,
		CanEdit:            m.CanEdit,
		ClosedAt:           m.ClosedAt,
		ClosedBy:           m.ClosedBy,
		Adjustments: domain.StatementDeltas{
			TicketCount:        m.AdjTicketCount,
			TotalSales:         m.AdjTotalSales,
			TotalPayouts:       m.AdjTotalPayouts,
			ListeroCommission:  m.AdjListeroCommission,
			VendedorCommission: m.AdjVendedorCommission,
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStatementSlice converts a slice of model statements to domain statements
func ToDomainStatementSlice(ms []models.AccountStatement) []domain.AccountStatement {
	ds := make([]domain.AccountStatement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStatement(m)
	}
	return ds
}

// ToModelPayment converts a domain AccountPayment to a model AccountPayment
func ToModelPayment(d domain.AccountPayment) models.AccountPayment {
	return models.AccountPayment{
		PaymentID:      d.PaymentID,
		StatementID:    d.StatementID,
		StatementDate:  d.StatementDate,
		BancaID:        d.BancaID,
		VentanaID:      d.VentanaID,
		VendedorID:     d.VendedorID,
		Amount:         d.Amount,
		Type:           string(d.Type),
		Method:         string(d.Method),
		Notes:          d.Notes,
		IsFinal:        d.IsFinal,
		IdempotencyKey: d.IdempotencyKey,
		IsReversed:     d.IsReversed,
		ReversedAt:     d.ReversedAt,
		ReversedBy:     d.ReversedBy,
		ReversalReason: d.ReversalReason,
		PaymentDate:    d.PaymentDate,
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
	}
}

// ToDomainPayment converts a model AccountPayment to a domain AccountPayment
func ToDomainPayment(m models.AccountPayment) domain.AccountPayment {
	return domain.AccountPayment{
		PaymentID:      m.PaymentID,
		StatementID:    m.StatementID,
		StatementDate:  m.StatementDate,
		BancaID:        m.BancaID,
		VentanaID:      m.VentanaID,
		VendedorID:     m.VendedorID,
		Amount:         m.Amount,
		Type:           domain.PaymentType(m.Type),
		Method:         domain.PaymentMethod(m.Method),
		Notes:          m.Notes,
		IsFinal:        m.IsFinal,
		IdempotencyKey: m.IdempotencyKey,
		IsReversed:     m.IsReversed,
		ReversedAt:     m.ReversedAt,
		ReversedBy:     m.ReversedBy,
		ReversalReason: m.ReversalReason,
		PaymentDate:    m.PaymentDate,
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
	}
}
