package mapping

import (
	"github.com/SscSPs/banca_settlement/internal/core/domain"
	"github.com/SscSPs/banca_settlement/internal/models"
)

func ToModelSorteo(d domain.Sorteo) models.Sorteo {
	return models.Sorteo{
		SorteoID:          d.SorteoID,
		LoteriaID:         d.LoteriaID,
		Name:              d.Name,
		ScheduledAt:       d.ScheduledAt,
		Status:            string(d.Status),
		WinningNumber:     d.WinningNumber,
		ExtraOutcomeCode:  d.ExtraOutcomeCode,
		ExtraMultiplierID: d.ExtraMultiplierID,
		ExtraMultiplierX:  d.ExtraMultiplierX,
		HasWinner:         d.HasWinner,
		EvaluatedAt:       d.EvaluatedAt,
		EvaluatedBy:       d.EvaluatedBy,
		ClosedAt:          d.ClosedAt,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainSorteo(m models.Sorteo) domain.Sorteo {
	return domain.Sorteo{
		SorteoID:          m.SorteoID,
		LoteriaID:         m.LoteriaID,
		Name:              m.Name,
		ScheduledAt:       m.ScheduledAt,
		Status:            domain.SorteoStatus(m.Status),
		WinningNumber:     m.WinningNumber,
		ExtraOutcomeCode:  m.ExtraOutcomeCode,
		ExtraMultiplierID: m.ExtraMultiplierID,
		ExtraMultiplierX:  m.ExtraMultiplierX,
		HasWinner:         m.HasWinner,
		EvaluatedAt:       m.EvaluatedAt,
		EvaluatedBy:       m.EvaluatedBy,
		ClosedAt:          m.ClosedAt,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainMultiplier(m models.Multiplier) domain.Multiplier {
	return domain.Multiplier{
		MultiplierID: m.MultiplierID,
		LoteriaID:    m.LoteriaID,
		Kind:         domain.BetType(m.Kind),
		Name:         m.Name,
		ValueX:       m.ValueX,
		IsActive:     m.IsActive,
	}
}

// ToModelTicket converts the ticket columns; jugadas are mapped separately.
func ToModelTicket(d domain.Ticket) models.Ticket {
	return models.Ticket{
		TicketID:        d.TicketID,
		TicketNumber:    d.TicketNumber,
		SorteoID:        d.SorteoID,
		LoteriaID:       d.LoteriaID,
		BancaID:         d.BancaID,
		VentanaID:       d.VentanaID,
		VendedorID:      d.VendedorID,
		BusinessDate:    d.BusinessDate,
		Status:          string(d.Status),
		TotalAmount:     d.TotalAmount,
		TotalPayout:     d.TotalPayout,
		TotalPaid:       d.TotalPaid,
		RemainingAmount: d.RemainingAmount,
		IsWinner:        d.IsWinner,
		IsSorteoClosed:  d.IsSorteoClosed,
		LastPaymentAt:   d.LastPaymentAt,
		PaidBy:          d.PaidBy,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainTicket(m models.Ticket, jugadas []domain.Jugada) domain.Ticket {
	return domain.Ticket{
		TicketID:        m.TicketID,
		TicketNumber:    m.TicketNumber,
		SorteoID:        m.SorteoID,
		LoteriaID:       m.LoteriaID,
		BancaID:         m.BancaID,
		VentanaID:       m.VentanaID,
		VendedorID:      m.VendedorID,
		BusinessDate:    m.BusinessDate,
		Status:          domain.TicketStatus(m.Status),
		TotalAmount:     m.TotalAmount,
		TotalPayout:     m.TotalPayout,
		TotalPaid:       m.TotalPaid,
		RemainingAmount: m.RemainingAmount,
		IsWinner:        m.IsWinner,
		IsSorteoClosed:  m.IsSorteoClosed,
		LastPaymentAt:   m.LastPaymentAt,
		PaidBy:          m.PaidBy,
		Jugadas:         jugadas,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelJugada(d domain.Jugada) models.Jugada {
	return models.Jugada{
		JugadaID:          d.JugadaID,
		TicketID:          d.TicketID,
		Type:              string(d.Type),
		Number:            d.Number,
		Amount:            d.Amount,
		FinalMultiplierX:  d.FinalMultiplierX,
		MultiplierID:      d.MultiplierID,
		CommissionPercent: d.CommissionPercent,
		CommissionAmount:  d.CommissionAmount,
		CommissionOrigin:  string(d.CommissionOrigin),
		IsWinner:          d.IsWinner,
		Payout:            d.Payout,
	}
}

func ToDomainJugada(m models.Jugada) domain.Jugada {
	return domain.Jugada{
		JugadaID:          m.JugadaID,
		TicketID:          m.TicketID,
		Type:              domain.BetType(m.Type),
		Number:            m.Number,
		Amount:            m.Amount,
		FinalMultiplierX:  m.FinalMultiplierX,
		MultiplierID:      m.MultiplierID,
		CommissionPercent: m.CommissionPercent,
		CommissionAmount:  m.CommissionAmount,
		CommissionOrigin:  domain.CommissionOrigin(m.CommissionOrigin),
		IsWinner:          m.IsWinner,
		Payout:            m.Payout,
	}
}

func ToDomainJugadaFact(m models.JugadaFact) domain.JugadaFact {
	return domain.JugadaFact{
		Jugada:       ToDomainJugada(m.Jugada),
		SorteoID:     m.SorteoID,
		LoteriaID:    m.LoteriaID,
		BancaID:      m.BancaID,
		VentanaID:    m.VentanaID,
		VendedorID:   m.VendedorID,
		BusinessDate: m.BusinessDate,
	}
}

func ToModelTicketPayment(d domain.TicketPayment) models.TicketPayment {
	return models.TicketPayment{
		TicketPaymentID: d.TicketPaymentID,
		TicketID:        d.TicketID,
		SorteoID:        d.SorteoID,
		Amount:          d.Amount,
		Method:          string(d.Method),
		IdempotencyKey:  d.IdempotencyKey,
		PaidAt:          d.PaidAt,
		PaidBy:          d.PaidBy,
	}
}

func ToDomainTicketPayment(m models.TicketPayment) domain.TicketPayment {
	return domain.TicketPayment{
		TicketPaymentID: m.TicketPaymentID,
		TicketID:        m.TicketID,
		SorteoID:        m.SorteoID,
		Amount:          m.Amount,
		Method:          domain.PaymentMethod(m.Method),
		IdempotencyKey:  m.IdempotencyKey,
		PaidAt:          m.PaidAt,
		PaidBy:          m.PaidBy,
	}
}
