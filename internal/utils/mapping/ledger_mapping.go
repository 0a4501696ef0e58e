package mapping

import (
	"github.com/SscSPs/banca_settlement/internal/core/domain"
	"github.com/SscSPs/banca_settlement/internal/models"
)

// ToModelAuditFields converts a domain AuditFields to a model AuditFields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts a model AuditFields to a domain AuditFields
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:    d.AccountID,
		OwnerType:    string(d.OwnerType),
		OwnerID:      d.OwnerID,
		CurrencyCode: d.CurrencyCode,
		IsActive:     d.IsActive,
		Balance:      d.Balance,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:    m.AccountID,
		OwnerType:    domain.OwnerType(m.OwnerType),
		OwnerID:      m.OwnerID,
		CurrencyCode: m.CurrencyCode,
		IsActive:     m.IsActive,
		Balance:      m.Balance,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:           d.EntryID,
		AccountID:         d.AccountID,
		EntryType:         string(d.EntryType),
		ValueSigned:       d.ValueSigned,
		ReferenceType:     d.ReferenceType,
		ReferenceID:       d.ReferenceID,
		EntryDate:         d.EntryDate,
		Description:       d.Description,
		RequestID:         d.RequestID,
		ReversalOfEntryID: d.ReversalOfEntryID,
		BalanceAfter:      d.BalanceAfter,
		CreatedAt:         d.CreatedAt,
		CreatedBy:         d.CreatedBy,
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:           m.EntryID,
		AccountID:         m.AccountID,
		EntryType:         domain.LedgerEntryType(m.EntryType),
		ValueSigned:       m.ValueSigned,
		ReferenceType:     m.ReferenceType,
		ReferenceID:       m.ReferenceID,
		EntryDate:         m.EntryDate,
		Description:       m.Description,
		RequestID:         m.RequestID,
		ReversalOfEntryID: m.ReversalOfEntryID,
		BalanceAfter:      m.BalanceAfter,
		CreatedAt:         m.CreatedAt,
		CreatedBy:         m.CreatedBy,
	}
}

// ToDomainLedgerEntrySlice converts a slice of model entries to domain entries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}

func ToModelBankDeposit(d domain.BankDeposit) models.BankDeposit {
	return models.BankDeposit(d)
}

func ToDomainBankDeposit(m models.BankDeposit) domain.BankDeposit {
	return domain.BankDeposit(m)
}

func ToModelSnapshot(d domain.DailyBalanceSnapshot) models.DailyBalanceSnapshot {
	return models.DailyBalanceSnapshot(d)
}

func ToDomainSnapshot(m models.DailyBalanceSnapshot) domain.DailyBalanceSnapshot {
	return domain.DailyBalanceSnapshot(m)
}
