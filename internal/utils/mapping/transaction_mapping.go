package mapping

import (
	"github.com/SscSPs/asset_ledger_app/internal/core/domain"
	"github.com/SscSPs/asset_ledger_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:    d.TransactionID,
		UserID:           d.UserID,
		AssetID:          d.AssetID,
		TransactionType:  string(d.TransactionType),
		TransactionDate:  d.TransactionDate,
		Amount:           toNullDecimal(d.Amount),
		QuantityChange:   toNullDecimal(d.QuantityChange),
		Notes:            toNullString(d.Notes),
		Metadata:         d.Metadata,
		AssetName:        toNullString(d.AssetName),
		AssetType:        toNullString(d.AssetType),
		AcquisitionValue: toNullDecimal(d.AcquisitionValue),
		CurrentValue:     toNullDecimal(d.CurrentValue),
		Quantity:         toNullDecimal(d.Quantity),
		UnitOfMeasure:    toNullString(d.UnitOfMeasure),
		CustomProperties: toNullString(d.CustomProperties),
		AssetDescription: toNullString(d.AssetDescription),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:    m.TransactionID,
		UserID:           m.UserID,
		AssetID:          m.AssetID,
		TransactionType:  domain.TransactionType(m.TransactionType),
		TransactionDate:  m.TransactionDate,
		Amount:           fromNullDecimal(m.Amount),
		QuantityChange:   fromNullDecimal(m.QuantityChange),
		Notes:            m.Notes.String,
		Metadata:         m.Metadata,
		AssetName:        m.AssetName.String,
		AssetType:        m.AssetType.String,
		AcquisitionValue: fromNullDecimal(m.AcquisitionValue),
		CurrentValue:     fromNullDecimal(m.CurrentValue),
		Quantity:         fromNullDecimal(m.Quantity),
		UnitOfMeasure:    m.UnitOfMeasure.String,
		CustomProperties: m.CustomProperties.String,
		AssetDescription: m.AssetDescription.String,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
