package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/asset_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAssetMappingNullability(t *testing.T) {
	qty := decimal.NewFromInt(3)
	d := domain.Asset{
		AssetID:   "asset-1",
		UserID:    "user-1",
		Name:      "Gold",
		AssetType: "commodity",
		Quantity:  &qty,
	}

	m := ToModelAsset(d)
	assert.False(t, m.Description.Valid, "empty description is stored as NULL")
	assert.False(t, m.CurrentValue.Valid, "missing current value is stored as NULL")
	assert.True(t, m.Quantity.Valid)

	back := ToDomainAsset(m)
	assert.Nil(t, back.CurrentValue)
	assert.Nil(t, back.InitialValue)
	assert.True(t, back.Quantity.Equal(qty))
	assert.Equal(t, "", back.Description)
}

func TestTransactionMappingKeepsUnknownType(t *testing.T) {
	amount := decimal.RequireFromString("12.50")
	d := domain.Transaction{
		TransactionID:   "txn-1",
		AssetID:         "asset-1",
		TransactionType: "dividend",
		TransactionDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Amount:          &amount,
	}

	m := ToModelTransaction(d)
	assert.Equal(t, "dividend", m.TransactionType)
	assert.False(t, m.QuantityChange.Valid)

	back := ToDomainTransaction(m)
	assert.Equal(t, domain.TransactionType("dividend"), back.TransactionType)
	assert.True(t, back.Amount.Equal(amount))
	assert.Nil(t, back.QuantityChange)
}
