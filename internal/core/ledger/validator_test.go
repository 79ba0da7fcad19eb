package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/asset_ledger_app/internal/apperrors"
	"github.com/SscSPs/asset_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      domain.TransactionInput
		wantErr error
		wantMsg string
	}{
		{
			name: "create with name and type",
			in:   domain.TransactionInput{TransactionType: domain.TxCreate, AssetName: strPtr("AAPL"), AssetType: strPtr("stock")},
		},
		{
			name:    "create missing type",
			in:      domain.TransactionInput{TransactionType: domain.TxCreate, AssetName: strPtr("AAPL")},
			wantErr: apperrors.ErrValidation,
			wantMsg: msgCreateFieldsRequired,
		},
		{
			name:    "create with blank name",
			in:      domain.TransactionInput{TransactionType: domain.TxCreate, AssetName: strPtr("  "), AssetType: strPtr("stock")},
			wantErr: apperrors.ErrValidation,
			wantMsg: msgCreateFieldsRequired,
		},
		{
			name:    "non-create without asset id",
			in:      domain.TransactionInput{TransactionType: domain.TxSale},
			wantErr: apperrors.ErrValidation,
			wantMsg: msgAssetIDRequired,
		},
		{
			name:    "unknown type still needs asset id",
			in:      domain.TransactionInput{TransactionType: "dividend"},
			wantErr: apperrors.ErrValidation,
			wantMsg: msgAssetIDRequired,
		},
		{
			name: "non-create with asset id",
			in:   domain.TransactionInput{TransactionType: domain.TxValueUpdate, AssetID: strPtr("a-1")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
			assert.Equal(t, tt.wantMsg, apperrors.Message(err))
		})
	}
}

func TestCheckOwnership(t *testing.T) {
	asset := &domain.Asset{AssetID: "a-1", UserID: "user-1"}

	assert.NoError(t, CheckOwnership(asset, "user-1"))

	err := CheckOwnership(asset, "user-2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "Asset not found", apperrors.Message(err))

	assert.ErrorIs(t, CheckOwnership(nil, "user-1"), apperrors.ErrNotFound)
}

func TestSynthesizeAsset_Defaults(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	in := domain.TransactionInput{
		TransactionType: domain.TxCreate,
		TransactionDate: date,
		AssetName:       strPtr("Savings"),
		AssetType:       strPtr("cash"),
	}

	asset := SynthesizeAsset(in, "asset-1", "user-1", now)

	assert.Equal(t, "asset-1", asset.AssetID)
	assert.Equal(t, "user-1", asset.UserID)
	assert.True(t, asset.InitialValue.IsZero())
	assert.True(t, asset.CurrentValue.IsZero())
	assert.True(t, asset.Quantity.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, "", asset.UnitOfMeasure)
	assert.Equal(t, "", asset.Description)
	assert.False(t, asset.LiquidAssets)
	assert.Nil(t, asset.Metadata)
	require.NotNil(t, asset.PurchaseDate)
	assert.Equal(t, date, *asset.PurchaseDate)
	assert.Equal(t, now, asset.CreatedAt)
}

func TestSynthesizeAsset_CurrentValueFallsBackToAcquisition(t *testing.T) {
	in := domain.TransactionInput{
		TransactionType:  domain.TxCreate,
		AssetName:        strPtr("AAPL"),
		AssetType:        strPtr("stock"),
		AcquisitionValue: decPtr("1000"),
		Quantity:         decPtr("10"),
		CustomProperties: strPtr("ticker=AAPL"),
		LiquidAssets:     strPtr("true"),
		AssetPurpose:     strPtr("retirement"),
	}

	asset := SynthesizeAsset(in, "asset-1", "user-1", time.Now())

	assert.True(t, asset.InitialValue.Equal(decimal.NewFromInt(1000)))
	assert.True(t, asset.CurrentValue.Equal(decimal.NewFromInt(1000)))
	assert.True(t, asset.Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, asset.LiquidAssets)
	assert.Equal(t, "retirement", asset.AssetPurpose)
	assert.Equal(t, map[string]any{"custom_properties": "ticker=AAPL"}, asset.Metadata)

	// explicit zero current value is kept, not replaced by acquisition value
	in.CurrentValue = decPtr("0")
	asset = SynthesizeAsset(in, "asset-2", "user-1", time.Now())
	assert.True(t, asset.CurrentValue.IsZero())
}

func TestBuildTransaction_CreateSnapshot(t *testing.T) {
	in := domain.TransactionInput{
		TransactionType:  domain.TxCreate,
		AssetName:        strPtr("AAPL"),
		AssetType:        strPtr("stock"),
		AcquisitionValue: decPtr("1000"),
		Quantity:         decPtr("10"),
		TimeHorizon:      strPtr("long_term"),
	}

	txn := BuildTransaction(in, "txn-1", "asset-1", "user-1", time.Now())

	assert.Equal(t, "asset-1", txn.AssetID)
	assert.True(t, txn.Amount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, txn.QuantityChange.Equal(decimal.NewFromInt(10)))
	assert.True(t, txn.AcquisitionValue.Equal(decimal.NewFromInt(1000)))
	assert.True(t, txn.CurrentValue.Equal(decimal.NewFromInt(1000)))
	assert.True(t, txn.Quantity.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "AAPL", txn.AssetName)
	assert.Equal(t, false, txn.Metadata["liquid_assets"])
	assert.Equal(t, "long_term", txn.Metadata["time_horizon"])
}

func TestBuildTransaction_NonCreateKeepsPayload(t *testing.T) {
	in := domain.TransactionInput{
		TransactionType: domain.TxCashDeposit,
		AssetID:         strPtr("asset-1"),
		Amount:          decPtr("200"),
		Notes:           strPtr("bonus"),
	}

	txn := BuildTransaction(in, "txn-2", "asset-1", "user-1", time.Now())

	assert.Equal(t, domain.TxCashDeposit, txn.TransactionType)
	assert.True(t, txn.Amount.Equal(decimal.NewFromInt(200)))
	assert.Nil(t, txn.QuantityChange)
	assert.Nil(t, txn.CurrentValue)
	assert.Equal(t, "bonus", txn.Notes)
	assert.Nil(t, txn.Metadata)
}
