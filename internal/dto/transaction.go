package dto

import (
	"time"

	"github.com/SscSPs/asset_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the body of POST /transactions.
// Companion-field requirements depend on transaction_type and are enforced by
// the ledger validator, not by binding tags.
type CreateTransactionRequest struct {
	TransactionType string           `json:"transaction_type" binding:"required,max=50,transaction_type"`
	TransactionDate *FlexibleDate    `json:"transaction_date" binding:"required"`
	Amount          *decimal.Decimal `json:"amount"`
	QuantityChange  *decimal.Decimal `json:"quantity_change"`
	Notes           *string          `json:"notes"`
	Metadata        map[string]any   `json:"metadata"`
	AssetID         *string          `json:"asset_id" binding:"omitempty,uuid"`

	AssetName        *string          `json:"asset_name"`
	AssetType        *string          `json:"asset_type"`
	AcquisitionValue *decimal.Decimal `json:"acquisition_value"`
	CurrentValue     *decimal.Decimal `json:"current_value"`
	Quantity         *decimal.Decimal `json:"quantity"`
	UnitOfMeasure    *string          `json:"unit_of_measure"`
	CustomProperties *string          `json:"custom_properties"`
	AssetDescription *string          `json:"asset_description"`
	LiquidAssets     *FlexibleFlag    `json:"liquid_assets"`
	TimeHorizon      *string          `json:"time_horizon"`
	AssetPurpose     *string          `json:"asset_purpose"`

	UpdateQuantityUnits         *string       `json:"update_quantity_units"`
	UpdateDescriptionProperties *FlexibleText `json:"update_description_properties"`
}

// ToDomainInput converts the request into a ledger input.
func (r CreateTransactionRequest) ToDomainInput() domain.TransactionInput {
	in := domain.TransactionInput{
		TransactionType:     domain.TransactionType(r.TransactionType),
		AssetID:             r.AssetID,
		Amount:              r.Amount,
		QuantityChange:      r.QuantityChange,
		Notes:               r.Notes,
		Metadata:            r.Metadata,
		AssetName:           r.AssetName,
		AssetType:           r.AssetType,
		AcquisitionValue:    r.AcquisitionValue,
		CurrentValue:        r.CurrentValue,
		Quantity:            r.Quantity,
		UnitOfMeasure:       r.UnitOfMeasure,
		CustomProperties:    r.CustomProperties,
		AssetDescription:    r.AssetDescription,
		TimeHorizon:         r.TimeHorizon,
		AssetPurpose:        r.AssetPurpose,
		UpdateQuantityUnits: r.UpdateQuantityUnits,
	}
	if r.TransactionDate != nil {
		in.TransactionDate = r.TransactionDate.Time
	}
	if r.LiquidAssets != nil {
		s := string(*r.LiquidAssets)
		in.LiquidAssets = &s
	}
	if r.UpdateDescriptionProperties != nil {
		s := string(*r.UpdateDescriptionProperties)
		in.UpdateDescriptionProperties = &s
	}
	return in
}

// UpdateTransactionRequest defines the cosmetic fields of a ledger entry that may be edited.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateTransactionRequest struct {
	TransactionDate *FlexibleDate    `json:"transaction_date"`
	Amount          *decimal.Decimal `json:"amount"`
	QuantityChange  *decimal.Decimal `json:"quantity_change"`
	Notes           *string          `json:"notes"`
	Metadata        map[string]any   `json:"metadata"`
}

// ToDomainUpdate converts the request into a domain update.
func (r UpdateTransactionRequest) ToDomainUpdate() domain.TransactionUpdate {
	u := domain.TransactionUpdate{
		Amount:         r.Amount,
		QuantityChange: r.QuantityChange,
		Notes:          r.Notes,
		Metadata:       r.Metadata,
	}
	if r.TransactionDate != nil {
		t := r.TransactionDate.Time
		u.TransactionDate = &t
	}
	return u
}

// ListTransactionsParams defines the query parameters for listing ledger entries.
type ListTransactionsParams struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"next_token"`
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	ID               string           `json:"id"`
	UserID           string           `json:"user_id"`
	AssetID          string           `json:"asset_id"`
	TransactionType  string           `json:"transaction_type"`
	TransactionDate  string           `json:"transaction_date"`
	Amount           *decimal.Decimal `json:"amount"`
	QuantityChange   *decimal.Decimal `json:"quantity_change"`
	Notes            string           `json:"notes"`
	Metadata         map[string]any   `json:"metadata"`
	AssetName        string           `json:"asset_name,omitempty"`
	AssetType        string           `json:"asset_type,omitempty"`
	AcquisitionValue *decimal.Decimal `json:"acquisition_value,omitempty"`
	CurrentValue     *decimal.Decimal `json:"current_value,omitempty"`
	Quantity         *decimal.Decimal `json:"quantity,omitempty"`
	UnitOfMeasure    string           `json:"unit_of_measure,omitempty"`
	CustomProperties string           `json:"custom_properties,omitempty"`
	AssetDescription string           `json:"asset_description,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// ListTransactionsResponse wraps a page of ledger entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"next_token,omitempty"`
}

// DeletionSummaryResponse reports what a deletion removed.
type DeletionSummaryResponse struct {
	Message                  string `json:"message"`
	TransactionType          string `json:"transaction_type"`
	AssetDeleted             bool   `json:"asset_deleted"`
	AssetName                string `json:"asset_name,omitempty"`
	TotalTransactionsDeleted *int64 `json:"total_transactions_deleted,omitempty"`
	TransactionsDeleted      *int64 `json:"transactions_deleted,omitempty"`
}

// LedgerDeletionResponse is returned by POST /transactions for delete entries.
// No entry is recorded for the deletion itself, so ID is always null.
type LedgerDeletionResponse struct {
	DeletionSummaryResponse
	ID *string `json:"id"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:               txn.TransactionID,
		UserID:           txn.UserID,
		AssetID:          txn.AssetID,
		TransactionType:  string(txn.TransactionType),
		TransactionDate:  txn.TransactionDate.Format(DateLayout),
		Amount:           txn.Amount,
		QuantityChange:   txn.QuantityChange,
		Notes:            txn.Notes,
		Metadata:         txn.Metadata,
		AssetName:        txn.AssetName,
		AssetType:        txn.AssetType,
		AcquisitionValue: txn.AcquisitionValue,
		CurrentValue:     txn.CurrentValue,
		Quantity:         txn.Quantity,
		UnitOfMeasure:    txn.UnitOfMeasure,
		CustomProperties: txn.CustomProperties,
		AssetDescription: txn.AssetDescription,
		CreatedAt:        txn.CreatedAt,
		UpdatedAt:        txn.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

// ToDeletionSummaryResponse converts a domain.DeletionSummary. Cascades report
// total_transactions_deleted; single-row deletions report transactions_deleted.
func ToDeletionSummaryResponse(s *domain.DeletionSummary) DeletionSummaryResponse {
	resp := DeletionSummaryResponse{
		Message:         s.Message,
		TransactionType: string(s.TransactionType),
		AssetDeleted:    s.AssetDeleted,
		AssetName:       s.AssetName,
	}
	count := s.TotalTransactionsDeleted
	if s.AssetDeleted {
		resp.TotalTransactionsDeleted = &count
	} else {
		resp.TransactionsDeleted = &count
	}
	return resp
}
