package services

import (
	"context"

	"github.com/SscSPs/asset_ledger_app/internal/core/domain"
	"github.com/SscSPs/asset_ledger_app/internal/dto"
)

// TransactionReaderSvc defines read-only ledger operations.
type TransactionReaderSvc interface {
	GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)
	// ListTransactions returns a page of the caller's entries, newest first,
	// and the token of the next page if there is one.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error)
	ListAssetTransactions(ctx context.Context, userID, assetID string) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines operations that record, edit or remove ledger entries.
type TransactionWriterSvc interface {
	// RecordTransaction persists one ledger entry and applies it to its asset
	// atomically. Delete entries cascade and return a deletion summary instead.
	RecordTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.LedgerResult, error)
	// DeleteTransaction removes one entry; removing a create entry removes its asset too.
	DeleteTransaction(ctx context.Context, userID, transactionID string) (*domain.DeletionSummary, error)
	// UpdateTransaction edits cosmetic fields only. The asset is not re-projected.
	UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all ledger service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
