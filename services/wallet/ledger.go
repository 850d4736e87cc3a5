package wallet

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	walletRepo "spacehive/database/repository/wallet"
	"spacehive/models"
	"spacehive/utils"
)

// Ledger records money movements against user, partner and platform
// accounts. Balance mutation is a single atomic increment per call.
type Ledger interface {
	Credit(ctx context.Context, accountID string, amount float64, reason, refID, refType string) error
	Debit(ctx context.Context, accountID string, amount float64, reason, refID, refType string) error
	Balance(ctx context.Context, accountID string) (*models.Wallet, error)
	History(ctx context.Context, accountID string, limit int) ([]models.WalletTransaction, error)
}

type DefaultLedger struct {
	repo   walletRepo.WalletRepository
	logger *zap.Logger
}

func NewDefaultLedger(repo walletRepo.WalletRepository) *DefaultLedger {
	return &DefaultLedger{
		repo:   repo,
		logger: utils.GetLogger().Named("wallet"),
	}
}

func (l *DefaultLedger) record(ctx context.Context, accountID string, amount float64, txnType, reason, refID, refType string) error {
	if amount <= 0 {
		return utils.InvalidInput("wallet amount must be positive")
	}
	txn := &models.WalletTransaction{
		ID:            uuid.NewString(),
		AccountID:     accountID,
		Amount:        amount,
		Type:          txnType,
		Reason:        reason,
		ReferenceID:   refID,
		ReferenceType: refType,
	}
	if err := l.repo.ApplyTransaction(ctx, txn); err != nil {
		return err
	}
	l.logger.Info("Wallet transaction applied",
		zap.String("accountId", accountID),
		zap.String("type", txnType),
		zap.Float64("amount", amount),
		zap.String("reason", reason))
	return nil
}

func (l *DefaultLedger) Credit(ctx context.Context, accountID string, amount float64, reason, refID, refType string) error {
	return l.record(ctx, accountID, amount, models.WalletTxnCredit, reason, refID, refType)
}

func (l *DefaultLedger) Debit(ctx context.Context, accountID string, amount float64, reason, refID, refType string) error {
	return l.record(ctx, accountID, amount, models.WalletTxnDebit, reason, refID, refType)
}

func (l *DefaultLedger) Balance(ctx context.Context, accountID string) (*models.Wallet, error) {
	return l.repo.GetWallet(ctx, accountID)
}

func (l *DefaultLedger) History(ctx context.Context, accountID string, limit int) ([]models.WalletTransaction, error) {
	return l.repo.ListTransactions(ctx, accountID, limit)
}
