package walletRepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"spacehive/database"
	"spacehive/models"
	"spacehive/utils"
)

// WalletRepository persists account balances and ledger entries.
type WalletRepository interface {
	// ApplyTransaction records the ledger entry and adjusts the account
	// balance with an atomic increment, creating the wallet on first use.
	ApplyTransaction(ctx context.Context, txn *models.WalletTransaction) error
	GetWallet(ctx context.Context, accountID string) (*models.Wallet, error)
	ListTransactions(ctx context.Context, accountID string, limit int) ([]models.WalletTransaction, error)
}

type MongoWalletRepo struct {
	walletColl *mongo.Collection
	txnColl    *mongo.Collection
}

func NewMongoWalletRepo() *MongoWalletRepo {
	db := database.MongoClient.Database(database.DatabaseName())
	repo := &MongoWalletRepo{
		walletColl: db.Collection("wallets"),
		txnColl:    db.Collection("wallet_transactions"),
	}
	repo.ensureIndexes()
	return repo
}

func (r *MongoWalletRepo) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	walletIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "account_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := r.walletColl.Indexes().CreateMany(ctx, walletIndexes); err != nil {
		utils.GetLogger().Error("Failed to create wallet indexes", zap.Error(err))
	}

	txnIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "account_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "reference_id", Value: 1}},
		},
	}
	if _, err := r.txnColl.Indexes().CreateMany(ctx, txnIndexes); err != nil {
		utils.GetLogger().Error("Failed to create wallet transaction indexes", zap.Error(err))
	}
}

func (r *MongoWalletRepo) ApplyTransaction(ctx context.Context, txn *models.WalletTransaction) error {
	txn.CreatedAt = time.Now()
	if _, err := r.txnColl.InsertOne(ctx, txn); err != nil {
		return utils.Internal("failed to record wallet transaction", err)
	}

	delta := txn.Amount
	if txn.Type == models.WalletTxnDebit {
		delta = -delta
	}
	_, err := r.walletColl.UpdateOne(ctx,
		bson.M{"account_id": txn.AccountID},
		bson.M{
			"$inc": bson.M{"balance": delta},
			"$set": bson.M{"updated_at": time.Now()},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return utils.Internal("failed to update wallet balance", err)
	}
	return nil
}

func (r *MongoWalletRepo) GetWallet(ctx context.Context, accountID string) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.walletColl.FindOne(ctx, bson.M{"account_id": accountID}).Decode(&wallet)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.Wallet{AccountID: accountID}, nil
		}
		return nil, utils.Internal("failed to fetch wallet", err)
	}
	return &wallet, nil
}

func (r *MongoWalletRepo) ListTransactions(ctx context.Context, accountID string, limit int) ([]models.WalletTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.txnColl.Find(ctx, bson.M{"account_id": accountID}, opts)
	if err != nil {
		return nil, utils.Internal("failed to list wallet transactions", err)
	}
	defer cursor.Close(ctx)

	var txns []models.WalletTransaction
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, utils.Internal("failed to decode wallet transactions", err)
	}
	return txns, nil
}
