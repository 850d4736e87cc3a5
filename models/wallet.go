package models

import "time"

// Wallet transaction types.
const (
	WalletTxnCredit = "CREDIT"
	WalletTxnDebit  = "DEBIT"
)

// PlatformAccountID is the ledger account that collects commissions.
const PlatformAccountID = "platform"

// WalletTransaction is a single ledger entry against an account. The
// balance itself lives on the wallet document and is mutated with an
// atomic increment by the ledger.
type WalletTransaction struct {
	ID            string    `bson:"id" json:"id"`
	AccountID     string    `bson:"account_id" json:"accountId"`
	Amount        float64   `bson:"amount" json:"amount"`
	Type          string    `bson:"type" json:"type"`
	Reason        string    `bson:"reason" json:"reason"`
	ReferenceID   string    `bson:"reference_id,omitempty" json:"referenceId,omitempty"`
	ReferenceType string    `bson:"reference_type,omitempty" json:"referenceType,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
}

// Wallet holds the running balance for an account.
type Wallet struct {
	AccountID string    `bson:"account_id" json:"accountId"`
	Balance   float64   `bson:"balance" json:"balance"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// RefundCalculation is the refund-policy engine's verdict for a
// cancellation.
type RefundCalculation struct {
	IsRefundable     bool    `json:"isRefundable"`
	RefundAmount     float64 `json:"refundAmount"`
	CancellationFee  float64 `json:"cancellationFee"`
	RefundPercentage float64 `json:"refundPercentage"`
	Reason           string  `json:"reason"`
}
