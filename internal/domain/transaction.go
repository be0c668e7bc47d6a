package domain

import "time"

type TransactionStatus string

const (
	TransactionPending  TransactionStatus = "Pending"
	TransactionApproved TransactionStatus = "Approved"
	TransactionRejected TransactionStatus = "Rejected"
)

// Transaction is a manual deposit request. The status leaves Pending exactly
// once, in either direction, and is immutable afterwards.
type Transaction struct {
	ID                uint              `json:"id"`
	PlayerID          uint              `json:"player_id"`
	ExternalReference string            `json:"external_reference"`
	Amount            int               `json:"amount"`
	Status            TransactionStatus `json:"status"`
	CreatedAt         time.Time         `json:"created_at"`
	ApprovedAt        *time.Time        `json:"approved_at,omitempty"`
	RejectionReason   string            `json:"rejection_reason,omitempty"`
}
