package models

import "time"

// TransactionType is the kind of lifecycle event recorded for an asset.
type TransactionType string

const (
	TransactionCheckOut TransactionType = "CheckOut"
	TransactionCheckIn  TransactionType = "CheckIn"
)

// AssetTransaction is one immutable check-out or check-in record.
// Asset is resolved on history reads and stays nil when the referenced
// asset has since been deleted.
type AssetTransaction struct {
	ID       int             `json:"id"`
	AssetID  int             `json:"asset_id"`
	Asset    *Asset          `json:"asset,omitempty"`
	UserName string          `json:"user_name"`
	Type     TransactionType `json:"type"`
	Date     time.Time       `json:"date"`
}
