package models

import "time"

// Status is the lifecycle state of an asset.
type Status string

const (
	StatusInStock Status = "InStock"
	StatusInUse   Status = "InUse"
	StatusRetired Status = "Retired"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusInStock, StatusInUse, StatusRetired:
		return true
	}
	return false
}

type Asset struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	SerialNumber string    `json:"serial_number"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
