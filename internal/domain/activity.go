package domain

import (
	"time"
)

// Activity is an immutable audit record. It is only ever inserted,
// never updated or aggregated.
type Activity struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  int64     `json:"entityId"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`

	// Filled by list queries for display.
	UserName  string `json:"userName,omitempty"`
	UserEmail string `json:"userEmail,omitempty"`
}
