package domain

import (
	"time"
)

type DealStatus string

const (
	DealStatusPending     DealStatus = "PENDING"
	DealStatusNegotiating DealStatus = "NEGOTIATING"
	DealStatusSigned      DealStatus = "SIGNED"
	DealStatusActive      DealStatus = "ACTIVE"
	DealStatusCompleted   DealStatus = "COMPLETED"
	DealStatusCancelled   DealStatus = "CANCELLED"
)

// CampaignRef and CreatorRef are the denormalized relation views
// attached to deals returned by list and detail queries.
type CampaignRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Brand string `json:"brand"`
}

type CreatorRef struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email"`
}

type Deal struct {
	ID         int64      `json:"id"`
	CampaignID int64      `json:"campaignId"`
	CreatorID  int64      `json:"creatorId"`
	Value      float64    `json:"value"`
	Status     DealStatus `json:"status"`
	SignedAt   *time.Time `json:"signedAt"`
	Notes      *string    `json:"notes"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	Version    int32      `json:"-"`

	Campaign *CampaignRef `json:"campaign,omitempty"`
	Creator  *CreatorRef  `json:"creator,omitempty"`
}
