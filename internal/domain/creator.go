package domain

import (
	"time"
)

type CreatorStatus string

const (
	CreatorStatusActive   CreatorStatus = "ACTIVE"
	CreatorStatusInactive CreatorStatus = "INACTIVE"
	CreatorStatusPending  CreatorStatus = "PENDING"
	CreatorStatusArchived CreatorStatus = "ARCHIVED"
)

type Creator struct {
	ID              int64         `json:"id"`
	Name            string        `json:"name"`
	Email           *string       `json:"email"`
	Phone           *string       `json:"phone"`
	InstagramHandle *string       `json:"instagramHandle"`
	TiktokHandle    *string       `json:"tiktokHandle"`
	YoutubeHandle   *string       `json:"youtubeHandle"`
	TwitterHandle   *string       `json:"twitterHandle"`
	Status          CreatorStatus `json:"status"`
	Notes           *string       `json:"notes"`
	OwnerID         int64         `json:"ownerId"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
	Version         int32         `json:"-"`

	// Filled by list queries, not a column.
	DealCount int64 `json:"dealCount"`
}
