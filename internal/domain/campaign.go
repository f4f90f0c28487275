package domain

import (
	"time"
)

type CampaignStatus string

const (
	CampaignStatusPlanning  CampaignStatus = "PLANNING"
	CampaignStatusActive    CampaignStatus = "ACTIVE"
	CampaignStatusCompleted CampaignStatus = "COMPLETED"
	CampaignStatusCancelled CampaignStatus = "CANCELLED"
)

type Campaign struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Brand       string         `json:"brand"`
	Description *string        `json:"description"`
	StartDate   *time.Time     `json:"startDate"`
	EndDate     *time.Time     `json:"endDate"`
	Budget      *float64       `json:"budget"`
	Status      CampaignStatus `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Version     int32          `json:"-"`

	// Filled by list queries, not a column.
	DealCount int64 `json:"dealCount"`
}
