package utils

import (
	"errors"
	"time"
)

// ValidateCampaignDates checks that an end date, when present alongside a
// start date, does not precede it. Either date may be absent.
func ValidateCampaignDates(startDate, endDate *time.Time) error {
	if startDate == nil || endDate == nil {
		return nil
	}

	if endDate.Before(*startDate) {
		return errors.New("end date cannot be before start date")
	}

	return nil
}
