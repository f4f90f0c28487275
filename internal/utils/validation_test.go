package utils

import (
	"strings"
	"testing"
	"time"
)

func TestValidateCampaignDates(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	if err := ValidateCampaignDates(&start, &end); err != nil {
		t.Errorf("valid range rejected: %v", err)
	}
	if err := ValidateCampaignDates(nil, &end); err != nil {
		t.Errorf("missing start date rejected: %v", err)
	}
	if err := ValidateCampaignDates(&start, nil); err != nil {
		t.Errorf("missing end date rejected: %v", err)
	}
	if err := ValidateCampaignDates(&start, &start); err != nil {
		t.Errorf("same-day range rejected: %v", err)
	}
	if err := ValidateCampaignDates(&end, &start); err == nil {
		t.Error("inverted range accepted")
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	password := GenerateRandomPassword(12)
	if len(password) != 12 {
		t.Errorf("password length = %d, want 12", len(password))
	}
}

func TestGenerateRandomOTP(t *testing.T) {
	otp := GenerateRandomOTP()
	if len(otp) != 6 {
		t.Fatalf("otp length = %d, want 6", len(otp))
	}
	if strings.Trim(otp, "0123456789") != "" {
		t.Errorf("otp contains non-digits: %q", otp)
	}
}
