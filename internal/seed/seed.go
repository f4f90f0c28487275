package seed

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/wavelaunch/studio-os/backend/internal/config"
	"github.com/wavelaunch/studio-os/backend/internal/domain"
	"github.com/wavelaunch/studio-os/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

func ptr[T any](v T) *T {
	return &v
}

var creatorNames = []struct {
	name   string
	email  string
	status domain.CreatorStatus
}{
	{"Sarah Johnson", "sarah.j@email.com", domain.CreatorStatusActive},
	{"Mike Chen", "mike.chen@email.com", domain.CreatorStatusActive},
	{"Emma Rodriguez", "emma.r@email.com", domain.CreatorStatusActive},
	{"David Kim", "david.kim@email.com", domain.CreatorStatusActive},
	{"Lisa Thompson", "lisa.t@email.com", domain.CreatorStatusPending},
	{"James Wilson", "james.w@email.com", domain.CreatorStatusActive},
	{"Maria Garcia", "maria.g@email.com", domain.CreatorStatusActive},
	{"Alex Turner", "alex.t@email.com", domain.CreatorStatusInactive},
	{"Sophie Anderson", "sophie.a@email.com", domain.CreatorStatusActive},
	{"Ryan Martinez", "ryan.m@email.com", domain.CreatorStatusArchived},
}

var campaignSpecs = []struct {
	title  string
	brand  string
	budget float64
	status domain.CampaignStatus
}{
	{"Summer Fashion Launch 2024", "Luxe Apparel", 50000, domain.CampaignStatusActive},
	{"Tech Product Launch - SmartWatch Pro", "TechGear Inc", 75000, domain.CampaignStatusActive},
	{"Holiday Beauty Collection", "Glamour Cosmetics", 60000, domain.CampaignStatusPlanning},
	{"Fitness Challenge Series", "PeakForm Nutrition", 35000, domain.CampaignStatusActive},
	{"Spring Travel Stories", "Wanderlust Tours", 40000, domain.CampaignStatusCompleted},
}

var dealStatuses = []domain.DealStatus{
	domain.DealStatusPending,
	domain.DealStatusNegotiating,
	domain.DealStatusSigned,
	domain.DealStatusActive,
	domain.DealStatusCompleted,
	domain.DealStatusCancelled,
}

// SeedSampleData inserts a demo dataset: two staff users, ten creators,
// five campaigns and a spread of deals across recent months.
func SeedSampleData(repo *repository.Repository, cfg *config.Config) error {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.UserPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &domain.User{
		Email:        "admin@wavelaunch.test",
		PasswordHash: string(passwordHash),
		Name:         "Admin User",
		Role:         domain.RoleAdmin,
	}
	if err := repo.CreateUser(admin); err != nil {
		return err
	}

	operator := &domain.User{
		Email:        "operator@wavelaunch.test",
		PasswordHash: string(passwordHash),
		Name:         "Operator User",
		Role:         domain.RoleOperator,
	}
	if err := repo.CreateUser(operator); err != nil {
		return err
	}

	creators := make([]*domain.Creator, 0, len(creatorNames))
	for _, spec := range creatorNames {
		creator := &domain.Creator{
			Name:    spec.name,
			Email:   ptr(spec.email),
			Status:  spec.status,
			OwnerID: admin.ID,
		}
		if err := repo.CreateCreator(creator); err != nil {
			return err
		}
		creators = append(creators, creator)
	}

	campaigns := make([]*domain.Campaign, 0, len(campaignSpecs))
	for i, spec := range campaignSpecs {
		start := time.Now().AddDate(0, -i-1, 0)
		end := start.AddDate(0, 3, 0)
		campaign := &domain.Campaign{
			Title:     spec.title,
			Brand:     spec.brand,
			Budget:    ptr(spec.budget),
			Status:    spec.status,
			StartDate: ptr(start),
			EndDate:   ptr(end),
		}
		if err := repo.CreateCampaign(campaign); err != nil {
			return err
		}
		campaigns = append(campaigns, campaign)
	}

	dealCount := 0
	for _, campaign := range campaigns {
		for i := 0; i < rand.Intn(3)+2; i++ {
			creator := creators[rand.Intn(len(creators))]
			status := dealStatuses[rand.Intn(len(dealStatuses))]
			deal := &domain.Deal{
				CampaignID: campaign.ID,
				CreatorID:  creator.ID,
				Value:      float64(rand.Intn(19)+1) * 500,
				Status:     status,
			}
			if status == domain.DealStatusSigned || status == domain.DealStatusCompleted {
				deal.SignedAt = ptr(time.Now().AddDate(0, 0, -rand.Intn(60)))
			}
			if err := repo.CreateDeal(deal); err != nil {
				return err
			}
			dealCount++
		}
	}

	slog.Info("seeded sample data",
		"users", 2,
		"creators", len(creators),
		"campaigns", len(campaigns),
		"deals", dealCount,
	)

	return nil
}
