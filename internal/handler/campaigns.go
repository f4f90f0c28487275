package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/wavelaunch/studio-os/backend/internal/domain"
	"github.com/wavelaunch/studio-os/backend/internal/repository"
	"github.com/wavelaunch/studio-os/backend/internal/utils"
)

type campaignRequest struct {
	Title       string   `json:"title" validate:"required"`
	Brand       string   `json:"brand" validate:"required"`
	Description *string  `json:"description"`
	StartDate   *string  `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string  `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Budget      *float64 `json:"budget" validate:"omitempty,gt=0"`
	Status      string   `json:"status" validate:"omitempty,oneof=PLANNING ACTIVE COMPLETED CANCELLED"`
}

func (req *campaignRequest) apply(campaign *domain.Campaign) error {
	campaign.Title = req.Title
	campaign.Brand = req.Brand
	campaign.Description = req.Description
	campaign.Budget = req.Budget
	if req.Status != "" {
		campaign.Status = domain.CampaignStatus(req.Status)
	}

	campaign.StartDate = nil
	campaign.EndDate = nil
	if req.StartDate != nil {
		t, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return err
		}
		campaign.StartDate = &t
	}
	if req.EndDate != nil {
		t, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return err
		}
		campaign.EndDate = &t
	}

	return utils.ValidateCampaignDates(campaign.StartDate, campaign.EndDate)
}

func (h *Handler) GetAllCampaigns(w http.ResponseWriter, r *http.Request) {
	filter := repository.CampaignFilter{
		Search: r.URL.Query().Get("search"),
		Status: domain.CampaignStatus(r.URL.Query().Get("status")),
		Brand:  r.URL.Query().Get("brand"),
	}

	campaigns, err := h.repository.GetAllCampaigns(filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched campaigns", campaigns)
}

func (h *Handler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req campaignRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	campaign := &domain.Campaign{
		Status: domain.CampaignStatusPlanning,
	}
	if err := req.apply(campaign); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateCampaign(campaign); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.recordActivity(r, "created", "campaign", campaign.ID, fmt.Sprintf("Created campaign: %s (%s)", campaign.Title, campaign.Brand))

	h.successResponse(w, r, "campaign created", campaign)
}

func (h *Handler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	campaign := r.Context().Value(CampaignCtx).(*domain.Campaign)
	h.successResponse(w, r, "fetched campaign", campaign)
}

func (h *Handler) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	campaign := r.Context().Value(CampaignCtx).(*domain.Campaign)

	var req campaignRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := req.apply(campaign); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateCampaign(campaign); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.badRequest(w, r, errors.New("update failed, please retry"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.recordActivity(r, "updated", "campaign", campaign.ID, fmt.Sprintf("Updated campaign: %s", campaign.Title))

	h.successResponse(w, r, "campaign updated", campaign)
}

func (h *Handler) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	campaign := r.Context().Value(CampaignCtx).(*domain.Campaign)

	if err := h.repository.DeleteCampaign(campaign.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.recordActivity(r, "deleted", "campaign", campaign.ID, "Deleted campaign")

	h.successResponse(w, r, "campaign deleted", nil)
}
