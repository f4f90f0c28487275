package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/wavelaunch/studio-os/backend/internal/domain"
	"github.com/wavelaunch/studio-os/backend/internal/repository"
)

type dealRequest struct {
	CampaignID int64   `json:"campaignId" validate:"required"`
	CreatorID  int64   `json:"creatorId" validate:"required"`
	Value      float64 `json:"value" validate:"required,gt=0"`
	Status     string  `json:"status" validate:"omitempty,oneof=PENDING NEGOTIATING SIGNED ACTIVE COMPLETED CANCELLED"`
	SignedAt   *string `json:"signedAt" validate:"omitempty,datetime=2006-01-02"`
	Notes      *string `json:"notes"`
}

func (req *dealRequest) apply(deal *domain.Deal) error {
	deal.CampaignID = req.CampaignID
	deal.CreatorID = req.CreatorID
	deal.Value = req.Value
	deal.Notes = req.Notes
	if req.Status != "" {
		deal.Status = domain.DealStatus(req.Status)
	}

	deal.SignedAt = nil
	if req.SignedAt != nil {
		t, err := time.Parse("2006-01-02", *req.SignedAt)
		if err != nil {
			return err
		}
		deal.SignedAt = &t
	}

	return nil
}

func (h *Handler) GetAllDeals(w http.ResponseWriter, r *http.Request) {
	filter := repository.DealFilter{
		Status: domain.DealStatus(r.URL.Query().Get("status")),
	}
	if param := r.URL.Query().Get("campaignId"); param != "" {
		id, err := strconv.ParseInt(param, 10, 64)
		if err != nil {
			h.badRequest(w, r, errors.New("invalid campaign id"))
			return
		}
		filter.CampaignID = id
	}
	if param := r.URL.Query().Get("creatorId"); param != "" {
		id, err := strconv.ParseInt(param, 10, 64)
		if err != nil {
			h.badRequest(w, r, errors.New("invalid creator id"))
			return
		}
		filter.CreatorID = id
	}

	deals, err := h.repository.GetAllDeals(filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched deals", deals)
}

func (h *Handler) CreateDeal(w http.ResponseWriter, r *http.Request) {
	var req dealRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	deal := &domain.Deal{
		Status: domain.DealStatusPending,
	}
	if err := req.apply(deal); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateDeal(deal); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "deals_campaign_id_fkey":
				h.badRequest(w, r, errors.New("campaign does not exist"))
			case "deals_creator_id_fkey":
				h.badRequest(w, r, errors.New("creator does not exist"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// reload to pick up the campaign and creator references for the
	// response and the audit detail
	created, err := h.repository.GetDealByID(deal.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.recordActivity(r, "created", "deal", created.ID,
		fmt.Sprintf("Created deal: %s x %s ($%.2f)", created.Creator.Name, created.Campaign.Title, created.Value))

	h.successResponse(w, r, "deal created", created)
}

func (h *Handler) GetDeal(w http.ResponseWriter, r *http.Request) {
	deal := r.Context().Value(DealCtx).(*domain.Deal)
	h.successResponse(w, r, "fetched deal", deal)
}

func (h *Handler) UpdateDeal(w http.ResponseWriter, r *http.Request) {
	deal := r.Context().Value(DealCtx).(*domain.Deal)

	var req dealRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := req.apply(deal); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateDeal(deal); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "deals_campaign_id_fkey":
				h.badRequest(w, r, errors.New("campaign does not exist"))
			case "deals_creator_id_fkey":
				h.badRequest(w, r, errors.New("creator does not exist"))
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.badRequest(w, r, errors.New("update failed, please retry"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	updated, err := h.repository.GetDealByID(deal.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.recordActivity(r, "updated", "deal", updated.ID,
		fmt.Sprintf("Updated deal: %s x %s", updated.Creator.Name, updated.Campaign.Title))

	h.successResponse(w, r, "deal updated", updated)
}

func (h *Handler) DeleteDeal(w http.ResponseWriter, r *http.Request) {
	deal := r.Context().Value(DealCtx).(*domain.Deal)

	if err := h.repository.DeleteDeal(deal.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.recordActivity(r, "deleted", "deal", deal.ID, "Deleted deal")

	h.successResponse(w, r, "deal deleted", nil)
}
