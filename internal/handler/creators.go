package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/wavelaunch/studio-os/backend/internal/domain"
	"github.com/wavelaunch/studio-os/backend/internal/repository"
)

func repositoryCreatorFilter(r *http.Request) repository.CreatorFilter {
	return repository.CreatorFilter{
		Search: r.URL.Query().Get("search"),
		Status: domain.CreatorStatus(r.URL.Query().Get("status")),
	}
}

type creatorRequest struct {
	Name            string  `json:"name" validate:"required"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Phone           *string `json:"phone"`
	InstagramHandle *string `json:"instagramHandle"`
	TiktokHandle    *string `json:"tiktokHandle"`
	YoutubeHandle   *string `json:"youtubeHandle"`
	TwitterHandle   *string `json:"twitterHandle"`
	Status          string  `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE PENDING ARCHIVED"`
	Notes           *string `json:"notes"`
}

func (req *creatorRequest) apply(creator *domain.Creator) {
	creator.Name = req.Name
	creator.Email = emptyToNil(req.Email)
	creator.Phone = req.Phone
	creator.InstagramHandle = req.InstagramHandle
	creator.TiktokHandle = req.TiktokHandle
	creator.YoutubeHandle = req.YoutubeHandle
	creator.TwitterHandle = req.TwitterHandle
	creator.Notes = req.Notes
	if req.Status != "" {
		creator.Status = domain.CreatorStatus(req.Status)
	}
}

func emptyToNil(s *string) *string {
	if s != nil && *s == "" {
		return nil
	}
	return s
}

func (h *Handler) GetAllCreators(w http.ResponseWriter, r *http.Request) {
	creators, err := h.repository.GetAllCreators(repositoryCreatorFilter(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched creators", creators)
}

func (h *Handler) CreateCreator(w http.ResponseWriter, r *http.Request) {
	var req creatorRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ownerID, err := h.sessionUserID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	creator := &domain.Creator{
		Status:  domain.CreatorStatusActive,
		OwnerID: ownerID,
	}
	req.apply(creator)

	if err := h.repository.CreateCreator(creator); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "creators_email_key":
				h.badRequest(w, r, errors.New("a creator with this email already exists"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.recordActivity(r, "created", "creator", creator.ID, fmt.Sprintf("Created creator: %s", creator.Name))

	h.successResponse(w, r, "creator created", creator)
}

func (h *Handler) GetCreator(w http.ResponseWriter, r *http.Request) {
	creator := r.Context().Value(CreatorCtx).(*domain.Creator)
	h.successResponse(w, r, "fetched creator", creator)
}

func (h *Handler) UpdateCreator(w http.ResponseWriter, r *http.Request) {
	creator := r.Context().Value(CreatorCtx).(*domain.Creator)

	var req creatorRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	req.apply(creator)

	if err := h.repository.UpdateCreator(creator); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "creators_email_key":
				h.badRequest(w, r, errors.New("a creator with this email already exists"))
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

	h.recordActivity(r, "updated", "creator", creator.ID, fmt.Sprintf("Updated creator: %s", creator.Name))

	h.successResponse(w, r, "creator updated", creator)
}

func (h *Handler) DeleteCreator(w http.ResponseWriter, r *http.Request) {
	creator := r.Context().Value(CreatorCtx).(*domain.Creator)

	if err := h.repository.DeleteCreator(creator.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.recordActivity(r, "deleted", "creator", creator.ID, "Deleted creator")

	h.successResponse(w, r, "creator deleted", nil)
}
