package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/wavelaunch/studio-os/backend/internal/analytics"
	"github.com/wavelaunch/studio-os/backend/internal/config"
	"github.com/wavelaunch/studio-os/backend/internal/domain"
	"github.com/wavelaunch/studio-os/backend/internal/rbac"
	"github.com/wavelaunch/studio-os/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	aggregator  *analytics.Aggregator
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		aggregator:  analytics.NewAggregator(repo),
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// everything below requires a valid session
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.sessionUser)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		// user management is admin only
		r.Route("/users", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin}))
			r.Post("/", h.CreateUser)
			r.Get("/", h.GetAllUsers)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUser)
				r.With(h.preventOperateInitialAdmin).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).Delete("/", h.DeleteUser)
				r.Patch("/password", h.UpdateUserPassword)
			})
		})

		// creators are visible to every signed-in user, including the
		// not-yet-privileged CREATOR role
		r.Route("/creators", func(r chi.Router) {
			r.Get("/", h.GetAllCreators)
			r.Post("/", h.CreateCreator)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.creatorInfo)
				r.Get("/", h.GetCreator)
				r.Put("/", h.UpdateCreator)
				r.Delete("/", h.DeleteCreator)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(h.RequiredRole(rbac.ManageRoles))

			r.Route("/campaigns", func(r chi.Router) {
				r.Get("/", h.GetAllCampaigns)
				r.Post("/", h.CreateCampaign)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(h.campaignInfo)
					r.Get("/", h.GetCampaign)
					r.Put("/", h.UpdateCampaign)
					r.Delete("/", h.DeleteCampaign)
				})
			})

			r.Route("/deals", func(r chi.Router) {
				r.Get("/", h.GetAllDeals)
				r.Post("/", h.CreateDeal)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(h.dealInfo)
					r.Get("/", h.GetDeal)
					r.Put("/", h.UpdateDeal)
					r.Delete("/", h.DeleteDeal)
				})
			})

			r.Get("/analytics", h.GetAnalytics)
			r.Get("/activities", h.GetRecentActivities)
		})
	})
}
