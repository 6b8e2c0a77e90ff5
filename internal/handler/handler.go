package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/maxton76/stall-bokning-sub012/internal/assigner"
	"github.com/maxton76/stall-bokning-sub012/internal/config"
	"github.com/maxton76/stall-bokning-sub012/internal/events"
	"github.com/maxton76/stall-bokning-sub012/internal/repository"
	"github.com/maxton76/stall-bokning-sub012/internal/runlock"
)

type Handler struct {
	validate       *validator.Validate
	config         *config.Config
	repository     *repository.Repository
	translator     ut.Translator
	assigner       *assigner.Assigner
	runLock        *runlock.Lock
	eventPublisher *events.Publisher

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, asn *assigner.Assigner, lock *runlock.Lock, publisher *events.Publisher) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:       validate,
		config:         cfg,
		repository:     repo,
		translator:     trans,
		assigner:       asn,
		runLock:        lock,
		eventPublisher: publisher,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 排班表相关
	h.Mux.Route("/schedules", func(r chi.Router) {
		r.Get("/", h.GetAllSchedules)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.schedule)
			r.Get("/", h.GetSchedule)
			r.Get("/shifts", h.GetScheduleShifts)
			r.Post("/assignment-run", h.RunAssignment)
		})
	})

	// 马厩相关的只读接口
	h.Mux.Route("/stables/{stableID}", func(r chi.Router) {
		r.Get("/members", h.GetStableMembers)
		r.Get("/historical-points", h.GetHistoricalPoints)
	})
}
