package api

import (
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/shaiso/Reflow/internal/mq"
	"github.com/shaiso/Reflow/internal/repo"
)

// Handler — главный обработчик API с зависимостями.
//
// Runs и Publisher опциональны: без репозитория история пересчётов не
// сохраняется, без publisher события не публикуются. Сам пересчёт
// работает в обоих случаях.
type Handler struct {
	runs      *repo.ReflowRunRepo
	publisher *mq.Publisher
	validate  *validator.Validate
	logger    *slog.Logger
}

// Config — конфигурация для создания Handler.
type Config struct {
	Runs      *repo.ReflowRunRepo
	Publisher *mq.Publisher
	Logger    *slog.Logger
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		runs:      cfg.Runs,
		publisher: cfg.Publisher,
		validate:  newValidator(),
		logger:    cfg.Logger,
	}
}
