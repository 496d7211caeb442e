package repository

import (
	"context"
	"scratchcard/internal/model"
	"time"

	"github.com/google/uuid"
)

type CardRepository interface {
	ListByUser(ctx context.Context, userID int) ([]model.ScratchCard, error)
	// GetForUpdate блокирует строку карты до конца транзакции
	GetForUpdate(ctx context.Context, userID int, id uuid.UUID) (*model.ScratchCard, error)
	MarkScratched(ctx context.Context, id uuid.UUID, at time.Time) error
}

type FillerRepository interface {
	// List возвращает сообщения категории, пустая категория означает все
	List(ctx context.Context, category string) ([]model.FillerMessage, error)
}
