package service

import (
	"context"
	"scratchcard/internal/model"

	"github.com/google/uuid"
)

type CardService interface {
	ListCards(ctx context.Context) ([]model.ScratchCard, error)
	CommitScratch(ctx context.Context, id uuid.UUID) (*model.CommitResult, error)
}

type FillerService interface {
	FetchFillerMessage(ctx context.Context, category string) (*model.FillerMessage, error)
}
