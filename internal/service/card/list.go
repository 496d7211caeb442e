package card

import (
	"context"
	"errors"
	"fmt"
	"scratchcard/internal/middleware"
	"scratchcard/internal/model"
)

// ListCards возвращает карты пользователя из контекста
func (s *serv) ListCards(ctx context.Context) ([]model.ScratchCard, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user id not found in context")
	}

	cards, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return cards, nil
}
