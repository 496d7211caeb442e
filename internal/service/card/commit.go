package card

import (
	"context"
	"errors"
	"fmt"
	"scratchcard/internal/middleware"
	"scratchcard/internal/model"

	"github.com/google/uuid"
)

// CommitScratch помечает карту стёртой и возвращает заранее назначенный исход.
// Повторный вызов для уже стёртой карты ничего не меняет и отдаёт тот же исход.
func (s *serv) CommitScratch(ctx context.Context, id uuid.UUID) (*model.CommitResult, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user id not found in context")
	}

	var res *model.CommitResult

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		card, err := s.repo.GetForUpdate(txCtx, userID, id)
		if err != nil {
			return err
		}

		if !card.IsScratched {
			now := s.now()
			if err := s.repo.MarkScratched(txCtx, card.ID, now); err != nil {
				return fmt.Errorf("mark scratched: %w", err)
			}
			card.IsScratched = true
			card.ScratchedAt = &now
		}

		res = outcome(card)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func outcome(card *model.ScratchCard) *model.CommitResult {
	res := &model.CommitResult{
		CardID: card.ID,
		Won:    card.Won,
	}
	if !card.Won {
		res.Message = lostMessage
		return res
	}

	res.Message = wonMessage
	if card.Prize != nil {
		prize := *card.Prize
		res.Prize = &prize
		res.Message = wonMessage + " " + prize.Description + "!"
	}
	return res
}
