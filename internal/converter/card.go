package converter

import (
	"fmt"
	"scratchcard/internal/api/dto/card"
	"scratchcard/internal/model"

	"github.com/google/uuid"
)

// ToCardResponse прячет исход нестёртой карты
func ToCardResponse(c model.ScratchCard) card.Card {
	resp := card.Card{
		ID:          c.ID.String(),
		CardNumber:  c.CardNumber,
		IsScratched: c.IsScratched,
	}
	if c.IsScratched {
		resp.Won = c.Won
		resp.Prize = toPrize(c.Prize)
		resp.ScratchedAt = c.ScratchedAt
	}
	return resp
}

func ToListResponse(cards []model.ScratchCard) card.ListResponse {
	resp := card.ListResponse{Cards: make([]card.Card, len(cards))}
	for i, c := range cards {
		resp.Cards[i] = ToCardResponse(c)
	}
	return resp
}

func ToCommitResponse(res model.CommitResult) card.CommitResponse {
	return card.CommitResponse{
		CardID:  res.CardID.String(),
		Won:     res.Won,
		Message: res.Message,
		Prize:   toPrize(res.Prize),
	}
}

func ToFillerResponse(msg model.FillerMessage) card.FillerResponse {
	return card.FillerResponse{
		Message:  msg.Message,
		Emoji:    msg.Emoji,
		Category: msg.Category,
	}
}

// FromCardResponse обратное преобразование для клиента
func FromCardResponse(c card.Card) (model.ScratchCard, error) {
	id, err := uuid.Parse(c.ID)
	if err != nil {
		return model.ScratchCard{}, fmt.Errorf("card id %q: %w", c.ID, err)
	}
	return model.ScratchCard{
		ID:          id,
		CardNumber:  c.CardNumber,
		IsScratched: c.IsScratched,
		Won:         c.Won,
		Prize:       fromPrize(c.Prize),
		ScratchedAt: c.ScratchedAt,
	}, nil
}

func FromListResponse(resp card.ListResponse) ([]model.ScratchCard, error) {
	cards := make([]model.ScratchCard, 0, len(resp.Cards))
	for _, c := range resp.Cards {
		mc, err := FromCardResponse(c)
		if err != nil {
			return nil, err
		}
		cards = append(cards, mc)
	}
	return cards, nil
}

func FromCommitResponse(resp card.CommitResponse) (*model.CommitResult, error) {
	id, err := uuid.Parse(resp.CardID)
	if err != nil {
		return nil, fmt.Errorf("card id %q: %w", resp.CardID, err)
	}
	return &model.CommitResult{
		CardID:  id,
		Won:     resp.Won,
		Message: resp.Message,
		Prize:   fromPrize(resp.Prize),
	}, nil
}

func FromFillerResponse(resp card.FillerResponse) *model.FillerMessage {
	return &model.FillerMessage{
		Message:  resp.Message,
		Emoji:    resp.Emoji,
		Category: resp.Category,
	}
}

func toPrize(p *model.Prize) *card.Prize {
	if p == nil {
		return nil
	}
	return &card.Prize{Description: p.Description, Code: p.Code}
}

func fromPrize(p *card.Prize) *model.Prize {
	if p == nil {
		return nil
	}
	return &model.Prize{Description: p.Description, Code: p.Code}
}
