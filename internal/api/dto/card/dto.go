package card

import "time"

// Card карта в списке. Исход (won, prize) отдаётся только для стёртых карт
type Card struct {
	ID          string     `json:"id"`
	CardNumber  int        `json:"card_number"`
	IsScratched bool       `json:"is_scratched"`
	Won         bool       `json:"won,omitempty"`
	Prize       *Prize     `json:"prize,omitempty"`
	ScratchedAt *time.Time `json:"scratched_at,omitempty"`
}

type Prize struct {
	Description string `json:"description"`
	Code        string `json:"code"`
}

type ListResponse struct {
	Cards []Card `json:"cards"`
}

type CommitResponse struct {
	CardID  string `json:"card_id"`
	Won     bool   `json:"won"`
	Message string `json:"message"`
	Prize   *Prize `json:"prize,omitempty"`
}

type FillerResponse struct {
	Message  string `json:"message"`
	Emoji    string `json:"emoji"`
	Category string `json:"category"`
}
