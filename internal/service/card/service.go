package card

import (
	"scratchcard/internal/repository"
	"scratchcard/internal/service"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

const (
	wonMessage  = "Congratulations! You won"
	lostMessage = "No prize this time. Better luck on the next card!"
)

type serv struct {
	repo      repository.CardRepository
	txManager trm.Manager
	now       func() time.Time
}

// NewCardService сервис карт пользователя
func NewCardService(repo repository.CardRepository, txManager trm.Manager) service.CardService {
	return &serv{
		repo:      repo,
		txManager: txManager,
		now:       time.Now,
	}
}
