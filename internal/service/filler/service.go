package filler

import (
	"context"
	"fmt"
	"math/rand"
	"scratchcard/internal/model"
	"scratchcard/internal/repository"
	"scratchcard/internal/service"
	"sync"
	"time"
)

type serv struct {
	repo repository.FillerRepository

	mu  sync.Mutex
	rng *rand.Rand
}

func NewFillerService(repo repository.FillerRepository) service.FillerService {
	return &serv{
		repo: repo,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// FetchFillerMessage случайное сообщение из категории (или из всего каталога)
func (s *serv) FetchFillerMessage(ctx context.Context, category string) (*model.FillerMessage, error) {
	msgs, err := s.repo.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list filler messages: %w", err)
	}
	if len(msgs) == 0 {
		return nil, model.ErrNoFillerMessage
	}

	s.mu.Lock()
	i := s.rng.Intn(len(msgs))
	s.mu.Unlock()

	msg := msgs[i]
	return &msg, nil
}
