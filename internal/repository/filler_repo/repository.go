package filler_repo

import (
	"context"
	"scratchcard/internal/model"
	"sync"
)

// Repo хранит каталог утешительных сообщений в памяти
type Repo struct {
	mtx        sync.RWMutex
	byCategory map[string][]model.FillerMessage
	all        []model.FillerMessage
}

// NewFillerRepository копирует каталог, чтобы внешние изменения его не трогали
func NewFillerRepository(messages []model.FillerMessage) *Repo {
	r := &Repo{}
	r.Replace(messages)
	return r
}

// Replace подменяет каталог целиком, например после перечитывания конфига
func (r *Repo) Replace(messages []model.FillerMessage) {
	all := make([]model.FillerMessage, len(messages))
	copy(all, messages)

	byCategory := make(map[string][]model.FillerMessage)
	for _, m := range all {
		byCategory[m.Category] = append(byCategory[m.Category], m)
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.all = all
	r.byCategory = byCategory
}

// List возвращает копию сообщений категории, пустая категория означает все
func (r *Repo) List(_ context.Context, category string) ([]model.FillerMessage, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	src := r.all
	if category != "" {
		src = r.byCategory[category]
	}

	out := make([]model.FillerMessage, len(src))
	copy(out, src)
	return out, nil
}
