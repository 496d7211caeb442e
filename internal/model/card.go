package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrCardNotFound карта не найдена или принадлежит другому пользователю
	ErrCardNotFound    = errors.New("scratch card not found")
	// ErrNoFillerMessage каталог (или категория) пуст
	ErrNoFillerMessage = errors.New("no filler message available")
)

// ScratchCard карта со скретч-слоем.
// Исход (Won, Prize) назначается заранее и хранится на стороне сервера,
// клиент только переводит IsScratched из false в true через CommitScratch.
type ScratchCard struct {
	ID          uuid.UUID
	UserID      int
	CardNumber  int // Порядковый номер карты у пользователя
	IsScratched bool
	Won         bool
	Prize       *Prize // nil, если карта без приза
	ScratchedAt *time.Time
}

// Prize описание приза и код для активации
type Prize struct {
	Description string
	Code        string
}

// CommitResult результат стирания карты
type CommitResult struct {
	CardID  uuid.UUID
	Won     bool
	Message string
	Prize   *Prize
}

// FillerMessage утешительное сообщение после проигрыша
type FillerMessage struct {
	Message  string
	Emoji    string
	Category string
}
