package card

import (
	"errors"
	"log"
	"net/http"
	"scratchcard/internal/converter"
	"scratchcard/internal/model"
	"scratchcard/internal/service"
	"scratchcard/pkg/resp"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type HandlerDeps struct {
	Serv   service.CardService
	Filler service.FillerService
}

type Handler struct {
	serv   service.CardService
	filler service.FillerService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, filler: deps.Filler}
}

// List отдаёт карты пользователя
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	cards, err := h.serv.ListCards(r.Context())
	if err != nil {
		log.Println("List cards error:", err)
		http.Error(w, "failed to list cards", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToListResponse(cards))
}

// Scratch фиксирует стирание карты и отдаёт исход
func (h *Handler) Scratch(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid card id", http.StatusBadRequest)
		return
	}

	result, err := h.serv.CommitScratch(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrCardNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Println("Commit scratch error:", err)
		http.Error(w, "failed to commit scratch", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCommitResponse(*result))
}

// Filler отдаёт случайное утешительное сообщение
func (h *Handler) Filler(w http.ResponseWriter, r *http.Request) {
	msg, err := h.filler.FetchFillerMessage(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		if errors.Is(err, model.ErrNoFillerMessage) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Println("Filler message error:", err)
		http.Error(w, "failed to fetch filler message", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToFillerResponse(*msg))
}

// Routes вешает эндпоинты карт на роутер
func (h *Handler) Routes(r chi.Router) {
	r.Get("/cards", h.List)
	r.Post("/cards/{id}/scratch", h.Scratch)
	r.Get("/filler-message", h.Filler)
}
