package card

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	dto "scratchcard/internal/api/dto/card"
	"scratchcard/internal/model"
	"scratchcard/pkg/req"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type fakeCards struct {
	cards     []model.ScratchCard
	result    *model.CommitResult
	commitErr error
	committed []uuid.UUID
}

func (f *fakeCards) ListCards(context.Context) ([]model.ScratchCard, error) {
	return f.cards, nil
}

func (f *fakeCards) CommitScratch(_ context.Context, id uuid.UUID) (*model.CommitResult, error) {
	f.committed = append(f.committed, id)
	if f.commitErr != nil {
		return nil, f.commitErr
	}
	return f.result, nil
}

type fakeFiller struct {
	msg      *model.FillerMessage
	err      error
	category string
}

func (f *fakeFiller) FetchFillerMessage(_ context.Context, category string) (*model.FillerMessage, error) {
	f.category = category
	return f.msg, f.err
}

func newRouter(cards *fakeCards, filler *fakeFiller) http.Handler {
	r := chi.NewRouter()
	NewHandler(HandlerDeps{Serv: cards, Filler: filler}).Routes(r)
	return r
}

func do(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestList(t *testing.T) {
	cards := &fakeCards{cards: []model.ScratchCard{
		{ID: uuid.New(), CardNumber: 1},
		{ID: uuid.New(), CardNumber: 2, IsScratched: true, Won: true},
	}}
	w := do(t, newRouter(cards, &fakeFiller{}), http.MethodGet, "/cards")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body, err := req.Decode[dto.ListResponse](w.Body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Cards) != 2 || body.Cards[0].CardNumber != 1 || !body.Cards[1].Won {
		t.Errorf("body = %+v", body)
	}
}

func TestScratch(t *testing.T) {
	id := uuid.New()
	cards := &fakeCards{result: &model.CommitResult{CardID: id, Won: true, Message: "yay",
		Prize: &model.Prize{Description: "d", Code: "c"}}}
	w := do(t, newRouter(cards, &fakeFiller{}), http.MethodPost, "/cards/"+id.String()+"/scratch")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	body, _ := req.Decode[dto.CommitResponse](w.Body)
	if body.CardID != id.String() || !body.Won || body.Prize == nil || body.Prize.Code != "c" {
		t.Errorf("body = %+v", body)
	}
	if len(cards.committed) != 1 || cards.committed[0] != id {
		t.Errorf("committed = %v", cards.committed)
	}
}

func TestScratchErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{name: "bad id", target: "/cards/not-a-uuid/scratch", status: http.StatusBadRequest},
		{name: "not found", target: "/cards/" + uuid.NewString() + "/scratch", err: model.ErrCardNotFound, status: http.StatusNotFound},
		{name: "internal", target: "/cards/" + uuid.NewString() + "/scratch", err: errors.New("db down"), status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, newRouter(&fakeCards{commitErr: tt.err}, &fakeFiller{}), http.MethodPost, tt.target)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
		})
	}
}

func TestFiller(t *testing.T) {
	filler := &fakeFiller{msg: &model.FillerMessage{Message: "m", Emoji: "e", Category: "luck"}}
	w := do(t, newRouter(&fakeCards{}, filler), http.MethodGet, "/filler-message?category=luck")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if filler.category != "luck" {
		t.Errorf("category = %q", filler.category)
	}
	body, _ := req.Decode[dto.FillerResponse](w.Body)
	if body.Message != "m" || body.Emoji != "e" {
		t.Errorf("body = %+v", body)
	}

	empty := &fakeFiller{err: model.ErrNoFillerMessage}
	if w := do(t, newRouter(&fakeCards{}, empty), http.MethodGet, "/filler-message"); w.Code != http.StatusNotFound {
		t.Errorf("status for an empty catalogue = %d", w.Code)
	}
}
