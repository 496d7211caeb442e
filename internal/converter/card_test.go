package converter

import (
	"scratchcard/internal/model"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestToCardResponseHidesOutcome(t *testing.T) {
	c := model.ScratchCard{
		ID: uuid.New(), CardNumber: 3, Won: true,
		Prize: &model.Prize{Description: "coffee", Code: "C"},
	}

	resp := ToCardResponse(c)
	if resp.Won || resp.Prize != nil {
		t.Errorf("outcome leaked for an unscratched card: %+v", resp)
	}

	at := time.Now()
	c.IsScratched = true
	c.ScratchedAt = &at
	resp = ToCardResponse(c)
	if !resp.Won || resp.Prize == nil || resp.Prize.Code != "C" || resp.ScratchedAt == nil {
		t.Errorf("outcome missing for a scratched card: %+v", resp)
	}
}

func TestFromCardResponse(t *testing.T) {
	c := model.ScratchCard{ID: uuid.New(), CardNumber: 2, IsScratched: true, Won: true,
		Prize: &model.Prize{Description: "d", Code: "c"}}

	got, err := FromCardResponse(ToCardResponse(c))
	if err != nil {
		t.Fatalf("FromCardResponse() error = %v", err)
	}
	if got.ID != c.ID || got.CardNumber != 2 || !got.Won || *got.Prize != *c.Prize {
		t.Errorf("got %+v", got)
	}

	bad := ToCardResponse(c)
	bad.ID = "nope"
	if _, err := FromCardResponse(bad); err == nil {
		t.Error("expected an error for a bad id")
	}
}
