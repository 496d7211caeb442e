package card_repo

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestListQuery(t *testing.T) {
	sqlStr, args, err := listQuery(5).ToSql()
	if err != nil {
		t.Fatalf("ToSql() error = %v", err)
	}

	want := "SELECT id, user_id, card_number, is_scratched, won, prize_description, prize_code, scratched_at " +
		"FROM scratch_cards WHERE user_id = $1 ORDER BY card_number"
	if sqlStr != want {
		t.Errorf("sql = %q\nwant  %q", sqlStr, want)
	}
	if len(args) != 1 || args[0] != 5 {
		t.Errorf("args = %v", args)
	}
}

func TestLockQuery(t *testing.T) {
	id := uuid.New()
	sqlStr, args, err := lockQuery(5, id).ToSql()
	if err != nil {
		t.Fatalf("ToSql() error = %v", err)
	}

	if !strings.HasSuffix(sqlStr, "WHERE id = $1 AND user_id = $2 FOR UPDATE") {
		t.Errorf("sql = %q", sqlStr)
	}
	if len(args) != 2 || args[0] != id || args[1] != 5 {
		t.Errorf("args = %v", args)
	}
}

func TestMarkQuery(t *testing.T) {
	id := uuid.New()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	sqlStr, args, err := markQuery(id, at).ToSql()
	if err != nil {
		t.Fatalf("ToSql() error = %v", err)
	}

	want := "UPDATE scratch_cards SET is_scratched = $1, scratched_at = $2 WHERE id = $3"
	if sqlStr != want {
		t.Errorf("sql = %q\nwant  %q", sqlStr, want)
	}
	if len(args) != 3 || args[0] != true || args[1] != at || args[2] != id {
		t.Errorf("args = %v", args)
	}
}

// fakeRow подставляет значения в Scan по порядку
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *uuid.UUID:
			*p = r.values[i].(uuid.UUID)
		case *int:
			*p = r.values[i].(int)
		case *bool:
			*p = r.values[i].(bool)
		case **string:
			if v, ok := r.values[i].(string); ok {
				*p = &v
			}
		case **time.Time:
			if v, ok := r.values[i].(time.Time); ok {
				*p = &v
			}
		}
	}
	return nil
}

func TestScanCard(t *testing.T) {
	id := uuid.New()
	at := time.Now()

	card, err := scanCard(fakeRow{values: []any{id, 5, 2, true, true, "Free coffee", "CAFE-1", at}})
	if err != nil {
		t.Fatalf("scanCard() error = %v", err)
	}
	if card.ID != id || card.UserID != 5 || card.CardNumber != 2 || !card.IsScratched || !card.Won {
		t.Errorf("card = %+v", card)
	}
	if card.Prize == nil || card.Prize.Description != "Free coffee" || card.Prize.Code != "CAFE-1" {
		t.Errorf("prize = %+v", card.Prize)
	}
	if card.ScratchedAt == nil || !card.ScratchedAt.Equal(at) {
		t.Errorf("scratched at = %v", card.ScratchedAt)
	}

	card, err = scanCard(fakeRow{values: []any{id, 5, 3, false, false, nil, nil, nil}})
	if err != nil {
		t.Fatalf("scanCard() error = %v", err)
	}
	if card.Prize != nil || card.ScratchedAt != nil {
		t.Errorf("nullable columns not nil: %+v", card)
	}

	boom := errors.New("boom")
	if _, err := scanCard(fakeRow{err: boom}); !errors.Is(err, boom) {
		t.Errorf("scanCard() error = %v, want %v", err, boom)
	}
}
