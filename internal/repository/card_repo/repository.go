package card_repo

import (
	"context"
	"errors"
	"scratchcard/internal/model"
	"scratchcard/internal/repository"
	"time"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	table          = "scratch_cards"
	colID          = "id"
	colUserID      = "user_id"
	colCardNumber  = "card_number"
	colIsScratched = "is_scratched"
	colWon         = "won"
	colPrizeDesc   = "prize_description"
	colPrizeCode   = "prize_code"
	colScratchedAt = "scratched_at"
)

var columns = []string{
	colID, colUserID, colCardNumber, colIsScratched, colWon,
	colPrizeDesc, colPrizeCode, colScratchedAt,
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type repo struct {
	db     trmpgx.Tr
	getter *trmpgx.CtxGetter
}

// NewCardRepository запросы идут в транзакцию из контекста, если она открыта
// через trm.Manager, иначе напрямую в db
func NewCardRepository(db trmpgx.Tr) repository.CardRepository {
	return &repo{
		db:     db,
		getter: trmpgx.DefaultCtxGetter,
	}
}

func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.db)
}

// ListByUser - карты пользователя по порядку номеров
func (r *repo) ListByUser(ctx context.Context, userID int) ([]model.ScratchCard, error) {
	sqlStr, args, err := listQuery(userID).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := make([]model.ScratchCard, 0)
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cards, nil
}

// GetForUpdate - карта пользователя под блокировкой строки.
// Чужая или несуществующая карта - model.ErrCardNotFound
func (r *repo) GetForUpdate(ctx context.Context, userID int, id uuid.UUID) (*model.ScratchCard, error) {
	sqlStr, args, err := lockQuery(userID, id).ToSql()
	if err != nil {
		return nil, err
	}

	card, err := scanCard(r.conn(ctx).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCardNotFound
		}
		return nil, err
	}

	return card, nil
}

// MarkScratched - переводит карту в стёртое состояние
func (r *repo) MarkScratched(ctx context.Context, id uuid.UUID, at time.Time) error {
	sqlStr, args, err := markQuery(id, at).ToSql()
	if err != nil {
		return err
	}

	res, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return model.ErrCardNotFound
	}
	return nil
}

func listQuery(userID int) sq.SelectBuilder {
	return psql.Select(columns...).
		From(table).
		Where(sq.Eq{colUserID: userID}).
		OrderBy(colCardNumber)
}

func lockQuery(userID int, id uuid.UUID) sq.SelectBuilder {
	return psql.Select(columns...).
		From(table).
		Where(sq.Eq{colID: id}).
		Where(sq.Eq{colUserID: userID}).
		Suffix("FOR UPDATE")
}

func markQuery(id uuid.UUID, at time.Time) sq.UpdateBuilder {
	return psql.Update(table).
		Set(colIsScratched, true).
		Set(colScratchedAt, at).
		Where(sq.Eq{colID: id})
}

func scanCard(row pgx.Row) (*model.ScratchCard, error) {
	var (
		card        model.ScratchCard
		prizeDesc   *string
		prizeCode   *string
		scratchedAt *time.Time
	)

	err := row.Scan(
		&card.ID, &card.UserID, &card.CardNumber, &card.IsScratched, &card.Won,
		&prizeDesc, &prizeCode, &scratchedAt,
	)
	if err != nil {
		return nil, err
	}

	if prizeDesc != nil {
		card.Prize = &model.Prize{Description: *prizeDesc}
		if prizeCode != nil {
			card.Prize.Code = *prizeCode
		}
	}
	card.ScratchedAt = scratchedAt
	return &card, nil
}
