package spin_log_repo

import (
	"context"
	"fmt"
	"wheel_backend/internal/model"
	"wheel_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	spinsTable   = "wheel_spins"
	colID        = "id"
	colSessionID = "session_id"
	colOutcome   = "outcome"
	colRoll      = "roll"
	colCreatedAt = "created_at"

	totalsTable = "wheel_outcome_totals"
	colSpins    = "spins"
)

const schema = `
CREATE TABLE IF NOT EXISTS wheel_spins (
	id          UUID PRIMARY KEY,
	session_id  TEXT NOT NULL,
	outcome     TEXT NOT NULL,
	roll        DOUBLE PRECISION NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS wheel_spins_session_idx ON wheel_spins (session_id);
CREATE TABLE IF NOT EXISTS wheel_outcome_totals (
	outcome TEXT PRIMARY KEY,
	spins   BIGINT NOT NULL
);`

type repo struct {
	dbc       *pgxpool.Pool
	txManager trm.Manager
	getter    *trmpgx.CtxGetter
}

func NewSpinLogRepository(dbc *pgxpool.Pool, txManager trm.Manager) repository.SpinLogRepository {
	return &repo{
		dbc:       dbc,
		txManager: txManager,
		getter:    trmpgx.DefaultCtxGetter,
	}
}

// Migrate Создает таблицы журнала, если их нет
func Migrate(ctx context.Context, dbc *pgxpool.Pool) error {
	_, err := dbc.Exec(ctx, schema)
	if err != nil {
		return fmt.Errorf("migrate spin log: %w", err)
	}
	return nil
}

// SaveSpin - запись вращения и инкремент счетчика исхода в одной транзакции
func (r *repo) SaveSpin(ctx context.Context, rec model.SpinRecord) error {
	return r.txManager.Do(ctx, func(txCtx context.Context) error {
		tr := r.getter.DefaultTrOrDB(txCtx, r.dbc)

		// Формируем запрос
		insert := sq.Insert(spinsTable).
			Columns(colID, colSessionID, colOutcome, colRoll, colCreatedAt).
			Values(rec.ID, rec.SessionID, string(rec.Outcome), rec.Roll, rec.CreatedAt).
			PlaceholderFormat(sq.Dollar)

		sqlStr, args, err := insert.ToSql()
		if err != nil {
			return err
		}

		if _, err = tr.Exec(txCtx, sqlStr, args...); err != nil {
			return fmt.Errorf("insert spin: %w", err)
		}

		// Если строки исхода еще нет - создаем, иначе увеличиваем счетчик
		upsert := sq.Insert(totalsTable).
			Columns(colOutcome, colSpins).
			Values(string(rec.Outcome), 1).
			Suffix("ON CONFLICT (" + colOutcome + ") DO UPDATE SET " + colSpins + " = " + totalsTable + "." + colSpins + " + 1").
			PlaceholderFormat(sq.Dollar)

		sqlStr, args, err = upsert.ToSql()
		if err != nil {
			return err
		}

		if _, err = tr.Exec(txCtx, sqlStr, args...); err != nil {
			return fmt.Errorf("upsert outcome total: %w", err)
		}

		return nil
	})
}

// Totals - счетчики исходов за все время
func (r *repo) Totals(ctx context.Context) (map[model.Outcome]int, error) {
	// Формируем запрос
	query := sq.Select(colOutcome, colSpins).
		From(totalsTable).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[model.Outcome]int, len(model.Outcomes))
	for rows.Next() {
		var outcome string
		var spins int64
		if err := rows.Scan(&outcome, &spins); err != nil {
			return nil, err
		}
		totals[model.Outcome(outcome)] = int(spins)
	}

	return totals, rows.Err()
}
