package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/roundup-savings/internal/domain"
	"github.com/oksasatya/roundup-savings/internal/domain/entity"
	"github.com/oksasatya/roundup-savings/internal/domain/repository"
)

type LedgerRepository struct {
	pool *pgxpool.Pool
}

func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// PostTransaction writes the ledger row and both running totals in one
// database transaction. The users UPDATE goes first: it takes the row lock
// that serializes concurrent posts for the same user and tells us whether
// the user exists before anything is inserted.
func (r *LedgerRepository) PostTransaction(ctx context.Context, p repository.PostParams) (*entity.Transaction, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, domain.Persistence("begin post", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE users
		SET total_saved = total_saved + $2, updated_at = now()
		WHERE id = $1
	`, p.UserID, p.SavedAmount)
	if err != nil {
		if isBadReference(err) {
			return nil, domain.ErrUnknownUser
		}
		if isNumericOverflow(err) {
			return nil, domain.ErrInvalidAmount
		}
		return nil, domain.Persistence("increment user total", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrUnknownUser
	}

	t := &entity.Transaction{
		UserID:          p.UserID,
		Amount:          p.Amount,
		AppliedRounding: p.AppliedRounding,
		SavedAmount:     p.SavedAmount,
		Description:     p.Description,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO transactions (user_id, amount, applied_rounding, saved_amount, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, p.UserID, p.Amount, p.AppliedRounding, p.SavedAmount, p.Description).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if isNumericOverflow(err) {
			return nil, domain.ErrInvalidAmount
		}
		return nil, domain.Persistence("insert transaction", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO savings (user_id, total)
		VALUES ($1, $2)
		ON CONFLICT (user_id)
		DO UPDATE SET total = savings.total + EXCLUDED.total, updated_at = now()
	`, p.UserID, p.SavedAmount); err != nil {
		return nil, domain.Persistence("upsert saving", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.Persistence("commit post", err)
	}
	return t, nil
}

func (r *LedgerRepository) ListTransactionsByUser(ctx context.Context, userID string, limit int) ([]entity.Transaction, error) {
	if limit <= 0 {
		return []entity.Transaction{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, amount, applied_rounding, saved_amount, description, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		if isBadReference(err) {
			return nil, domain.ErrUnknownUser
		}
		return nil, domain.Persistence("list transactions", err)
	}
	defer rows.Close()

	out := make([]entity.Transaction, 0, limit)
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.AppliedRounding, &t.SavedAmount, &t.Description, &t.CreatedAt); err != nil {
			return nil, domain.Persistence("scan transaction", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("list transactions", err)
	}
	return out, nil
}

func (r *LedgerRepository) ListSavingsByUser(ctx context.Context, userID string) ([]entity.Saving, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, total, created_at, updated_at
		FROM savings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		if isBadReference(err) {
			return nil, domain.ErrUnknownUser
		}
		return nil, domain.Persistence("list savings", err)
	}
	defer rows.Close()

	out := make([]entity.Saving, 0, 1)
	for rows.Next() {
		var s entity.Saving
		if err := rows.Scan(&s.ID, &s.UserID, &s.Total, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, domain.Persistence("scan saving", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("list savings", err)
	}
	return out, nil
}

var _ repository.LedgerRepository = (*LedgerRepository)(nil)
