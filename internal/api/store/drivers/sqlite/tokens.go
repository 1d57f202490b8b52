package sqlite

import (
	"context"
	"time"

	"github.com/ovenbird/recipebox/internal/api/domain"
)

type tokensRepo struct {
	db execer
}

func (r *tokensRepo) GetTokenByKey(ctx context.Context, key string) (domain.Token, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT key, user_id, created_at FROM tokens WHERE key = ?`, key)
	return scanToken(row)
}

func (r *tokensRepo) GetTokenByUserID(ctx context.Context, userID string) (domain.Token, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT key, user_id, created_at FROM tokens WHERE user_id = ?`, userID)
	return scanToken(row)
}

func (r *tokensRepo) CreateToken(ctx context.Context, t domain.Token) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tokens (key, user_id, created_at) VALUES (?, ?, ?)`,
		t.Key, t.UserID, time.Now().UTC())
	return mapConflict(err)
}

func (r *tokensRepo) DeleteTokenForUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tokens WHERE user_id = ?`, userID)
	return err
}

func (r *tokensRepo) DeleteTokensForInactiveUsers(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM tokens WHERE user_id IN (SELECT id FROM users WHERE is_active = 0)`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanToken(row rowScanner) (domain.Token, error) {
	var t domain.Token
	if err := row.Scan(&t.Key, &t.UserID, &t.CreatedAt); err != nil {
		return domain.Token{}, mapNotFound(err)
	}
	return t, nil
}
