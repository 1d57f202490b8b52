package sqlite

import (
	"context"
	"time"

	"github.com/ovenbird/recipebox/internal/api/domain"
)

type recipesRepo struct {
	db execer
}

const recipeColumns = `id, user_id, title, time_minutes, price_cents, link, description, created_at, updated_at`

func (r *recipesRepo) GetRecipeByID(ctx context.Context, id string) (domain.Recipe, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id)
	return scanRecipe(row)
}

func (r *recipesRepo) ListRecipesByUser(ctx context.Context, userID string) ([]domain.Recipe, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := []domain.Recipe{}
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, rec)
	}
	return recipes, rows.Err()
}

func (r *recipesRepo) CreateRecipe(ctx context.Context, rec domain.Recipe) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO recipes (id, user_id, title, time_minutes, price_cents, link, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Title, rec.TimeMinutes, rec.Price.Cents(), rec.Link, rec.Description, now, now)
	return mapConflict(err)
}

func (r *recipesRepo) UpdateRecipe(ctx context.Context, rec domain.Recipe) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE recipes SET title = ?, time_minutes = ?, price_cents = ?, link = ?, description = ?, updated_at = ?
		 WHERE id = ?`,
		rec.Title, rec.TimeMinutes, rec.Price.Cents(), rec.Link, rec.Description, time.Now().UTC(), rec.ID)
	return err
}

func (r *recipesRepo) DeleteRecipe(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	return err
}

func scanRecipe(row rowScanner) (domain.Recipe, error) {
	var (
		rec   domain.Recipe
		cents int64
	)
	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Title,
		&rec.TimeMinutes,
		&cents,
		&rec.Link,
		&rec.Description,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return domain.Recipe{}, mapNotFound(err)
	}
	rec.Price = domain.Price(cents)
	return rec, nil
}
