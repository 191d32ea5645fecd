package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/openvenue/eventgate/internal/eventgate/domain"
)

type categoriesRepo struct {
	db dbtx
}

const categoryColumns = `id, name, description, created_at, updated_at`

func (r *categoriesRepo) scanCategory(row interface{ Scan(...any) error }) (domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Category{}, mapNotFound(err)
	}
	return c, nil
}

func (r *categoriesRepo) GetCategoryByID(ctx context.Context, id string) (domain.Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)
	return r.scanCategory(row)
}

func (r *categoriesRepo) ListAll(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		c, err := r.scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *categoriesRepo) CreateCategory(ctx context.Context, c domain.Category) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Description, now, now,
	)
	return mapConstraint(err)
}

func (r *categoriesRepo) UpdateCategory(ctx context.Context, c domain.Category) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE categories SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		c.Name, c.Description, time.Now().UTC(), c.ID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

func (r *categoriesRepo) DeleteCategory(ctx context.Context, categoryID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, categoryID)
	return err
}
