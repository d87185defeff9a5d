package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

type ProductPostgresRepo struct {
	db *pgxpool.Pool
}

func NewProductPostgresRepo(db *pgxpool.Pool) ports.ProductRepository {
	return &ProductPostgresRepo{db: db}
}

// List : filtres combinables, construits avec des NamedArgs pour rester lisible.
func (r *ProductPostgresRepo) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	q := `
		SELECT id, name, COALESCE(description, ''), price, COALESCE(image_url, ''), category, is_popular, is_recommended, created_at
		FROM products
		WHERE (@category = '' OR category = @category)
		  AND (NOT @only_popular OR is_popular)
		  AND (NOT @only_recommended OR is_recommended)
		ORDER BY created_at DESC
		LIMIT @limit
	`
	args := pgx.NamedArgs{
		"category":         filter.Category,
		"only_popular":     filter.OnlyPopular,
		"only_recommended": filter.OnlyRecommended,
		"limit":            filter.Limit,
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var out []*domain.Product
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Category, &p.IsPopular, &p.IsRecommended, &p.CreatedAt)
		if err != nil {
			return nil, translateError(err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return out, nil
}
