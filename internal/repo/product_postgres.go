package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fakturan-app/pricelist-api/internal/models"
)

const productColumns = `id, article_no, product_service, in_price, price, unit, in_stock, description, user_id, created_at, updated_at`

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

func (r *PostgresProductRepository) Create(p models.Product) (models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	query := `INSERT INTO products (article_no, product_service, in_price, price, unit, in_stock, description, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING ` + productColumns
	row := r.db.QueryRowContext(ctx, query,
		p.ArticleNo, p.ProductService, p.InPrice, p.Price, p.Unit, p.InStock, p.Description, p.UserID)
	return scanProduct(row)
}

func (r *PostgresProductRepository) List(userID int, f ProductFilter) ([]models.Product, int, error) {
	conditions := " WHERE user_id = $1"
	args := []any{userID}
	argIdx := 2

	if f.Search != "" {
		conditions += fmt.Sprintf(" AND (article_no ILIKE $%d OR product_service ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+f.Search+"%")
		argIdx++
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	// The total is counted over the same filter, not the returned page.
	var total int
	countQuery := "SELECT COUNT(*) FROM products" + conditions
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + productColumns + " FROM products" + conditions +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, f.Limit, (f.Page-1)*f.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *PostgresProductRepository) GetByID(userID, id int) (models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	query := "SELECT " + productColumns + " FROM products WHERE id = $1 AND user_id = $2"
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

// Update applies only the columns present in the patch. An absent row, or a
// row owned by another user, comes back as ErrProductNotFound either way.
func (r *PostgresProductRepository) Update(userID, id int, patch ProductPatch) (models.Product, error) {
	set, args, argIdx := patchAssignments(patch)
	set += fmt.Sprintf(", updated_at = $%d", argIdx)
	args = append(args, time.Now().UTC())
	argIdx++

	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d AND user_id = $%d RETURNING %s",
		set, argIdx, argIdx+1, productColumns)
	args = append(args, id, userID)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) Delete(userID, id int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func patchAssignments(patch ProductPatch) (string, []any, int) {
	set := ""
	args := []any{}
	argIdx := 1

	add := func(column string, value any) {
		if set != "" {
			set += ", "
		}
		set += fmt.Sprintf("%s = $%d", column, argIdx)
		args = append(args, value)
		argIdx++
	}

	if patch.ArticleNo != nil {
		add("article_no", *patch.ArticleNo)
	}
	if patch.ProductService != nil {
		add("product_service", *patch.ProductService)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.InPriceSet {
		add("in_price", patch.InPrice)
	}
	if patch.UnitSet {
		add("unit", patch.Unit)
	}
	if patch.InStockSet {
		add("in_stock", patch.InStock)
	}
	if patch.DescriptionSet {
		add("description", patch.Description)
	}

	return set, args, argIdx
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.ArticleNo, &p.ProductService, &p.InPrice, &p.Price,
		&p.Unit, &p.InStock, &p.Description, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
