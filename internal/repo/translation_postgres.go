package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fakturan-app/pricelist-api/internal/models"
)

type PostgresTranslationRepository struct {
	db *sql.DB
}

func NewPostgresTranslationRepository(db *sql.DB) *PostgresTranslationRepository {
	return &PostgresTranslationRepository{db: db}
}

func (r *PostgresTranslationRepository) GetAll() ([]models.Translation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, page, key, english, swedish FROM translations ORDER BY page ASC, key ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTranslations(rows)
}

func (r *PostgresTranslationRepository) GetByPage(page string) ([]models.Translation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, page, key, english, swedish FROM translations WHERE page = $1 ORDER BY key ASC`, page)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTranslations(rows)
}

func (r *PostgresTranslationRepository) GetByKey(page, key string) (models.Translation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var t models.Translation
	err := r.db.QueryRowContext(ctx,
		`SELECT id, page, key, english, swedish FROM translations WHERE page = $1 AND key = $2`,
		page, key).Scan(&t.ID, &t.Page, &t.Key, &t.English, &t.Swedish)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Translation{}, ErrTranslationNotFound
	}
	return t, err
}

func collectTranslations(rows *sql.Rows) ([]models.Translation, error) {
	var translations []models.Translation
	for rows.Next() {
		var t models.Translation
		if err := rows.Scan(&t.ID, &t.Page, &t.Key, &t.English, &t.Swedish); err != nil {
			return nil, err
		}
		translations = append(translations, t)
	}
	return translations, rows.Err()
}
