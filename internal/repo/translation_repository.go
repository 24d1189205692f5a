package repo

import (
	"errors"

	"github.com/fakturan-app/pricelist-api/internal/models"
)

var ErrTranslationNotFound = errors.New("translation not found")

type TranslationRepository interface {
	GetAll() ([]models.Translation, error)
	GetByPage(page string) ([]models.Translation, error)
	GetByKey(page, key string) (models.Translation, error)
}
