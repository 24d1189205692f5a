package repo

import (
	"errors"

	"github.com/fakturan-app/pricelist-api/internal/models"
)

// ErrProductNotFound covers both true absence and rows owned by someone
// else; callers surface the two identically.
var ErrProductNotFound = errors.New("product not found")

// ProductFilter narrows a listing. Search matches a case-insensitive
// substring of article_no or product_service. Page and Limit are 1-based
// and always set by the caller.
type ProductFilter struct {
	Search string
	Page   int
	Limit  int
}

// ProductPatch carries a sparse update. Nil pointers on required columns
// mean "leave untouched". Nullable columns pair a pointer with a Set flag
// so an explicit null (clear the column) is distinguishable from absence.
type ProductPatch struct {
	ArticleNo      *string
	ProductService *string
	Price          *float64

	InPrice        *float64
	InPriceSet     bool
	Unit           *string
	UnitSet        bool
	InStock        *int
	InStockSet     bool
	Description    *string
	DescriptionSet bool
}

// Empty reports whether the patch would change nothing.
func (p ProductPatch) Empty() bool {
	return p.ArticleNo == nil && p.ProductService == nil && p.Price == nil &&
		!p.InPriceSet && !p.UnitSet && !p.InStockSet && !p.DescriptionSet
}

// ProductRepository defines product data operations. Every method is scoped
// by the owning user's id; that scoping is the sole authorization mechanism.
type ProductRepository interface {
	Create(p models.Product) (models.Product, error)
	List(userID int, f ProductFilter) ([]models.Product, int, error)
	GetByID(userID, id int) (models.Product, error)
	Update(userID, id int, patch ProductPatch) (models.Product, error)
	Delete(userID, id int) error
}
