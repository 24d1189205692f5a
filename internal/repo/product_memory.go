package repo

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fakturan-app/pricelist-api/internal/models"
)

// InMemoryProductRepository is a non-persistent ProductRepository used by
// tests. It mirrors the Postgres implementation's scoping and filter
// semantics.
type InMemoryProductRepository struct {
	mu       sync.Mutex
	products []models.Product
	nextID   int
}

func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{nextID: 1}
}

func (r *InMemoryProductRepository) Create(p models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	p.ID = r.nextID
	p.CreatedAt = now
	p.UpdatedAt = now
	r.nextID++
	r.products = append(r.products, p)
	return p, nil
}

func (r *InMemoryProductRepository) List(userID int, f ProductFilter) ([]models.Product, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := []models.Product{}
	for _, p := range r.products {
		if p.UserID != userID {
			continue
		}
		if f.Search != "" && !matchesSearch(p, f.Search) {
			continue
		}
		matched = append(matched, p)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := (f.Page - 1) * f.Limit
	if start > total {
		start = total
	}
	end := start + f.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func matchesSearch(p models.Product, search string) bool {
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(p.ArticleNo), s) ||
		strings.Contains(strings.ToLower(p.ProductService), s)
}

func (r *InMemoryProductRepository) GetByID(userID, id int) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.ID == id && p.UserID == userID {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Update(userID, id int, patch ProductPatch) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID != id || p.UserID != userID {
			continue
		}
		if patch.ArticleNo != nil {
			p.ArticleNo = *patch.ArticleNo
		}
		if patch.ProductService != nil {
			p.ProductService = *patch.ProductService
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.InPriceSet {
			p.InPrice = patch.InPrice
		}
		if patch.UnitSet {
			p.Unit = patch.Unit
		}
		if patch.InStockSet {
			p.InStock = patch.InStock
		}
		if patch.DescriptionSet {
			p.Description = patch.Description
		}
		p.UpdatedAt = time.Now().UTC()
		r.products[i] = p
		return p, nil
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Delete(userID, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id && p.UserID == userID {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

// Clear empties the repository between tests.
func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = nil
	r.nextID = 1
}
