package repo

import (
	"sort"
	"sync"

	"github.com/fakturan-app/pricelist-api/internal/models"
)

// InMemoryTranslationRepository is a non-persistent TranslationRepository
// used by tests.
type InMemoryTranslationRepository struct {
	mu           sync.Mutex
	translations []models.Translation
	nextID       int
}

func NewInMemoryTranslationRepository() *InMemoryTranslationRepository {
	return &InMemoryTranslationRepository{nextID: 1}
}

func (r *InMemoryTranslationRepository) Add(t models.Translation) models.Translation {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = r.nextID
	r.nextID++
	r.translations = append(r.translations, t)
	return t
}

func (r *InMemoryTranslationRepository) GetAll() ([]models.Translation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Translation, len(r.translations))
	copy(out, r.translations)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Page == out[j].Page {
			return out[i].Key < out[j].Key
		}
		return out[i].Page < out[j].Page
	})
	return out, nil
}

func (r *InMemoryTranslationRepository) GetByPage(page string) ([]models.Translation, error) {
	all, _ := r.GetAll()
	out := []models.Translation{}
	for _, t := range all {
		if t.Page == page {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *InMemoryTranslationRepository) GetByKey(page, key string) (models.Translation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.translations {
		if t.Page == page && t.Key == key {
			return t, nil
		}
	}
	return models.Translation{}, ErrTranslationNotFound
}
