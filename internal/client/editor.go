package client

import (
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/fakturan-app/pricelist-api/internal/debounce"
	"github.com/fakturan-app/pricelist-api/internal/models"
)

// DefaultWriteDelay is the quiet period before an edited cell is written
// back.
const DefaultWriteDelay = 800 * time.Millisecond

// Editable cell names, matching the wire names of the product columns.
const (
	FieldArticleNo      = "article_no"
	FieldProductService = "product_service"
	FieldInPrice        = "in_price"
	FieldPrice          = "price"
	FieldUnit           = "unit"
	FieldInStock        = "in_stock"
	FieldDescription    = "description"
)

// Editor keeps the in-memory price list the user is editing. Every edit is
// applied locally right away and written back after a per-cell quiet
// period, so a burst of keystrokes in one cell becomes a single PUT. A
// failed write keeps the optimistic local value; the error only surfaces
// through the callback.
type Editor struct {
	client *Client
	sched  *debounce.Scheduler

	mu   sync.Mutex
	rows map[int]*models.Product

	// OnError is called from flush goroutines when a write-back fails.
	onError func(rowID int, field string, err error)
}

func NewEditor(c *Client, delay time.Duration, onError func(rowID int, field string, err error)) *Editor {
	if onError == nil {
		onError = func(int, string, error) {}
	}
	if delay <= 0 {
		delay = DefaultWriteDelay
	}
	return &Editor{
		client:  c,
		sched:   debounce.NewScheduler(delay),
		rows:    make(map[int]*models.Product),
		onError: onError,
	}
}

// Load replaces the working set, e.g. after fetching a page.
func (e *Editor) Load(products []models.Product) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.rows = make(map[int]*models.Product, len(products))
	for i := range products {
		p := products[i]
		e.rows[p.ID] = &p
	}
}

// Row returns a copy of one row.
func (e *Editor) Row(id int) (models.Product, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.rows[id]
	if !ok {
		return models.Product{}, false
	}
	return *p, true
}

// Rows returns copies of all rows, newest first.
func (e *Editor) Rows() []models.Product {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]models.Product, 0, len(e.rows))
	for _, p := range e.rows {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// SetField applies one cell edit: the row mutates immediately, and the
// write-back is (re)scheduled under the (row, field) key. An empty value on
// a numeric or nullable column clears it.
func (e *Editor) SetField(rowID int, field, value string) bool {
	e.mu.Lock()
	row, ok := e.rows[rowID]
	if !ok {
		e.mu.Unlock()
		return false
	}

	patch, ok := applyField(row, field, value)
	e.mu.Unlock()
	if !ok {
		return false
	}

	e.sched.Schedule(debounce.Key{RowID: rowID, Field: field}, func() {
		if _, err := e.client.UpdateProduct(rowID, patch); err != nil {
			// Deliberately no rollback of the local value.
			e.onError(rowID, field, err)
		}
	})
	return true
}

// Close cancels all pending write-backs.
func (e *Editor) Close() {
	e.sched.Stop()
}

func applyField(row *models.Product, field, value string) (FieldPatch, bool) {
	switch field {
	case FieldArticleNo:
		row.ArticleNo = value
		return FieldPatch{"articleNo": value}, true
	case FieldProductService:
		row.ProductService = value
		return FieldPatch{"productService": value}, true
	case FieldPrice:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, false
		}
		row.Price = v
		return FieldPatch{"price": v}, true
	case FieldInPrice:
		if value == "" {
			row.InPrice = nil
			return FieldPatch{"inPrice": nil}, true
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, false
		}
		row.InPrice = &v
		return FieldPatch{"inPrice": v}, true
	case FieldInStock:
		if value == "" {
			row.InStock = nil
			return FieldPatch{"inStock": nil}, true
		}
		v, err := strconv.Atoi(value)
		if err != nil {
			return nil, false
		}
		row.InStock = &v
		return FieldPatch{"inStock": v}, true
	case FieldUnit:
		if value == "" {
			row.Unit = nil
			return FieldPatch{"unit": nil}, true
		}
		row.Unit = &value
		return FieldPatch{"unit": value}, true
	case FieldDescription:
		if value == "" {
			row.Description = nil
			return FieldPatch{"description": nil}, true
		}
		row.Description = &value
		return FieldPatch{"description": value}, true
	}
	return nil, false
}
