package http_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/fakturan-app/pricelist-api/internal/http/handlers"
	"github.com/fakturan-app/pricelist-api/internal/models"
)

func decodeList(t *testing.T, env envelope) handlers.ProductListData {
	t.Helper()
	var data handlers.ProductListData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("error decoding product list: %v", err)
	}
	return data
}

func decodeProduct(t *testing.T, env envelope) models.Product {
	t.Helper()
	var data struct {
		Product models.Product `json:"product"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("error decoding product: %v", err)
	}
	return data.Product
}

func TestCreateProduct(t *testing.T) {
	e := newTestEnv()
	user := e.register(t, "anna@example.com", "hunter22")

	req := handlers.CreateProductRequest{
		ArticleNo:      "A-100",
		ProductService: "Consulting hour",
		Price:          floatPtr(1200),
		Unit:           strPtr("hour"),
		InStock:        intPtr(10),
	}
	created := e.createProduct(t, user.Token, req)

	if created.ID == 0 {
		t.Error("expected a product id")
	}
	if created.ArticleNo != "A-100" || created.ProductService != "Consulting hour" {
		t.Errorf("unexpected product: %+v", created)
	}
	if created.Price != 1200 {
		t.Errorf("expected price 1200, got %v", created.Price)
	}
	if created.InPrice != nil || created.Description != nil {
		t.Error("absent optional fields should stay null")
	}
	if created.Unit == nil || *created.Unit != "hour" {
		t.Errorf("expected unit 'hour', got %v", created.Unit)
	}
}

func TestCreateProductValidation(t *testing.T) {
	e := newTestEnv()
	user := e.register(t, "anna@example.com", "hunter22")

	tests := []struct {
		name   string
		req    handlers.CreateProductRequest
		fields []string
	}{
		{
			name:   "missing everything",
			req:    handlers.CreateProductRequest{},
			fields: []string{"articleNo", "productService", "price"},
		},
		{
			name: "negative price",
			req: handlers.CreateProductRequest{
				ArticleNo: "A-1", ProductService: "Thing", Price: floatPtr(-5),
			},
			fields: []string{"price"},
		},
		{
			name: "negative stock",
			req: handlers.CreateProductRequest{
				ArticleNo: "A-1", ProductService: "Thing", Price: floatPtr(5), InStock: intPtr(-1),
			},
			fields: []string{"inStock"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := e.request(t, http.MethodPost, "/api/products", user.Token, tt.req)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			for _, field := range tt.fields {
				found := false
				for _, fe := range env.Errors {
					if fe.Field == field {
						found = true
					}
				}
				if !found {
					t.Errorf("expected error for field %q, got %v", field, env.Errors)
				}
			}
		})
	}
}

func TestDuplicateArticleNoAllowed(t *testing.T) {
	e := newTestEnv()
	user := e.register(t, "anna@example.com", "hunter22")

	e.createProduct(t, user.Token, productRequest("A-1", "First", 10))
	e.createProduct(t, user.Token, productRequest("A-1", "Second", 20))

	_, env := e.request(t, http.MethodGet, "/api/products", user.Token, nil)
	if got := decodeList(t, env).Pagination.Total; got != 2 {
		t.Errorf("expected both rows with the same article number, got total %d", got)
	}
}

// A token minted for one user must never expose another user's rows; a
// foreign id looks exactly like a missing one.
func TestOwnershipScoping(t *testing.T) {
	e := newTestEnv()
	alice := e.register(t, "alice@example.com", "hunter22")
	bob := e.register(t, "bob@example.com", "hunter22")

	secret := e.createProduct(t, alice.Token, productRequest("A-1", "Alice only", 100))

	w, env := e.request(t, http.MethodGet, productPath(secret.ID), bob.Token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 reading a foreign product, got %d", w.Code)
	}
	if env.Message != "Product not found" {
		t.Errorf("unexpected message %q", env.Message)
	}

	w, _ = e.request(t, http.MethodPut, productPath(secret.ID), bob.Token,
		map[string]any{"price": 1})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 patching a foreign product, got %d", w.Code)
	}

	w, _ = e.request(t, http.MethodDelete, productPath(secret.ID), bob.Token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 deleting a foreign product, got %d", w.Code)
	}

	// Bob's listing must not include it either.
	_, env = e.request(t, http.MethodGet, "/api/products", bob.Token, nil)
	if got := decodeList(t, env).Pagination.Total; got != 0 {
		t.Errorf("expected bob to see no products, got total %d", got)
	}

	// And it is still intact for its owner.
	w, _ = e.request(t, http.MethodGet, productPath(secret.ID), alice.Token, nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected owner to still read the product, got %d", w.Code)
	}
}

func TestPagination(t *testing.T) {
	e := newTestEnv()
	user := e.register(t, "anna@example.com", "hunter22")

	for i := 1; i <= 25; i++ {
		e.createProduct(t, user.Token, productRequest(fmt.Sprintf("A-%02d", i), "Bulk item", float64(i)))
	}

	w, env := e.request(t, http.MethodGet, "/api/products?limit=20&page=2", user.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	data := decodeList(t, env)
	if len(data.Products) != 5 {
		t.Errorf("expected 5 products on page 2, got %d", len(data.Products))
	}
	if data.Pagination.Total != 25 {
		t.Errorf("expected total 25, got %d", data.Pagination.Total)
	}
	if data.Pagination.TotalPages != 2 {
		t.Errorf("expected totalPages 2, got %d", data.Pagination.TotalPages)
	}
	if data.Pagination.Page != 2 || data.Pagination.Limit != 20 {
		t.Errorf("unexpected pagination echo: %+v", data.Pagination)
	}
}

func TestListQueryValidation(t *testing.T) {
	e := newTestEnv()
	user := e.register(t, "anna@example.com", "hunter22")

	for _, path := range []string{
		"/api/products?page=zero",
		"/api/products?page=0",
		"/api/products?limit=101",
		"/api/products?limit=-1",
	} {
		w, _ := e.request(t, http.MethodGet, path, user.Token, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for %s, got %d", path, w.Code)
		}
	}
}

// search matches a case-insensitive substring of either article_no or
// product_service, and the total reflects the filter.
func TestSearchFilter(t *testing.T) {
	e := newTestEnv()
	user := e.register(t, "anna@example.com", "hunter22")

	e.createProduct(t, user.Token, productRequest("WOOD-1", "Oak table", 100))
	e.createProduct(t, user.Token, productRequest("MET-1", "Steel woodscrew", 5))
	e.createProduct(t, user.Token, productRequest("MET-2", "Steel pipe", 8))

	_, env := e.request(t, http.MethodGet, "/api/products?search=wood", user.Token, nil)
	data := decodeList(t, env)

	if len(data.Products) != 2 {
		t.Fatalf("expected 2 matches for 'wood', got %d", len(data.Products))
	}
	if data.Pagination.Total != 2 {
		t.Errorf("expected filtered total 2, got %d", data.Pagination.Total)
	}
	for _, p := range data.Products {
		if p.ArticleNo == "MET-2" {
			t.Errorf("non-matching row leaked into results: %+v", p)
		}
	}
}

// Patching one field leaves every other field untouched.
func TestPartialUpdate(t *testing.T) {
	e := newTestEnv()
	user := e.register(t, "anna@example.com", "hunter22")

	created := e.createProduct(t, user.Token, handlers.CreateProductRequest{
		ArticleNo:      "A-1",
		ProductService: "Consulting",
		Price:          floatPtr(500),
		Description:    strPtr("Senior rate"),
		InStock:        intPtr(3),
	})

	w, env := e.request(t, http.MethodPut, productPath(created.ID), user.Token,
		map[string]any{"price": 750})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, env.Message)
	}

	updated := decodeProduct(t, env)
	if updated.Price != 750 {
		t.Errorf("expected price 750, got %v", updated.Price)
	}
	if updated.Description == nil || *updated.Description != "Senior rate" {
		t.Errorf("description should be untouched, got %v", updated.Description)
	}
	if updated.InStock == nil || *updated.InStock != 3 {
		t.Errorf("inStock should be untouched, got %v", updated.InStock)
	}
	if updated.ArticleNo != "A-1" {
		t.Errorf("articleNo should be untouched, got %q", updated.ArticleNo)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Error("updated_at should be refreshed by a patch")
	}
}

// An explicit null clears a nullable column; an absent key does not.
func TestUpdateExplicitNull(t *testing.T) {
	e := newTestEnv()
	user := e.register(t, "anna@example.com", "hunter22")

	created := e.createProduct(t, user.Token, handlers.CreateProductRequest{
		ArticleNo:      "A-1",
		ProductService: "Consulting",
		Price:          floatPtr(500),
		Description:    strPtr("Senior rate"),
	})

	_, env := e.request(t, http.MethodPut, productPath(created.ID), user.Token,
		map[string]any{"description": nil})
	updated := decodeProduct(t, env)

	if updated.Description != nil {
		t.Errorf("explicit null should clear description, got %v", updated.Description)
	}
	if updated.Price != 500 {
		t.Errorf("price should be untouched, got %v", updated.Price)
	}
}

func TestUpdateRequiresAField(t *testing.T) {
	e := newTestEnv()
	user := e.register(t, "anna@example.com", "hunter22")
	created := e.createProduct(t, user.Token, productRequest("A-1", "Thing", 10))

	w, env := e.request(t, http.MethodPut, productPath(created.ID), user.Token,
		map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an empty patch, got %d", w.Code)
	}
	if env.Message != "At least one field must be provided for update" {
		t.Errorf("unexpected message %q", env.Message)
	}
}

func TestUpdateValidation(t *testing.T) {
	e := newTestEnv()
	user := e.register(t, "anna@example.com", "hunter22")
	created := e.createProduct(t, user.Token, productRequest("A-1", "Thing", 10))

	w, env := e.request(t, http.MethodPut, productPath(created.ID), user.Token,
		map[string]any{"price": -10, "articleNo": ""})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if len(env.Errors) != 2 {
		t.Errorf("expected 2 field errors, got %v", env.Errors)
	}
}

func TestDeleteProduct(t *testing.T) {
	e := newTestEnv()
	user := e.register(t, "anna@example.com", "hunter22")
	created := e.createProduct(t, user.Token, productRequest("A-1", "Thing", 10))

	w, env := e.request(t, http.MethodDelete, productPath(created.ID), user.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 deleting, got %d", w.Code)
	}
	if env.Message != "Product deleted successfully" {
		t.Errorf("unexpected message %q", env.Message)
	}

	w, _ = e.request(t, http.MethodGet, productPath(created.ID), user.Token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}

	w, _ = e.request(t, http.MethodDelete, productPath(created.ID), user.Token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 deleting twice, got %d", w.Code)
	}
}
