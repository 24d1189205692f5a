package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fakturan-app/pricelist-api/internal/auth"
	api "github.com/fakturan-app/pricelist-api/internal/http"
	"github.com/fakturan-app/pricelist-api/internal/http/handlers"
	"github.com/fakturan-app/pricelist-api/internal/models"
	"github.com/fakturan-app/pricelist-api/internal/repo"
)

const testLoginDelay = 30 * time.Millisecond

type testEnv struct {
	router       http.Handler
	tokens       *auth.Service
	users        *repo.InMemoryUserRepository
	products     *repo.InMemoryProductRepository
	translations *repo.InMemoryTranslationRepository
}

func newTestEnv() *testEnv {
	users := repo.NewInMemoryUserRepository()
	products := repo.NewInMemoryProductRepository()
	translations := repo.NewInMemoryTranslationRepository()
	tokens := auth.NewService("test-secret", time.Hour)

	r := api.NewRouter(api.RouterConfig{
		Tokens:         tokens,
		Users:          users,
		Products:       products,
		Translations:   translations,
		LoginFailDelay: testLoginDelay,
	})

	return &testEnv{
		router:       r,
		tokens:       tokens,
		users:        users,
		products:     products,
		translations: translations,
	}
}

// envelope mirrors the wire shape with raw data for precise decoding.
type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Errors  []handlers.FieldError `json:"errors"`
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("error encoding request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	if err := json.NewDecoder(w.Body).Decode(&env); err != nil {
		t.Fatalf("error decoding response envelope: %v", err)
	}
	return w, env
}

func (e *testEnv) register(t *testing.T, email, password string) handlers.AuthData {
	t.Helper()

	w, env := e.request(t, http.MethodPost, "/api/auth/register", "",
		handlers.CredentialsRequest{Email: email, Password: password})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 registering %s, got %d (%s)", email, w.Code, env.Message)
	}

	var data handlers.AuthData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("error decoding auth data: %v", err)
	}
	return data
}

func (e *testEnv) createProduct(t *testing.T, token string, req handlers.CreateProductRequest) models.Product {
	t.Helper()

	w, env := e.request(t, http.MethodPost, "/api/products", token, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating product, got %d (%s)", w.Code, env.Message)
	}

	var data struct {
		Product models.Product `json:"product"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("error decoding product: %v", err)
	}
	return data.Product
}

func productRequest(articleNo, service string, price float64) handlers.CreateProductRequest {
	return handlers.CreateProductRequest{
		ArticleNo:      articleNo,
		ProductService: service,
		Price:          &price,
	}
}

func seedTranslations(e *testEnv) {
	rows := []models.Translation{
		{Page: "login", Key: "title", English: "Sign in", Swedish: "Logga in"},
		{Page: "login", Key: "password", English: "Password", Swedish: "Lösenord"},
		{Page: "pricelist", Key: "menu_pricelist", English: "Price List", Swedish: "Prislista"},
		{Page: "terms", Key: "heading", English: "Terms", Swedish: "Villkor"},
	}
	for _, row := range rows {
		e.translations.Add(row)
	}
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func floatPtr(f float64) *float64 { return &f }

func productPath(id int) string {
	return fmt.Sprintf("/api/products/%d", id)
}
