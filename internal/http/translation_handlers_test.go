package http_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/fakturan-app/pricelist-api/internal/models"
)

func TestTranslationsByPage(t *testing.T) {
	e := newTestEnv()
	seedTranslations(e)

	w, env := e.request(t, http.MethodGet, "/api/translations/login", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var data struct {
		Page         string                       `json:"page"`
		Translations map[string]map[string]string `json:"translations"`
		Raw          []models.Translation         `json:"raw"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("error decoding translations: %v", err)
	}

	if data.Page != "login" {
		t.Errorf("expected page login, got %q", data.Page)
	}
	if data.Translations["english"]["title"] != "Sign in" {
		t.Errorf("unexpected english title: %v", data.Translations["english"])
	}
	if data.Translations["swedish"]["password"] != "Lösenord" {
		t.Errorf("unexpected swedish password label: %v", data.Translations["swedish"])
	}
	if len(data.Raw) != 2 {
		t.Errorf("expected 2 raw rows for login, got %d", len(data.Raw))
	}
}

func TestTranslationsAllGroupedByPage(t *testing.T) {
	e := newTestEnv()
	seedTranslations(e)

	w, env := e.request(t, http.MethodGet, "/api/translations", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var data struct {
		Translations map[string]map[string]map[string]string `json:"translations"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("error decoding translations: %v", err)
	}

	if len(data.Translations) != 3 {
		t.Errorf("expected 3 pages, got %d", len(data.Translations))
	}
	if data.Translations["pricelist"]["swedish"]["menu_pricelist"] != "Prislista" {
		t.Errorf("unexpected grouped value: %v", data.Translations["pricelist"])
	}
}

func TestTranslationByKey(t *testing.T) {
	e := newTestEnv()
	seedTranslations(e)

	w, env := e.request(t, http.MethodGet, "/api/translations/terms/heading", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var data struct {
		Translation models.Translation `json:"translation"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("error decoding translation: %v", err)
	}
	if data.Translation.English != "Terms" || data.Translation.Swedish != "Villkor" {
		t.Errorf("unexpected translation: %+v", data.Translation)
	}
}

func TestTranslationMissingKey(t *testing.T) {
	e := newTestEnv()
	seedTranslations(e)

	w, env := e.request(t, http.MethodGet, "/api/translations/terms/nope", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if env.Message != "Translation not found" {
		t.Errorf("unexpected message %q", env.Message)
	}
}

func TestTranslationUnknownPage(t *testing.T) {
	e := newTestEnv()
	seedTranslations(e)

	w, _ := e.request(t, http.MethodGet, "/api/translations/dashboard", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown page, got %d", w.Code)
	}
}

func TestUnknownRouteEnvelope(t *testing.T) {
	e := newTestEnv()

	w, env := e.request(t, http.MethodGet, "/api/nothing-here", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if env.Success || env.Message != "Route not found" {
		t.Errorf("unexpected envelope: %+v", env)
	}
}

func TestHealth(t *testing.T) {
	e := newTestEnv()

	w, env := e.request(t, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !env.Success || env.Message != "Server is running" {
		t.Errorf("unexpected envelope: %+v", env)
	}
}
