package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/fakturan-app/pricelist-api/internal/models"
	"github.com/fakturan-app/pricelist-api/internal/repo"
)

// TranslationHandler serves the UI strings. These routes are public: the
// login and register pages need them before any token exists.
type TranslationHandler struct {
	translations repo.TranslationRepository
}

func NewTranslationHandler(translations repo.TranslationRepository) *TranslationHandler {
	return &TranslationHandler{translations: translations}
}

// languageMap groups one page's strings per language.
type languageMap struct {
	English map[string]string `json:"english"`
	Swedish map[string]string `json:"swedish"`
}

func groupTranslations(rows []models.Translation) languageMap {
	m := languageMap{English: map[string]string{}, Swedish: map[string]string{}}
	for _, t := range rows {
		m.English[t.Key] = t.English
		m.Swedish[t.Key] = t.Swedish
	}
	return m
}

// GetAll godoc
// @Summary All UI strings, grouped per page and language
// @Tags translations
// @Produce json
// @Success 200 {object} Envelope
// @Router /api/translations [get]
func (h *TranslationHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	rows, err := h.translations.GetAll()
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch translations")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	byPage := map[string]languageMap{}
	for _, t := range rows {
		m, ok := byPage[t.Page]
		if !ok {
			m = languageMap{English: map[string]string{}, Swedish: map[string]string{}}
		}
		m.English[t.Key] = t.English
		m.Swedish[t.Key] = t.Swedish
		byPage[t.Page] = m
	}

	WriteJSON(w, http.StatusOK, Envelope{
		Success: true,
		Data: map[string]any{
			"translations": byPage,
			"raw":          rows,
		},
	})
}

// GetByPage godoc
// @Summary One page's UI strings, grouped per language
// @Tags translations
// @Produce json
// @Param page path string true "Page name" Enums(login, terms, pricelist, register)
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope "Unknown page"
// @Router /api/translations/{page} [get]
func (h *TranslationHandler) GetByPage(w http.ResponseWriter, r *http.Request) {
	page := chi.URLParam(r, "page")
	if !models.ValidTranslationPage(page) {
		writeValidationErrors(w, "Invalid route parameters",
			[]FieldError{{Field: "page", Message: "Unknown page"}})
		return
	}

	rows, err := h.translations.GetByPage(page)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch translations")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	WriteJSON(w, http.StatusOK, Envelope{
		Success: true,
		Data: map[string]any{
			"page":         page,
			"translations": groupTranslations(rows),
			"raw":          rows,
		},
	})
}

// GetByKey godoc
// @Summary A single UI string by page and key
// @Tags translations
// @Produce json
// @Param page path string true "Page name"
// @Param key path string true "String key"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /api/translations/{page}/{key} [get]
func (h *TranslationHandler) GetByKey(w http.ResponseWriter, r *http.Request) {
	page := chi.URLParam(r, "page")
	key := chi.URLParam(r, "key")
	if !models.ValidTranslationPage(page) {
		writeValidationErrors(w, "Invalid route parameters",
			[]FieldError{{Field: "page", Message: "Unknown page"}})
		return
	}

	t, err := h.translations.GetByKey(page, key)
	if err != nil {
		if errors.Is(err, repo.ErrTranslationNotFound) {
			WriteError(w, http.StatusNotFound, "Translation not found")
			return
		}
		log.Error().Err(err).Msg("failed to fetch translation")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	WriteJSON(w, http.StatusOK, Envelope{
		Success: true,
		Data:    map[string]models.Translation{"translation": t},
	})
}
