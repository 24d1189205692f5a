package handlers

import (
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/fakturan-app/pricelist-api/internal/auth"
	"github.com/fakturan-app/pricelist-api/internal/models"
	"github.com/fakturan-app/pricelist-api/internal/repo"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// ProductHandler serves the price-list CRUD. Every operation is scoped to
// the user id carried by the verified token.
type ProductHandler struct {
	products repo.ProductRepository
}

func NewProductHandler(products repo.ProductRepository) *ProductHandler {
	return &ProductHandler{products: products}
}

func callerID(r *http.Request, w http.ResponseWriter) (int, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Access token required")
		return 0, false
	}
	return claims.UserID, true
}

// List godoc
// @Summary List the caller's products, paginated and search-filtered
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param search query string false "Substring of article_no or product_service"
// @Param page query int false "Page, default 1"
// @Param limit query int false "Page size, default 20, max 100"
// @Success 200 {object} Envelope
// @Router /api/products [get]
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r, w)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := repo.ProductFilter{Search: q.Get("search"), Page: defaultPage, Limit: defaultLimit}

	errs := []FieldError{}
	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			errs = append(errs, FieldError{Field: "page", Message: "Page must be a number"})
		} else {
			filter.Page = page
		}
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxLimit {
			errs = append(errs, FieldError{Field: "limit", Message: "Limit must be a number between 1 and 100"})
		} else {
			filter.Limit = limit
		}
	}
	if len(errs) > 0 {
		writeValidationErrors(w, "Invalid query parameters", errs)
		return
	}

	products, total, err := h.products.List(userID, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list products")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	WriteJSON(w, http.StatusOK, Envelope{
		Success: true,
		Data: ProductListData{
			Products: products,
			Pagination: Pagination{
				Page:       filter.Page,
				Limit:      filter.Limit,
				Total:      total,
				TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
			},
		},
	})
}

// Get godoc
// @Summary Get a single product by id
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope "Not found (or owned by someone else)"
// @Router /api/products/{id} [get]
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r, w)
	if !ok {
		return
	}
	id, ok := productID(w, r)
	if !ok {
		return
	}

	product, err := h.products.GetByID(userID, id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			WriteError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Error().Err(err).Msg("failed to fetch product")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	WriteJSON(w, http.StatusOK, Envelope{
		Success: true,
		Data:    map[string]models.Product{"product": product},
	})
}

// Create godoc
// @Summary Create a product owned by the caller
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body CreateProductRequest true "Product fields"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /api/products [post]
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r, w)
	if !ok {
		return
	}

	var req CreateProductRequest
	if err := readJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if errs := validateCreateProduct(&req); len(errs) > 0 {
		writeValidationErrors(w, "Validation failed", errs)
		return
	}

	product := models.Product{
		ArticleNo:      req.ArticleNo,
		ProductService: req.ProductService,
		InPrice:        req.InPrice,
		Price:          *req.Price,
		Unit:           emptyToNil(req.Unit),
		InStock:        req.InStock,
		Description:    emptyToNil(req.Description),
		UserID:         userID,
	}

	created, err := h.products.Create(product)
	if err != nil {
		log.Error().Err(err).Msg("failed to create product")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	log.Info().Int("product_id", created.ID).Int("user_id", userID).Msg("product created")
	WriteJSON(w, http.StatusCreated, Envelope{
		Success: true,
		Message: "Product created successfully",
		Data:    map[string]models.Product{"product": created},
	})
}

// Update godoc
// @Summary Patch a product; only the fields present in the body change
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope "Empty or invalid patch"
// @Failure 404 {object} Envelope
// @Router /api/products/{id} [put]
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r, w)
	if !ok {
		return
	}
	id, ok := productID(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1048576))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	patch, errs, ok := parseProductPatch(body)
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if len(errs) > 0 {
		writeValidationErrors(w, "Validation failed", errs)
		return
	}
	if patch.Empty() {
		WriteError(w, http.StatusBadRequest, "At least one field must be provided for update")
		return
	}

	updated, err := h.products.Update(userID, id, patch)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			WriteError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Error().Err(err).Msg("failed to update product")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	log.Info().Int("product_id", updated.ID).Int("user_id", userID).Msg("product updated")
	WriteJSON(w, http.StatusOK, Envelope{
		Success: true,
		Message: "Product updated successfully",
		Data:    map[string]models.Product{"product": updated},
	})
}

// Delete godoc
// @Summary Hard-delete a product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /api/products/{id} [delete]
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r, w)
	if !ok {
		return
	}
	id, ok := productID(w, r)
	if !ok {
		return
	}

	if err := h.products.Delete(userID, id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			WriteError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Error().Err(err).Msg("failed to delete product")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	log.Info().Int("product_id", id).Int("user_id", userID).Msg("product deleted")
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Message: "Product deleted successfully"})
}

func productID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		writeValidationErrors(w, "Invalid route parameters",
			[]FieldError{{Field: "id", Message: "Product ID must be a valid number"}})
		return 0, false
	}
	return id, true
}

func emptyToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := *s
	if trimmed == "" {
		return nil
	}
	return s
}
