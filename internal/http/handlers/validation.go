package handlers

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/fakturan-app/pricelist-api/internal/repo"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// normalizeEmail lower-cases and trims at the boundary; queries further in
// always see the canonical form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateLogin(creds *CredentialsRequest) []FieldError {
	errs := []FieldError{}
	creds.Email = normalizeEmail(creds.Email)
	creds.Password = strings.TrimSpace(creds.Password)

	if !emailPattern.MatchString(creds.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "Invalid email format"})
	}
	if creds.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "Password is required"})
	}
	return errs
}

func validateRegister(creds *CredentialsRequest) []FieldError {
	errs := []FieldError{}
	creds.Email = normalizeEmail(creds.Email)
	creds.Password = strings.TrimSpace(creds.Password)

	if !emailPattern.MatchString(creds.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "Invalid email format"})
	}
	if len(creds.Password) < 6 {
		errs = append(errs, FieldError{Field: "password", Message: "Password must be at least 6 characters long"})
	} else if len(creds.Password) > 128 {
		errs = append(errs, FieldError{Field: "password", Message: "Password must not exceed 128 characters"})
	}
	return errs
}

func validateCreateProduct(req *CreateProductRequest) []FieldError {
	errs := []FieldError{}

	req.ArticleNo = strings.TrimSpace(req.ArticleNo)
	req.ProductService = strings.TrimSpace(req.ProductService)

	if req.ArticleNo == "" {
		errs = append(errs, FieldError{Field: "articleNo", Message: "Article number is required"})
	} else if len(req.ArticleNo) > 50 {
		errs = append(errs, FieldError{Field: "articleNo", Message: "Article number must not exceed 50 characters"})
	}
	if req.ProductService == "" {
		errs = append(errs, FieldError{Field: "productService", Message: "Product/Service name is required"})
	}
	if req.Price == nil {
		errs = append(errs, FieldError{Field: "price", Message: "Price is required"})
	} else if *req.Price < 0 {
		errs = append(errs, FieldError{Field: "price", Message: "Price cannot be negative"})
	}
	if req.InPrice != nil && *req.InPrice < 0 {
		errs = append(errs, FieldError{Field: "inPrice", Message: "In price cannot be negative"})
	}
	if req.Unit != nil && len(strings.TrimSpace(*req.Unit)) > 50 {
		errs = append(errs, FieldError{Field: "unit", Message: "Unit must not exceed 50 characters"})
	}
	if req.InStock != nil && *req.InStock < 0 {
		errs = append(errs, FieldError{Field: "inStock", Message: "Stock cannot be negative"})
	}
	return errs
}

// parseProductPatch reads a sparse update body. Only keys present in the
// JSON change anything: an explicit null clears a nullable column, an
// absent key leaves the column untouched.
func parseProductPatch(body []byte) (repo.ProductPatch, []FieldError, bool) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return repo.ProductPatch{}, nil, false
	}

	patch := repo.ProductPatch{}
	errs := []FieldError{}

	if msg, ok := raw["articleNo"]; ok {
		var v *string
		if err := json.Unmarshal(msg, &v); err != nil || v == nil {
			errs = append(errs, FieldError{Field: "articleNo", Message: "Article number cannot be empty"})
		} else {
			trimmed := strings.TrimSpace(*v)
			switch {
			case trimmed == "":
				errs = append(errs, FieldError{Field: "articleNo", Message: "Article number cannot be empty"})
			case len(trimmed) > 50:
				errs = append(errs, FieldError{Field: "articleNo", Message: "Article number must not exceed 50 characters"})
			default:
				patch.ArticleNo = &trimmed
			}
		}
	}
	if msg, ok := raw["productService"]; ok {
		var v *string
		if err := json.Unmarshal(msg, &v); err != nil || v == nil || strings.TrimSpace(*v) == "" {
			errs = append(errs, FieldError{Field: "productService", Message: "Product/Service name cannot be empty"})
		} else {
			trimmed := strings.TrimSpace(*v)
			patch.ProductService = &trimmed
		}
	}
	if msg, ok := raw["price"]; ok {
		var v *float64
		if err := json.Unmarshal(msg, &v); err != nil || v == nil {
			errs = append(errs, FieldError{Field: "price", Message: "Price must be a number"})
		} else if *v < 0 {
			errs = append(errs, FieldError{Field: "price", Message: "Price cannot be negative"})
		} else {
			patch.Price = v
		}
	}
	if msg, ok := raw["inPrice"]; ok {
		var v *float64
		if err := json.Unmarshal(msg, &v); err != nil {
			errs = append(errs, FieldError{Field: "inPrice", Message: "In price must be a number"})
		} else if v != nil && *v < 0 {
			errs = append(errs, FieldError{Field: "inPrice", Message: "In price cannot be negative"})
		} else {
			patch.InPrice = v
			patch.InPriceSet = true
		}
	}
	if msg, ok := raw["unit"]; ok {
		var v *string
		if err := json.Unmarshal(msg, &v); err != nil {
			errs = append(errs, FieldError{Field: "unit", Message: "Unit must be a string"})
		} else if v != nil && len(strings.TrimSpace(*v)) > 50 {
			errs = append(errs, FieldError{Field: "unit", Message: "Unit must not exceed 50 characters"})
		} else {
			patch.Unit = v
			patch.UnitSet = true
		}
	}
	if msg, ok := raw["inStock"]; ok {
		var v *int
		if err := json.Unmarshal(msg, &v); err != nil {
			errs = append(errs, FieldError{Field: "inStock", Message: "Stock must be an integer"})
		} else if v != nil && *v < 0 {
			errs = append(errs, FieldError{Field: "inStock", Message: "Stock cannot be negative"})
		} else {
			patch.InStock = v
			patch.InStockSet = true
		}
	}
	if msg, ok := raw["description"]; ok {
		var v *string
		if err := json.Unmarshal(msg, &v); err != nil {
			errs = append(errs, FieldError{Field: "description", Message: "Description must be a string"})
		} else {
			patch.Description = v
			patch.DescriptionSet = true
		}
	}

	return patch, errs, true
}
