package handlers

import (
	"errors"
	"net/http"

	"github.com/AyAchi-19/f1-store/internal/logger"
	"github.com/AyAchi-19/f1-store/internal/product"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductHandler struct {
	Products product.Service
}

// List serves the catalog, optionally filtered by ?category=.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.Products.GetProducts(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		logger.FromCtx(r.Context()).Error("list products failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "could not load products")
		return
	}
	writeJSON(w, r, http.StatusOK, products)
}

// ByCategory serves the catalog slice for one category page.
func (h *ProductHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.Products.GetProducts(r.Context(), r.PathValue("slug"))
	if err != nil {
		logger.FromCtx(r.Context()).Error("list category failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "could not load products")
		return
	}
	writeJSON(w, r, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid product id")
		return
	}

	p, err := h.Products.GetProductByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			writeError(w, r, http.StatusNotFound, err.Error())
			return
		}
		logger.FromCtx(r.Context()).Error("get product failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "could not load product")
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}

type productBody struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"image_url"`
	Category    *string  `json:"category"`
	Sizes       []string `json:"sizes"`
	Stock       *int     `json:"stock"`
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var body productBody
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Name == nil || body.Price == nil || body.Category == nil {
		writeError(w, r, http.StatusBadRequest, "name, price and category are required")
		return
	}

	params := product.CreateProductParams{
		Name:        *body.Name,
		Description: body.Description,
		Price:       *body.Price,
		ImageURL:    body.ImageURL,
		Category:    *body.Category,
		Sizes:       body.Sizes,
	}
	if body.Stock != nil {
		params.Stock = *body.Stock
	}

	p, err := h.Products.Create(r.Context(), params)
	if err != nil {
		if errors.Is(err, product.ErrInvalidProduct) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		logger.FromCtx(r.Context()).Error("create product failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "could not create product")
		return
	}
	writeJSON(w, r, http.StatusCreated, p)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid product id")
		return
	}

	var body productBody
	if !decodeJSON(w, r, &body) {
		return
	}

	p, err := h.Products.Update(r.Context(), product.UpdateProductParams{
		ID:          id,
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		ImageURL:    body.ImageURL,
		Category:    body.Category,
		Sizes:       body.Sizes,
		Stock:       body.Stock,
	})
	if err != nil {
		switch {
		case errors.Is(err, product.ErrProductNotFound):
			writeError(w, r, http.StatusNotFound, err.Error())
		case errors.Is(err, product.ErrInvalidProduct):
			writeError(w, r, http.StatusBadRequest, err.Error())
		default:
			logger.FromCtx(r.Context()).Error("update product failed", zap.Error(err))
			writeError(w, r, http.StatusInternalServerError, "could not update product")
		}
		return
	}
	writeJSON(w, r, http.StatusOK, p)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.Products.Delete(r.Context(), id); err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			writeError(w, r, http.StatusNotFound, err.Error())
			return
		}
		logger.FromCtx(r.Context()).Error("delete product failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "could not delete product")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "deleted"})
}
