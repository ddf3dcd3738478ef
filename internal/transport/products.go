package transport

import (
	"net/http"

	"spicery-be/internal/product"
	"spicery-be/internal/validate"

	"github.com/gorilla/mux"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Products.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.Products.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// createProduct ignores any status sent by the client; it is derived from stock.
func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var in product.Input
	if err := h.decode(w, r, validate.SchemaProduct, &in); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.Products.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var in product.Input
	if err := h.decode(w, r, validate.SchemaProduct, &in); err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := h.Products.Update(r.Context(), mux.Vars(r)["id"], in); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successBody{Success: true})
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.Products.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successBody{Success: true})
}

func (h *Handler) listReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Products.ListReviews(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	var in product.ReviewInput
	if err := h.decode(w, r, validate.SchemaReview, &in); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.Products.RecordReview(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}
