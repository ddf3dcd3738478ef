package transport

import (
	"net/http"

	"spicery-be/internal/supplier"
	"spicery-be/internal/validate"

	"github.com/gorilla/mux"
)

func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.Suppliers.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, suppliers)
}

func (h *Handler) getSupplier(w http.ResponseWriter, r *http.Request) {
	s, err := h.Suppliers.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) registerSupplier(w http.ResponseWriter, r *http.Request) {
	var in supplier.RegisterInput
	if err := h.decode(w, r, validate.SchemaSupplier, &in); err != nil {
		writeError(w, r, err)
		return
	}

	s, err := h.Suppliers.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

func (h *Handler) updateSupplierStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status supplier.Status `json:"status"`
	}
	if err := h.decode(w, r, validate.SchemaSupplierStatus, &in); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Suppliers.UpdateStatus(r.Context(), mux.Vars(r)["id"], in.Status); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successBody{Success: true})
}
