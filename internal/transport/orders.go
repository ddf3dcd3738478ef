package transport

import (
	"net/http"

	"spicery-be/internal/order"
	"spicery-be/internal/validate"

	"github.com/gorilla/mux"
)

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List(r.Context(), order.ListFilter{Email: r.URL.Query().Get("email")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order.ToResponses(orders))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.Orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order.ToResponse(o))
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var in order.CreateInput
	if err := h.decode(w, r, validate.SchemaOrder, &in); err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.Orders.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, successBody{Success: true, ID: o.ID})
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status order.Status `json:"status"`
	}
	if err := h.decode(w, r, validate.SchemaOrderStatus, &in); err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := h.Orders.UpdateStatus(r.Context(), mux.Vars(r)["id"], in.Status); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successBody{Success: true})
}
