package transport

import (
	"net/http"

	"spicery-be/internal/user"
	"spicery-be/internal/validate"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var in user.RegisterInput
	if err := h.decode(w, r, validate.SchemaRegister, &in); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.Users.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var in user.LoginInput
	if err := h.decode(w, r, validate.SchemaLogin, &in); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.Users.Login(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
