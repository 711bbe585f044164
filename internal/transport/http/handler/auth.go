package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/employee-records-api/internal/application/auth"
	"github.com/employee-records-api/internal/domain"
	"github.com/employee-records-api/internal/pkg/validate"
)

// AuthHandler handles the PIN login flow endpoints.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) RequestPin(w http.ResponseWriter, r *http.Request) {
	var req auth.RequestPinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.RequestPin(r.Context(), req.Identity); err != nil {
		// A failed delivery still answers success: the code stays verifiable
		// until its TTL, and the response never confirms whether an identity
		// exists or is reachable.
		if errors.Is(err, domain.ErrDelivery) {
			slog.Warn("pin delivery failed", "err", err)
		} else {
			httpError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{
		Success: true,
		Message: "PIN sent. Please check your messages (and spam folder).",
	})
}

func (h *AuthHandler) VerifyPin(w http.ResponseWriter, r *http.Request) {
	var req auth.VerifyPinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	token, err := h.svc.VerifyPin(r.Context(), req.Identity, req.Code)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeJSON(w, http.StatusUnauthorized, AuthEnvelope{Success: false})
			return
		}
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{
		Success:     true,
		Message:     "Login successful!",
		AccessToken: token,
		TokenType:   "bearer",
	})
}
