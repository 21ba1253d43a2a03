package web

import (
	"encoding/json"
	"net/http"

	"wisata/internal/auth/models"
	"wisata/internal/platform/httputil"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionUser struct {
	ID            int64       `json:"id"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Role          models.Role `json:"role"`
	EmailVerified bool        `json:"email_verified"`
}

func toSessionUser(u models.User) sessionUser {
	return sessionUser{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		EmailVerified: u.VerifiedEmail(),
	}
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httputil.WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	res, err := h.cfg.Flow.SignIn(r.Context(), req.Email, req.Password, r.UserAgent())
	if err != nil {
		httputil.WriteError(w, http.StatusUnauthorized, err.Error())
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"user":        toSessionUser(res.User),
			"verified":    res.Verified,
			"redirect_to": res.RedirectTo,
		},
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.cfg.Manager.Logout(r.Context())
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Logged out",
	})
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	snap := h.cfg.Manager.Snapshot()
	payload := map[string]any{
		"loading":            snap.Loading,
		"authenticated":      snap.Authenticated,
		"needs_verification": snap.NeedsVerification,
	}
	if snap.User != nil {
		payload["user"] = toSessionUser(*snap.User)
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    payload,
	})
}

type verifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (h *Handler) handleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" {
		// Fall back to the session's own address.
		if snap := h.cfg.Manager.Snapshot(); snap.User != nil {
			req.Email = snap.User.Email
		}
	}

	res, err := h.cfg.Flow.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		httputil.WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Email verified successfully",
		"data": map[string]any{
			"user":        toSessionUser(res.User),
			"redirect_to": res.RedirectTo,
		},
	})
}

func (h *Handler) handleVerifyEmailStatus(w http.ResponseWriter, r *http.Request) {
	snap := h.cfg.Manager.Snapshot()
	payload := map[string]any{
		"needs_verification": snap.NeedsVerification,
	}
	if snap.User != nil {
		payload["email"] = snap.User.Email
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    payload,
	})
}

type resendRequest struct {
	Email string `json:"email"`
}

func (h *Handler) handleResendOTP(w http.ResponseWriter, r *http.Request) {
	var req resendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" {
		if snap := h.cfg.Manager.Snapshot(); snap.User != nil {
			req.Email = snap.User.Email
		}
	}

	if err := h.cfg.Flow.Resend(r.Context(), req.Email); err != nil {
		httputil.WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Verification code sent",
	})
}

func (h *Handler) handleSettings(w http.ResponseWriter, r *http.Request) {
	snap := h.cfg.Manager.Snapshot()
	payload := map[string]any{
		"device": h.cfg.Manager.Device(),
	}
	if snap.User != nil {
		payload["user"] = toSessionUser(*snap.User)
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    payload,
	})
}

func (h *Handler) handleNotifications(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    []any{},
	})
}

func (h *Handler) handleMyBookings(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    []any{},
	})
}
