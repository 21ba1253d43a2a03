package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"wisata/internal/platform/httputil"
	"wisata/internal/storefront"
)

// listPublic serves a traveller-facing package list.
func listPublic[T storefront.Listing](b *storefront.Browser[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := b.FetchAvailable(r.Context()); err != nil {
			httputil.WriteError(w, http.StatusBadGateway, err.Error())
			return
		}
		state := b.State()
		if state.Err != "" {
			httputil.WriteError(w, http.StatusBadGateway, state.Err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    state.Items,
		})
	}
}

// detailPublic serves one traveller-facing package by slug. Unavailable
// packages answer 404 with the resource's fixed message.
func detailPublic[T storefront.Listing](b *storefront.Browser[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		record, err := b.BySlug(r.Context(), slug)
		if err != nil {
			httputil.WriteError(w, http.StatusBadGateway, err.Error())
			return
		}
		if record == nil {
			msg := b.State().Err
			if msg == "" {
				msg = "Not found"
			}
			httputil.WriteError(w, http.StatusNotFound, msg)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    record,
		})
	}
}

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	data, err := h.cfg.Home.Fetch(r.Context())
	if err != nil {
		httputil.WriteError(w, http.StatusBadGateway, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"tours":      data.Tours,
			"activities": data.Activities,
			"rentals":    data.Rentals,
		},
	})
}
