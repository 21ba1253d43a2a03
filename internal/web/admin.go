package web

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"wisata/internal/api"
	"wisata/internal/catalog"
	"wisata/internal/platform/httputil"
)

// mountResource wires the CRUD routes for one admin resource. The path
// shapes mirror the upstream API, detail reads included.
func mountResource[T any, In any](r chi.Router, base string, ctrl *catalog.Controller[T, In], parse func(*http.Request) (In, error)) {
	r.Get(base, func(w http.ResponseWriter, req *http.Request) {
		if err := ctrl.Fetch(req.Context()); err != nil {
			httputil.WriteError(w, http.StatusBadGateway, err.Error())
			return
		}
		state := ctrl.State()
		if state.Err != "" {
			httputil.WriteError(w, http.StatusBadGateway, state.Err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    state.Items,
		})
	})

	r.Get(base+"/detail/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, ok := pathID(w, req)
		if !ok {
			return
		}
		record, err := ctrl.FetchByID(req.Context(), id)
		if err != nil {
			httputil.WriteError(w, http.StatusBadGateway, err.Error())
			return
		}
		if record == nil {
			httputil.WriteError(w, http.StatusNotFound, stateMessage(ctrl, "Not found"))
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    record,
		})
	})

	r.Post(base, func(w http.ResponseWriter, req *http.Request) {
		in, err := parse(req)
		if err != nil {
			httputil.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		record, err := ctrl.Create(req.Context(), in)
		if err != nil {
			httputil.WriteError(w, http.StatusBadGateway, err.Error())
			return
		}
		if record == nil {
			httputil.WriteError(w, http.StatusUnprocessableEntity, stateMessage(ctrl, "Create failed"))
			return
		}
		httputil.WriteJSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"data":    record,
		})
	})

	r.Put(base+"/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, ok := pathID(w, req)
		if !ok {
			return
		}
		in, err := parse(req)
		if err != nil {
			httputil.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		record, err := ctrl.Update(req.Context(), id, in)
		if err != nil {
			httputil.WriteError(w, http.StatusBadGateway, err.Error())
			return
		}
		if record == nil {
			httputil.WriteError(w, http.StatusUnprocessableEntity, stateMessage(ctrl, "Update failed"))
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    record,
		})
	})

	r.Delete(base+"/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, ok := pathID(w, req)
		if !ok {
			return
		}
		deleted, err := ctrl.Delete(req.Context(), id)
		if err != nil {
			httputil.WriteError(w, http.StatusBadGateway, err.Error())
			return
		}
		if !deleted {
			httputil.WriteError(w, http.StatusUnprocessableEntity, stateMessage(ctrl, "Delete failed"))
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Deleted",
		})
	})
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

func stateMessage[T any, In any](ctrl *catalog.Controller[T, In], fallback string) string {
	if msg := ctrl.State().Err; msg != "" {
		return msg
	}
	return fallback
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	var (
		stats    api.DashboardStats
		bookings []api.Booking
		reviews  []api.Review
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		res, err := h.cfg.Dashboard.Stats(ctx)
		if err != nil {
			return err
		}
		if !res.Success {
			return errors.New(res.Message)
		}
		stats = res.Data
		return nil
	})
	g.Go(func() error {
		res, err := h.cfg.Dashboard.RecentBookings(ctx)
		if err != nil {
			return err
		}
		if !res.Success {
			return errors.New(res.Message)
		}
		bookings = res.Data
		return nil
	})
	g.Go(func() error {
		res, err := h.cfg.Dashboard.RecentReviews(ctx)
		if err != nil {
			return err
		}
		if !res.Success {
			return errors.New(res.Message)
		}
		reviews = res.Data
		return nil
	})
	if err := g.Wait(); err != nil {
		httputil.WriteError(w, http.StatusBadGateway, err.Error())
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"stats":           stats,
			"recent_bookings": bookings,
			"recent_reviews":  reviews,
		},
	})
}

// formUploads drains the uploaded image parts into memory so the
// upstream call can replay them.
func formUploads(r *http.Request) ([]api.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	var uploads []api.Upload
	for _, fh := range r.MultipartForm.File["image[]"] {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, api.Upload{Name: fh.Filename, Content: bytes.NewReader(content)})
	}
	return uploads, nil
}

func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(32 << 20)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

func formInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.FormValue(key))
	return n
}

func formBool(r *http.Request, key string) bool {
	switch r.FormValue(key) {
	case "true", "1", "on":
		return true
	default:
		return false
	}
}

func parseTourInput(r *http.Request) (api.TourInput, error) {
	if err := parseForm(r); err != nil {
		return api.TourInput{}, err
	}
	uploads, err := formUploads(r)
	if err != nil {
		return api.TourInput{}, err
	}
	return api.TourInput{
		Name:           r.FormValue("name"),
		Description:    r.FormValue("description"),
		Itinerary:      r.FormValue("itinerary"),
		Includes:       r.FormValue("includes"),
		Excludes:       r.FormValue("excludes"),
		PricePerPerson: r.FormValue("price_per_person"),
		MinPersons:     formInt(r, "min_persons"),
		DurationDays:   formInt(r, "duration_days"),
		Available:      formBool(r, "is_available"),
		Images:         uploads,
	}, nil
}

func parseActivityInput(r *http.Request) (api.ActivityInput, error) {
	if err := parseForm(r); err != nil {
		return api.ActivityInput{}, err
	}
	uploads, err := formUploads(r)
	if err != nil {
		return api.ActivityInput{}, err
	}
	return api.ActivityInput{
		Name:           r.FormValue("name"),
		Description:    r.FormValue("description"),
		Itinerary:      r.FormValue("itinerary"),
		Includes:       r.FormValue("includes"),
		Excludes:       r.FormValue("excludes"),
		PricePerPerson: r.FormValue("price_per_person"),
		MinPersons:     formInt(r, "min_persons"),
		DurationHours:  formInt(r, "duration_hours"),
		Available:      formBool(r, "is_available"),
		Images:         uploads,
	}, nil
}

func parseRentalInput(r *http.Request) (api.RentalInput, error) {
	if err := parseForm(r); err != nil {
		return api.RentalInput{}, err
	}
	uploads, err := formUploads(r)
	if err != nil {
		return api.RentalInput{}, err
	}
	return api.RentalInput{
		Type:        r.FormValue("type"),
		Brand:       r.FormValue("brand"),
		Model:       r.FormValue("model"),
		PlateNumber: r.FormValue("plate_number"),
		Description: r.FormValue("description"),
		Includes:    r.FormValue("includes"),
		Excludes:    r.FormValue("excludes"),
		PricePerDay: r.FormValue("price_per_day"),
		Available:   formBool(r, "is_available"),
		Images:      uploads,
	}, nil
}
