package httpadapter

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

var validRovers = map[string]bool{
	"curiosity":    true,
	"opportunity":  true,
	"spirit":       true,
	"perseverance": true,
}

func (rt *Router) getAPOD(w http.ResponseWriter, r *http.Request) {
	payload, err := rt.feed.APOD(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		rt.respondUpstreamError(w, err)
		return
	}
	writeData(w, http.StatusOK, payload)
}

func (rt *Router) getRandomAPOD(w http.ResponseWriter, r *http.Request) {
	payload, err := rt.feed.RandomAPOD(r.Context())
	if err != nil {
		rt.respondUpstreamError(w, err)
		return
	}
	writeData(w, http.StatusOK, payload)
}

func (rt *Router) getMarsPhotos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	rover := q.Get("rover")
	if rover == "" {
		rover = "curiosity"
	}
	if !validRovers[rover] {
		writeError(w, http.StatusBadRequest, "Invalid rover. Must be one of: curiosity, opportunity, spirit, perseverance")
		return
	}

	sol, err := intParam(q.Get("sol"), 1000)
	if err != nil || sol < 0 {
		writeError(w, http.StatusBadRequest, "Invalid sol parameter. Must be a positive number.")
		return
	}
	page, err := intParam(q.Get("page"), 1)
	if err != nil || page < 1 {
		writeError(w, http.StatusBadRequest, "Invalid page parameter. Must be a positive number.")
		return
	}

	payload, err := rt.feed.MarsPhotos(r.Context(), rover, sol, page)
	if err != nil {
		rt.respondUpstreamError(w, err)
		return
	}
	writeData(w, http.StatusOK, payload)
}

func (rt *Router) getRoverManifest(w http.ResponseWriter, r *http.Request) {
	rover := chi.URLParam(r, "rover")
	if !validRovers[rover] {
		writeError(w, http.StatusBadRequest, "Invalid rover. Must be one of: curiosity, opportunity, spirit, perseverance")
		return
	}

	payload, err := rt.feed.RoverManifest(r.Context(), rover)
	if err != nil {
		rt.respondUpstreamError(w, err)
		return
	}
	writeData(w, http.StatusOK, payload)
}

func (rt *Router) getNEOFeed(w http.ResponseWriter, r *http.Request) {
	startDate, endDate := neoDateRange(r)
	payload, err := rt.feed.NEOFeed(r.Context(), startDate, endDate)
	if err != nil {
		rt.respondUpstreamError(w, err)
		return
	}
	writeData(w, http.StatusOK, payload)
}

func (rt *Router) getNEOStats(w http.ResponseWriter, r *http.Request) {
	startDate, endDate := neoDateRange(r)
	stats, err := rt.feed.NEOStats(r.Context(), startDate, endDate)
	if err != nil {
		rt.respondUpstreamError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{
		"start_date": startDate,
		"end_date":   endDate,
		"stats":      stats,
	})
}

func (rt *Router) searchLibrary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := q.Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "Search query is required")
		return
	}
	mediaType := q.Get("media_type")
	if mediaType == "" {
		mediaType = "image"
	}

	payload, err := rt.feed.SearchLibrary(r.Context(), query, mediaType)
	if err != nil {
		rt.respondUpstreamError(w, err)
		return
	}
	writeData(w, http.StatusOK, payload)
}

func neoDateRange(r *http.Request) (string, string) {
	q := r.URL.Query()
	startDate := q.Get("start_date")
	endDate := q.Get("end_date")
	if startDate == "" {
		startDate = time.Now().UTC().Format("2006-01-02")
	}
	if endDate == "" {
		endDate = time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
	}
	return startDate, endDate
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
