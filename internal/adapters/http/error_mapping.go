package httpadapter

import (
	"fmt"
	"net/http"

	"github.com/astroview/astro-gateway/internal/core/domain"
)

const rateLimitedMessage = "NASA API rate limit exceeded. Please try again later."

// mapUpstreamError turns a failed upstream call into the (status, message)
// pair for the response envelope. Upstream 4xx pass through with the
// original status; 429 gets a fixed message; everything else collapses to a
// generic 500 so upstream internals never leak.
func mapUpstreamError(err error) (int, string) {
	if domain.IsKind(err, domain.ErrInvalidInput) {
		return http.StatusBadRequest, err.Error()
	}

	if status := domain.UpstreamStatus(err); status != 0 {
		switch {
		case status == http.StatusTooManyRequests:
			return http.StatusTooManyRequests, rateLimitedMessage
		case status >= 400 && status < 500:
			return status, fmt.Sprintf("NASA API Error: %s", http.StatusText(status))
		}
	}

	return http.StatusInternalServerError, "Failed to fetch data from NASA API"
}

func (rt *Router) respondUpstreamError(w http.ResponseWriter, err error) {
	status, message := mapUpstreamError(err)
	if rt.devMode {
		writeErrorDetail(w, status, message, err.Error())
		return
	}
	writeError(w, status, message)
}
