package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/lenskeep/lenskeep/pkg/proto"
)

func renderStatus(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
		io.WriteString(w, fmt.Sprintf("%d %s", code, http.StatusText(code))) //nolint:errcheck,gosec
	}
}

func renderNotFound(w http.ResponseWriter, r *http.Request) {
	renderStatus(http.StatusNotFound)(w, r)
}

func renderJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Default().Error("encode response", "err", err)
	}
}

// renderError maps domain errors to HTTP status codes.
func renderError(w http.ResponseWriter, err error) {
	var code int
	switch {
	case errors.Is(err, proto.ErrUnauthorized):
		code = http.StatusForbidden
	case errors.Is(err, proto.ErrUserNotFound),
		errors.Is(err, proto.ErrStudioNotFound),
		errors.Is(err, proto.ErrMemberNotFound),
		errors.Is(err, proto.ErrClientNotFound),
		errors.Is(err, proto.ErrInvitationNotFound):
		code = http.StatusNotFound
	case errors.Is(err, proto.ErrInvitationResolved),
		errors.Is(err, proto.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, proto.ErrInvitationExpired):
		code = http.StatusGone
	default:
		code = http.StatusInternalServerError
	}

	renderJSON(w, code, map[string]string{"error": err.Error()})
}
