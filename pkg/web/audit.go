package web

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/lenskeep/lenskeep/pkg/backend"
	"github.com/lenskeep/lenskeep/pkg/store"
)

// AuditController registers the audit log routes for the web server.
// Reading the audit log is restricted to global admins.
func AuditController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/v1/audit", getAuditLog).Methods(http.MethodGet)
}

func getAuditLog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	if _, err := requireAdmin(r); err != nil {
		renderError(w, err)
		return
	}

	filter, err := auditFilterFromQuery(r)
	if err != nil {
		renderJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	entries, err := be.AuditLog(ctx, filter)
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, entries)
}

func auditFilterFromQuery(r *http.Request) (store.AuditLogFilter, error) {
	q := r.URL.Query()
	filter := store.AuditLogFilter{
		EntityType: q.Get("entity_type"),
		EntityID:   q.Get("entity_id"),
		ActorID:    q.Get("actor_id"),
	}

	if v := q.Get("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, err
		}
		filter.Since = t
	}
	if v := q.Get("until"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, err
		}
		filter.Until = t
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, err
		}
		filter.Limit = n
	}

	return filter, nil
}
