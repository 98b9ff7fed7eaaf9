package web

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lenskeep/lenskeep/pkg/backend"
	"github.com/lenskeep/lenskeep/pkg/db/models"
)

// StudioController registers the studio routes for the web server.
func StudioController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/v1/studios/{id}/members", getStudioMembers).Methods(http.MethodGet)
	r.HandleFunc("/v1/studios/{id}/clients", getStudioClients).Methods(http.MethodGet)
}

type userResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Type        string `json:"type"`
}

func userResponses(users []models.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userResponse{
			ID:          u.ID,
			Email:       u.Email,
			DisplayName: u.DisplayName,
			Type:        u.Type.String(),
		})
	}
	return out
}

func getStudioMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	actor, err := resolveActor(r)
	if err != nil {
		renderError(w, err)
		return
	}

	users, err := be.StudioMemberUsers(ctx, actor, mux.Vars(r)["id"])
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, userResponses(users))
}

func getStudioClients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	actor, err := resolveActor(r)
	if err != nil {
		renderError(w, err)
		return
	}

	users, err := be.StudioClientUsers(ctx, actor, mux.Vars(r)["id"])
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, userResponses(users))
}
