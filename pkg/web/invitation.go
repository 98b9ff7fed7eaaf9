package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/lenskeep/lenskeep/pkg/backend"
)

// InvitationController registers the invitation routes for the web server.
func InvitationController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/v1/invitations", postInvitation).Methods(http.MethodPost)
	r.HandleFunc("/v1/invitations/accept", postAcceptInvitation).Methods(http.MethodPost)
	r.HandleFunc("/v1/invitations/sweep", postSweepInvitations).Methods(http.MethodPost)
}

type createInvitationRequest struct {
	StudioID string `json:"studio_id"`
	Email    string `json:"email"`
}

type createInvitationResponse struct {
	ID        string `json:"id"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

func postInvitation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	actor, err := resolveActor(r)
	if err != nil {
		renderError(w, err)
		return
	}

	var req createInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	inv, err := be.CreateInvitation(ctx, actor, req.StudioID, req.Email)
	if err != nil {
		renderError(w, err)
		return
	}

	token, err := be.InvitationToken(inv)
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusCreated, createInvitationResponse{
		ID:        inv.ID,
		Token:     token,
		ExpiresAt: inv.ExpiresAt.Format(time.RFC3339),
	})
}

type acceptInvitationRequest struct {
	Token       string `json:"token"`
	DisplayName string `json:"display_name"`
}

func postAcceptInvitation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	var req acceptInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	u, err := be.AcceptInvitationToken(ctx, req.Token, req.DisplayName)
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, map[string]string{
		"user_id": u.ID,
		"email":   u.Email,
	})
}

func postSweepInvitations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be := backend.FromContext(ctx)

	if _, err := requireAdmin(r); err != nil {
		renderError(w, err)
		return
	}

	swept, err := be.SweepExpiredInvitations(ctx)
	if err != nil {
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, map[string]interface{}{
		"swept": len(swept),
		"ids":   swept,
	})
}
