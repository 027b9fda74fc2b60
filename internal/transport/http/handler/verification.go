package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/social-verify-api/internal/application/verification"
	"github.com/social-verify-api/internal/pkg/validate"
)

// VerificationHandler exposes the bio, tweet, and OAuth verification flows.
type VerificationHandler struct {
	svc verification.Service
}

func NewVerificationHandler(svc verification.Service) *VerificationHandler {
	return &VerificationHandler{svc: svc}
}

type initiateRequest struct {
	WalletAddress string `json:"wallet_address" validate:"required"`
	SocialHandle  string `json:"social_handle" validate:"required"`
}

type tweetRequest struct {
	WalletAddress string `json:"wallet_address" validate:"required"`
	SocialHandle  string `json:"social_handle" validate:"required"`
	TweetRef      string `json:"tweet_ref" validate:"required"`
}

func (h *VerificationHandler) InitiateBio(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeInitiate(w, r)
	if !ok {
		return
	}
	challenge, err := h.svc.InitiateBio(r.Context(), req.WalletAddress, req.SocialHandle)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, challenge)
}

func (h *VerificationHandler) CompleteBio(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeInitiate(w, r)
	if !ok {
		return
	}
	rec, err := h.svc.CompleteBio(r.Context(), req.WalletAddress, req.SocialHandle)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *VerificationHandler) VerifyTweet(w http.ResponseWriter, r *http.Request) {
	var req tweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	rec, err := h.svc.VerifyTweet(r.Context(), req.WalletAddress, req.SocialHandle, req.TweetRef)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *VerificationHandler) InitiateOAuth(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeInitiate(w, r)
	if !ok {
		return
	}
	init, err := h.svc.InitiateOAuth(r.Context(), req.WalletAddress, req.SocialHandle)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, init)
}

// OAuthCallback receives the provider redirect. Parameters arrive as query
// string values, not a JSON body.
func (h *VerificationHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rec, err := h.svc.CompleteOAuthCallback(r.Context(), q.Get("code"), q.Get("state"), q.Get("error"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *VerificationHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.GetStatus(r.Context(), chi.URLParam(r, "wallet"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *VerificationHandler) List(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func decodeInitiate(w http.ResponseWriter, r *http.Request) (*initiateRequest, bool) {
	var req initiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return nil, false
	}
	return &req, true
}
