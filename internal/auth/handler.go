package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"secretario/internal/platform/middleware"
	dErrors "secretario/pkg/domain-errors"
	"secretario/pkg/httputil"
)

// Handler exposes login publicly and user management to admins.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the unauthenticated login route.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
}

// RegisterAdmin mounts account management under the admin chain.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/users", h.handleCreateUser)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, loginResponse{AccessToken: token})
}

type createUserRequest struct {
	Username string          `json:"username"`
	Password string          `json:"password"`
	Role     middleware.Role `json:"role"`
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Role == "" {
		req.Role = middleware.RoleSecretary
	}
	u, err := h.service.CreateUser(ctx, req.Username, req.Password, req.Role)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "user created",
		"request_id", middleware.GetRequestID(ctx), "username", u.Username, "role", u.Role)
	httputil.WriteJSON(w, http.StatusCreated, u)
}
