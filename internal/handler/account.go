package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/marcos/task-tracker-project/internal/domain"
	"github.com/marcos/task-tracker-project/internal/middleware"
	"github.com/marcos/task-tracker-project/internal/service"
)

// AccountHandler обрабатывает эндпоинты аккаунтов
type AccountHandler struct {
	accounts *service.AccountDirectory
	validate *validator.Validate

	// учетные данные администратора по умолчанию для /install
	bootstrapUsername string
	bootstrapPassword string
}

// NewAccountHandler создает новый AccountHandler
func NewAccountHandler(accounts *service.AccountDirectory, validate *validator.Validate, bootstrapUsername, bootstrapPassword string) *AccountHandler {
	return &AccountHandler{
		accounts:          accounts,
		validate:          validate,
		bootstrapUsername: bootstrapUsername,
		bootstrapPassword: bootstrapPassword,
	}
}

// RegisterRequest представляет тело запроса на регистрацию
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
	Team     string `json:"team"`
}

// Register обрабатывает POST /users (саморегистрация)
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, false)
}

// RegisterAdmin обрабатывает POST /users/admin (только для администраторов)
func (h *AccountHandler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, true)
}

func (h *AccountHandler) register(w http.ResponseWriter, r *http.Request, isAdmin bool) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "INVALID_INPUT", "username and password are required")
		return
	}

	in := service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
		Team:     req.Team,
	}

	var (
		account *domain.Account
		err     error
	)
	if isAdmin {
		account, err = h.accounts.RegisterAdmin(r.Context(), in)
	} else {
		account, err = h.accounts.Register(r.Context(), in)
	}
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, account)
}

// InstallResponse представляет ответ на установку
type InstallResponse struct {
	Message string          `json:"message"`
	Account *domain.Account `json:"account"`
}

// Install обрабатывает POST /install: создает администратора по умолчанию.
// Путь начальной настройки, доступен без токена.
func (h *AccountHandler) Install(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.RegisterAdmin(r.Context(), service.RegisterInput{
		Username: h.bootstrapUsername,
		Password: h.bootstrapPassword,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, InstallResponse{
		Message: "administrator account created",
		Account: account,
	})
}

// List обрабатывает GET /users (только для администраторов)
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.List(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, accounts)
}

// Get обрабатывает GET /users/{id}
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, account)
}

// UpdateAccountRequest представляет тело запроса на изменение аккаунта.
// Незаполненные поля сохраняют прежние значения.
type UpdateAccountRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Team     *string `json:"team"`
}

// Update обрабатывает PUT /users/{id}
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCallerFromContext(r.Context())
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	var req UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	account, err := h.accounts.Update(r.Context(), caller, chi.URLParam(r, "id"), service.UpdateAccountInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
		Team:     req.Team,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, account)
}

// DeleteAccountResponse представляет ответ на удаление аккаунта
type DeleteAccountResponse struct {
	Message string `json:"message"`
}

// Delete обрабатывает DELETE /users/{id} (только для администраторов)
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCallerFromContext(r.Context())
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	if err := h.accounts.Delete(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, DeleteAccountResponse{Message: "account removed"})
}
