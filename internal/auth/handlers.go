package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/TeeCanvas/TC-Backend/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
)

// folder normalizes emails and usernames for uniqueness checks so that
// "User@Example.com" and "user@example.com" collide.
var folder = cases.Fold()

type Handler struct {
	Tokens *TokenService
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Message     string `json:"message,omitempty"`
	User        *User  `json:"user,omitempty"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *Handler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = folder.String(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "Username, email and password are required", http.StatusBadRequest)
		return
	}

	// Pre-check for the friendly message; the unique indexes close the
	// race between this check and the insert below.
	existing, err := FindUserByEmailOrUsername(req.Email, req.Username)
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if existing != nil {
		http.Error(w, "User with this email or username already exists", http.StatusBadRequest)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Server error hashing password", http.StatusInternalServerError)
		return
	}

	user := User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashed),
	}

	if err := CreateUser(&user); err != nil {
		if errors.Is(err, ErrUserExists) {
			http.Error(w, "User with this email or username already exists", http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to create user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Auto-login after signup.
	token, err := h.Tokens.IssueToken(user.ID, user.Username)
	if err != nil {
		http.Error(w, "Failed to issue token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(tokenResponse{
		Message:     "User created successfully and logged in",
		User:        &user,
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	// One indistinguishable error for unknown email and wrong password, so
	// the endpoint can't be used to probe which emails exist.
	user, err := FindUserByEmail(folder.String(strings.TrimSpace(req.Email)))
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "Invalid credentials", http.StatusBadRequest)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		http.Error(w, "Invalid credentials", http.StatusBadRequest)
		return
	}

	token, err := h.Tokens.IssueToken(user.ID, user.Username)
	if err != nil {
		http.Error(w, "Failed to issue token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

type meResponse struct {
	Sub      string `json:"sub"`
	Username string `json:"username"`
}

// MeHandler echoes the identity the middleware decoded from the token; no
// DB round-trip.
func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing user ID in context", http.StatusInternalServerError)
		return
	}
	username, _ := utils.GetUsernameFromContext(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(meResponse{Sub: userID, Username: username})
}
