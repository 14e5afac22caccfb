package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gatehouse/logger"
)

var (
	// SecretKey signs session tokens. Overridden from config at startup.
	SecretKey = []byte("gatehouse-dev-key-change-in-prod")
	// TokenTTL bounds how long an issued session stays valid.
	TokenTTL = 30 * 24 * time.Hour
)

var (
	ErrRegistrationClosed = errors.New("registration is closed: an account already exists")
	ErrUnknownUser        = errors.New("unknown user")
	ErrBadPassword        = errors.New("invalid password")
)

// Configure applies the signing secret and session lifetime from config.
func Configure(secret string, ttl time.Duration) {
	SecretKey = []byte(secret)
	TokenTTL = ttl
}

type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type contextKey string

const userKey contextKey = "user"

// UserFrom returns the username Protect stored on the request context.
func UserFrom(r *http.Request) string {
	u, _ := r.Context().Value(userKey).(string)
	return u
}

// Register creates the server's single account. Once any user exists
// further registrations are refused.
func Register(creds Credentials) error {
	if err := creds.checkForRegister(); err != nil {
		return err
	}

	var count int
	err := DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	if count > 0 {
		return ErrRegistrationClosed
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = DB.Exec("INSERT INTO users (username, password_hash) VALUES (?, ?)", creds.Username, string(hashedPassword))
	if err != nil {
		return fmt.Errorf("could not create user: %w", err)
	}

	logger.Info("user %s registered", creds.Username)
	return nil
}

// GetAuthConfig reports whether the register form should be offered.
func GetAuthConfig() (map[string]bool, error) {
	var count int
	err := DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return nil, err
	}
	return map[string]bool{
		"registration_allowed": count == 0,
	}, nil
}

// Login checks the credentials and returns a signed session token.
func Login(creds Credentials) (string, error) {
	if err := creds.check(); err != nil {
		return "", err
	}

	var storedHash string
	err := DB.QueryRow("SELECT password_hash FROM users WHERE username = ?", creds.Username).Scan(&storedHash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrUnknownUser
	} else if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(creds.Password)); err != nil {
		logger.Warn("failed login attempt for %s", creds.Username)
		return "", ErrBadPassword
	}

	now := time.Now()
	claims := &Claims{
		Username: creds.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(SecretKey)
	if err != nil {
		return "", err
	}

	logger.Info("user %s logged in", creds.Username)
	return tokenString, nil
}

func parseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return SecretKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// Protect only lets requests with a valid session cookie through.
func Protect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("token")
		if err != nil {
			if errors.Is(err, http.ErrNoCookie) {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		claims, err := parseToken(cookie.Value)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, claims.Username)
		next(w, r.WithContext(ctx))
	}
}

func HandleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := Register(creds); err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrRegistrationClosed):
			status = http.StatusForbidden
		case errors.Is(err, errEmptyCredentials), errors.Is(err, errWeakPassword):
			status = http.StatusBadRequest
		}
		http.Error(w, "Registration failed: "+err.Error(), status)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	token, err := Login(creds)
	if err != nil {
		http.Error(w, "Login failed: "+err.Error(), http.StatusUnauthorized)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(TokenTTL),
		HttpOnly: true,
		Path:     "/",
	})
	w.WriteHeader(http.StatusOK)
}

// HandleMe reports who the session cookie belongs to. The frontend polls
// this to decide whether a visitor is signed in.
func HandleMe(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("token")
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	claims, err := parseToken(cookie.Value)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"username": claims.Username,
	})
}

func HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("token"); err == nil {
		if claims, err := parseToken(cookie.Value); err == nil {
			logger.Info("user %s logged out", claims.Username)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Expires:  time.Now().Add(-1 * time.Hour),
		HttpOnly: true,
		Path:     "/",
	})
	w.WriteHeader(http.StatusOK)
}

func HandleAuthConfig(w http.ResponseWriter, r *http.Request) {
	config, err := GetAuthConfig()
	if err != nil {
		http.Error(w, "Failed to get auth config", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(config)
}
