package auth

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// JWTProvider authenticates via a Bearer token instead of identity
// headers. It implements the same Provider interface so the two
// schemes are interchangeable behind config.
type JWTProvider struct{ hmac []byte }

func NewJWTProvider(secret string) *JWTProvider { return &JWTProvider{hmac: []byte(secret)} }

type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func (p *JWTProvider) IssueToken(userID, username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    "quizforge",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(8 * time.Hour)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(p.hmac)
}

func (p *JWTProvider) Authenticate(r *http.Request) (Identity, error) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return Identity{}, ErrUnauthenticated
	}
	token, err := jwt.ParseWithClaims(strings.TrimPrefix(h, "Bearer "), &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return p.hmac, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrUnauthenticated
	}
	c, ok := token.Claims.(*Claims)
	if !ok || c.Subject == "" || c.Username == "" {
		return Identity{}, ErrUnauthenticated
	}
	return Identity{UserID: c.Subject, Username: c.Username}, nil
}

// TokenHandler is a dev/offline login surface: it checks the supplied
// password against the configured bcrypt hash and issues a JWT.
//
// POST /auth/token {"username": "...", "password": "..."}
func TokenHandler(p *JWTProvider, devUser, devPassHash string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Username != devUser ||
			bcrypt.CompareHashAndPassword([]byte(devPassHash), []byte(req.Password)) != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		tok, err := p.IssueToken(req.Username, req.Username)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": tok})
	}
}
