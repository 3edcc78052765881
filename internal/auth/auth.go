package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mattcc18/financy-ledger/internal/config"
)

var ErrInvalidToken = errors.New("invalid token")

type contextKey struct{}

var userKey contextKey

// UserID returns the authenticated user id stored by Middleware, if any.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userKey).(string)
	return id, ok
}

// Verifier validates bearer tokens issued by the auth provider. When a JWT
// secret is configured tokens are verified locally, otherwise the provider's
// user endpoint is consulted.
type Verifier struct {
	secret  string
	baseURL string
	anonKey string
	client  *http.Client
}

func NewVerifier(cfg config.AuthConfig) *Verifier {
	return &Verifier{
		secret:  cfg.JWTSecret,
		baseURL: strings.TrimRight(cfg.URL, "/"),
		anonKey: cfg.AnonKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether any verification method is configured. With neither
// a secret nor a provider URL the API runs unauthenticated.
func (v *Verifier) Enabled() bool {
	return v.secret != "" || v.baseURL != ""
}

func (v *Verifier) Verify(ctx context.Context, token string) (string, error) {
	if v.secret != "" {
		return v.verifyLocal(token)
	}

	return v.verifyRemote(ctx, token)
}

func (v *Verifier) verifyLocal(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}

		return []byte(v.secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return sub, nil
}

func (v *Verifier) verifyRemote(ctx context.Context, token string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return "", fmt.Errorf("building auth request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", v.anonKey)

	resp, err := v.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling auth provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", ErrInvalidToken
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("auth provider returned status %d", resp.StatusCode)
	}

	var user struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", fmt.Errorf("decoding auth response: %w", err)
	}

	if user.ID == "" {
		return "", ErrInvalidToken
	}

	return user.ID, nil
}

// Middleware rejects requests without a valid bearer token. It is a no-op
// when the verifier is not configured.
func (v *Verifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !v.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		userID, err := v.Verify(r.Context(), token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, userID)))
	})
}
