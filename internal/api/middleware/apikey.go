package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/jvanelst/Investment-Dashboard-Backend/internal/api/response"
)

// timeTokenTTL bounds how long a generated time token stays valid.
const timeTokenTTL = 5 * time.Minute

// signingKey derives the fernet key used for time tokens from the shared API key.
func signingKey(apiKey string) *fernet.Key {
	sum := sha256.Sum256([]byte(apiKey))
	var k fernet.Key
	copy(k[:], sum[:])
	return &k
}

// GenerateTimeToken creates a short-lived token proving the caller held the
// API key recently. Sent alongside the key in the X-Time-Token header so a
// leaked request cannot be replayed indefinitely.
func GenerateTimeToken(apiKey string) string {
	token, err := fernet.EncryptAndSign([]byte(time.Now().UTC().Format(time.RFC3339)), signingKey(apiKey))
	if err != nil {
		log.Printf("failed to generate time token: %v", err)
		return ""
	}
	return string(token)
}

// APIKeyMiddleware guards internal endpoints with a shared API key and a
// short-lived time token. The expected key comes from the INTERNAL_API_KEY
// environment variable; requests fail with 500 when it is not configured.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := os.Getenv("INTERNAL_API_KEY")
		if expected == "" {
			response.RespondError(w, http.StatusInternalServerError, "authentication error", "Authentication not loaded")
			return
		}

		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}
		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		timeToken := r.Header.Get("X-Time-Token")
		if timeToken == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing Time token")
			return
		}
		if fernet.VerifyAndDecrypt([]byte(timeToken), timeTokenTTL, []*fernet.Key{signingKey(expected)}) == nil {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Time token is invalid or expired")
			return
		}

		next.ServeHTTP(w, r)
	})
}
