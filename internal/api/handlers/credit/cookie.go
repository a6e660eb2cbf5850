package credit

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/sessions"
)

// MinSessionSecretLength is the minimum byte length for the session
// signing secret.
const MinSessionSecretLength = 32

const (
	sessionName    = "credit_session"
	sessionUserKey = "credit_user"
	sessionMaxAge  = 8 * 60 * 60
)

var (
	// Global singleton cookie store
	cookieStoreInstance *sessions.CookieStore
	cookieStoreOnce     sync.Once
	cookieStoreErr      error
)

// InitCookieStore initializes the global cookie store singleton
// Must be called once at application startup before any handlers are created
func InitCookieStore(secret string) error {
	cookieStoreOnce.Do(func() {
		if len(secret) < MinSessionSecretLength {
			cookieStoreErr = fmt.Errorf("SESSION_SECRET must be at least %d bytes for security", MinSessionSecretLength)
			return
		}
		store := sessions.NewCookieStore([]byte(secret))
		store.Options.HttpOnly = true
		store.Options.SameSite = http.SameSiteStrictMode
		store.Options.MaxAge = sessionMaxAge
		cookieStoreInstance = store
	})
	return cookieStoreErr
}

// GetCookieStore returns the global cookie store singleton
// Panics if InitCookieStore has not been called successfully
func GetCookieStore() *sessions.CookieStore {
	if cookieStoreInstance == nil {
		panic("cookie store not initialized - call InitCookieStore first")
	}
	return cookieStoreInstance
}
