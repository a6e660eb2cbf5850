package token

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token purposes. Each purpose carries its own lifetime and a purpose
// claim so a token minted for one flow cannot be replayed in another.
const (
	PurposeAccess   = "access"
	PurposeRegister = "register"
	PurposeReset    = "reset"
)

const (
	accessTokenTTL   = 30 * time.Minute
	registerTokenTTL = 7 * 24 * time.Hour
	resetTokenTTL    = 1 * time.Hour
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrWrongPurpose = errors.New("token purpose mismatch")
)

// tokenConfig holds cached signing configuration to avoid reading env
// vars on every request.
type tokenConfig struct {
	secret []byte
	issuer string
}

var (
	cachedConfig *tokenConfig
	configOnce   sync.Once
)

// InitTokenConfig initializes signing configuration from environment
// variables. Called lazily on first use if not called at startup.
func InitTokenConfig() {
	configOnce.Do(func() {
		cachedConfig = &tokenConfig{
			issuer: "cooplink",
		}
		if secret := os.Getenv("JWT_SECRET"); secret != "" {
			cachedConfig.secret = []byte(secret)
		}
		if issuer := os.Getenv("JWT_ISSUER"); issuer != "" {
			cachedConfig.issuer = issuer
		}
	})
}

func getConfig() *tokenConfig {
	InitTokenConfig()
	return cachedConfig
}

// ResetTokenConfigForTesting resets the cached config to allow
// re-initialization. This should ONLY be used in tests.
func ResetTokenConfigForTesting() {
	cachedConfig = nil
	configOnce = sync.Once{}
}

// Claims is the claim set carried by every portal token.
type Claims struct {
	jwt.RegisteredClaims
	MemberNo string `json:"memberNo"`
	Purpose  string `json:"purpose"`
}

func ttlFor(purpose string) (time.Duration, error) {
	switch purpose {
	case PurposeAccess:
		return accessTokenTTL, nil
	case PurposeRegister:
		return registerTokenTTL, nil
	case PurposeReset:
		return resetTokenTTL, nil
	default:
		return 0, fmt.Errorf("unknown token purpose %q", purpose)
	}
}

// Mint signs a token for the given member and purpose.
func Mint(memberNo, purpose string) (string, error) {
	cfg := getConfig()
	if len(cfg.secret) == 0 {
		return "", errors.New("JWT_SECRET is not configured")
	}

	ttl, err := ttlFor(purpose)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    cfg.issuer,
			Subject:   memberNo,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		MemberNo: memberNo,
		Purpose:  purpose,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cfg.secret)
}

// Verify parses and validates a token string, requiring the given
// purpose. Accepts a bare token or an Authorization header value.
func Verify(tokenString, purpose string) (*Claims, error) {
	cfg := getConfig()
	if len(cfg.secret) == 0 {
		return nil, errors.New("JWT_SECRET is not configured")
	}

	tokenString = stripBearerPrefix(tokenString)
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return cfg.secret, nil
	}, jwt.WithIssuer(cfg.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != purpose {
		return nil, ErrWrongPurpose
	}
	if claims.MemberNo == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func stripBearerPrefix(tokenString string) string {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	return strings.TrimSpace(tokenString)
}
