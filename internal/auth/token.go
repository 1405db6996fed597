package auth

import (
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Token verification and issuing failures.
var (
	ErrSigning          = errors.New("token cannot be signed")
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrMalformed        = errors.New("token malformed")
)

// TokenConfig carries the read-only signing parameters. It is built once
// at startup and shared across requests.
type TokenConfig struct {
	Issuer string
	TTL    time.Duration
	Secret string
}

// TokenManager issues and verifies HS256-signed bearer tokens.
type TokenManager struct {
	issuer string
	ttl    time.Duration
	secret []byte
	now    func() time.Time
}

// NewTokenManager builds a manager from explicit configuration.
func NewTokenManager(cfg TokenConfig) *TokenManager {
	return &TokenManager{
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
		secret: []byte(cfg.Secret),
		now:    time.Now,
	}
}

// Claims is the typed claim set carried inside a token.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Issue signs a claim set for the subject. Role tags are stored
// upper-cased. Timestamps have second precision.
func (tm *TokenManager) Issue(subject string, roles []string) (string, time.Time, error) {
	if len(tm.secret) == 0 || tm.ttl <= 0 {
		return "", time.Time{}, ErrSigning
	}

	issuedAt := tm.now()
	expiresAt := issuedAt.Add(tm.ttl)
	claims := &Claims{
		Roles: normalizeRoles(roles),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tm.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, ErrSigning
	}
	return signed, expiresAt, nil
}

// Verify decodes and validates a token string. Expiry is strict: a token
// presented at exactly its expiry instant is already expired. Segment
// decoding is strict base64url, so a signature altered only in unused
// padding bits does not alias to the original MAC.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidSignature
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now), jwt.WithIssuer(tm.issuer), jwt.WithStrictDecoding())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrMalformed
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrMalformed
	}
	return claims, nil
}

func normalizeRoles(roles []string) []string {
	normalized := make([]string, 0, len(roles))
	for _, r := range roles {
		normalized = append(normalized, strings.ToUpper(r))
	}
	return normalized
}
