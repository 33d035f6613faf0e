package auth

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed validity window of a session token.
const TokenTTL = 30 * 24 * time.Hour

// MaxIdentityClaims bounds how many attributes besides email a session may carry.
const MaxIdentityClaims = 32

// reservedClaims never come from the posted identity.
var reservedClaims = []string{"email", "iss", "sub", "aud", "exp", "nbf", "iat", "jti"}

// Identity is what a session token vouches for. Email is the owner key;
// Claims holds whatever else was signed in alongside it.
type Identity struct {
	Email  string         `json:"email" validate:"required,email"`
	Claims map[string]any `json:"-"`
}

func (i *Identity) UnmarshalJSON(data []byte) error {
	var fields struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range reservedClaims {
		delete(raw, k)
	}

	i.Email = fields.Email
	i.Claims = nil
	if len(raw) > 0 {
		i.Claims = raw
	}
	return nil
}

// Claim returns a signed attribute other than email.
func (i *Identity) Claim(name string) (any, bool) {
	v, ok := i.Claims[name]
	return v, ok
}

// SessionClaims flattens the identity and the registered claims into one
// JWT payload. Registered claims and email win over identity attributes.
type SessionClaims struct {
	Identity
	jwt.RegisteredClaims
}

func (c SessionClaims) MarshalJSON() ([]byte, error) {
	registered, err := json.Marshal(c.RegisteredClaims)
	if err != nil {
		return nil, err
	}
	out := make(map[string]json.RawMessage, len(c.Claims)+4)
	if err := json.Unmarshal(registered, &out); err != nil {
		return nil, err
	}
	for k, v := range c.Claims {
		if _, taken := out[k]; taken {
			continue
		}
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("claim %q: %w", k, err)
		}
		out[k] = encoded
	}
	email, err := json.Marshal(c.Email)
	if err != nil {
		return nil, err
	}
	out["email"] = email
	return json.Marshal(out)
}

func (c *SessionClaims) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &c.RegisteredClaims); err != nil {
		return err
	}
	return json.Unmarshal(data, &c.Identity)
}

type TokenIssuer interface {
	Issue(identity Identity) (string, error)
}

type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}

// TokenManager signs and verifies HS256 session tokens with a shared secret.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    TokenTTL,
		now:    time.Now,
	}, nil
}

// WithClock returns a copy of m that reads time from now.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	clone := *m
	clone.now = now
	return &clone
}

func (m *TokenManager) Issue(identity Identity) (string, error) {
	issuedAt := m.now()
	claims := SessionClaims{
		Identity: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

func (m *TokenManager) Verify(token string) (*Identity, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	identity := claims.Identity
	return &identity, nil
}
