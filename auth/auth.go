// Package auth provides credential verification and JWT session tokens
// for the HTTP API. Authentication is optional: when disabled every
// request proceeds as an anonymous user.
package auth

import (
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillsenselab/scribe/errors"
)

const (
	// AnonymousUser names the identity used when authentication is disabled.
	AnonymousUser = "anonymous"

	defaultTokenTTL = 12 * time.Hour
	bcryptCost      = 12
)

// Config configures the authentication service.
type Config struct {
	// Enabled turns credential checks on. When false, Login and Verify
	// always succeed.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	// Username is the single accepted username.
	Username string `json:"username" yaml:"username" mapstructure:"username"`
	// PasswordHash is the bcrypt hash of the accepted password. Takes
	// precedence over Password.
	PasswordHash string `json:"password_hash" yaml:"password_hash" mapstructure:"password_hash"`
	// Password is a plaintext password, hashed at startup. Meant for
	// development setups only.
	Password string `json:"password" yaml:"password" mapstructure:"password"`
	// JWTSecret signs session tokens (HS256).
	JWTSecret string `json:"jwt_secret" yaml:"jwt_secret" mapstructure:"jwt_secret"`
	// TokenTTL is the session token lifetime.
	TokenTTL time.Duration `json:"token_ttl" yaml:"token_ttl" mapstructure:"token_ttl"`
}

// Claims is the JWT payload for a session token.
type Claims struct {
	gojwt.RegisteredClaims
	Username string `json:"username"`
}

// Service verifies credentials and issues session tokens.
type Service struct {
	cfg  Config
	hash []byte
}

// NewService creates an authentication service. With Enabled set, a
// username, a password (or hash) and a JWT secret are required.
func NewService(cfg Config) (*Service, error) {
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if !cfg.Enabled {
		return &Service{cfg: cfg}, nil
	}

	if cfg.Username == "" {
		return nil, fmt.Errorf("auth: username is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("auth: jwt secret is required")
	}

	var hash []byte
	switch {
	case cfg.PasswordHash != "":
		hash = []byte(cfg.PasswordHash)
	case cfg.Password != "":
		h, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("auth: hash password: %w", err)
		}
		hash = h
	default:
		return nil, fmt.Errorf("auth: password or password hash is required")
	}

	return &Service{cfg: cfg, hash: hash}, nil
}

// Enabled reports whether credential checks are active.
func (s *Service) Enabled() bool { return s.cfg.Enabled }

// Login checks the credentials and returns a signed session token.
// With authentication disabled any credentials are accepted.
func (s *Service) Login(username, password string) (string, error) {
	if !s.cfg.Enabled {
		if username == "" {
			username = AnonymousUser
		}
		return s.sign(username)
	}

	if username != s.cfg.Username {
		return "", errors.Unauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(password)); err != nil {
		return "", errors.Unauthorized("invalid credentials")
	}
	return s.sign(username)
}

// Verify parses and validates a session token, returning its claims.
// With authentication disabled an anonymous identity is returned for
// any input, including an empty token.
func (s *Service) Verify(token string) (*Claims, error) {
	if !s.cfg.Enabled {
		return &Claims{Username: AnonymousUser}, nil
	}

	claims := &Claims{}
	parsed, err := gojwt.ParseWithClaims(token, claims, s.keyFunc,
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, errors.InvalidToken()
	}
	return claims, nil
}

func (s *Service) sign(username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
		Username: username,
	}
	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

func (s *Service) keyFunc(token *gojwt.Token) (interface{}, error) {
	if token.Method.Alg() != gojwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("auth: unexpected signing method: %s", token.Method.Alg())
	}
	return []byte(s.cfg.JWTSecret), nil
}
