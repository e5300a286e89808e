package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/eventflow/internal/client/models"
	"github.com/dmitrijs2005/eventflow/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// ErrDecode marks a credential that cannot be turned into claims. It wraps
// common.ErrInvalidToken or common.ErrTokenExpired with the specific cause.
var ErrDecode = errors.New("credential decode failed")

// Decoder turns a credential into claims.
type Decoder interface {
	Decode(credential string) (models.Claims, error)
}

// tokenClaims is the claim set the API issues: {sub, role, exp}.
type tokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// JWTDecoder reads claims from a JWT without verifying its signature; the
// client holds no key and the server re-validates every call. Expiry is
// still enforced so a stale credential is not restored on startup.
type JWTDecoder struct {
	parser *jwt.Parser
	now    func() time.Time
}

func NewJWTDecoder() *JWTDecoder {
	return &JWTDecoder{parser: jwt.NewParser(), now: time.Now}
}

func (d *JWTDecoder) Decode(credential string) (models.Claims, error) {
	var c tokenClaims
	if _, _, err := d.parser.ParseUnverified(credential, &c); err != nil {
		return models.Claims{}, fmt.Errorf("%w: %w: %v", ErrDecode, common.ErrInvalidToken, err)
	}

	if c.ExpiresAt != nil && !d.now().Before(c.ExpiresAt.Time) {
		return models.Claims{}, fmt.Errorf("%w: %w", ErrDecode, common.ErrTokenExpired)
	}

	if c.Subject == "" {
		return models.Claims{}, fmt.Errorf("%w: %w: missing sub", ErrDecode, common.ErrInvalidToken)
	}

	role, ok := models.ParseRole(c.Role)
	if !ok {
		return models.Claims{}, fmt.Errorf("%w: %w: unknown role %q", ErrDecode, common.ErrInvalidToken, c.Role)
	}

	return models.Claims{Subject: c.Subject, Role: role}, nil
}
