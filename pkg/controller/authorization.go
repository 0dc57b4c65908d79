package controller

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Ability is the permission checked for an operation.
type Ability string

// Abilities checked by the handlers.
const (
	AbilityViewAny Ability = "viewAny"
	AbilityView    Ability = "view"
	AbilityCreate  Ability = "create"
	AbilityUpdate  Ability = "update"
	AbilityDelete  Ability = "delete"
	AbilityReorder Ability = "reorder"
)

// ClaimsKey is the gin context key holding the *Claims of an authorized request.
const ClaimsKey = "auth_claims"

// ErrUnauthorized is returned by authorizers denying a request.
var ErrUnauthorized = errors.New("unauthorized")

// Authorizer decides whether the request may perform ability. record is nil
// for viewAny and create.
type Authorizer interface {
	Authorize(c *gin.Context, ability Ability, record interface{}) error
}

// AuthorizerFunc adapts a function to Authorizer.
type AuthorizerFunc func(c *gin.Context, ability Ability, record interface{}) error

// Authorize calls f.
func (f AuthorizerFunc) Authorize(c *gin.Context, ability Ability, record interface{}) error {
	return f(c, ability, record)
}

// Claims are the JWT claims accepted by BearerAuthorizer.
type Claims struct {
	Abilities []string `json:"abilities,omitempty"`
	jwt.RegisteredClaims
}

// Can reports whether the claims grant ability. A "*" entry grants all.
func (c *Claims) Can(ability Ability) bool {
	for _, a := range c.Abilities {
		if a == "*" || a == string(ability) {
			return true
		}
	}
	return false
}

// Policy decides on abilities once the token is verified.
type Policy interface {
	Allow(claims *Claims, ability Ability, record interface{}) bool
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(claims *Claims, ability Ability, record interface{}) bool

// Allow calls f.
func (f PolicyFunc) Allow(claims *Claims, ability Ability, record interface{}) bool {
	return f(claims, ability, record)
}

// AbilityPolicy allows what the token's abilities claim grants.
var AbilityPolicy = PolicyFunc(func(claims *Claims, ability Ability, _ interface{}) bool {
	return claims.Can(ability)
})

// BearerAuthorizer verifies HS256 bearer tokens. Without a policy every
// valid token is authorized.
type BearerAuthorizer struct {
	secret []byte
	policy Policy
}

// NewBearerAuthorizer creates an authorizer for tokens signed with secret.
func NewBearerAuthorizer(secret string, policy Policy) *BearerAuthorizer {
	return &BearerAuthorizer{secret: []byte(secret), policy: policy}
}

// Authorize verifies the Authorization header and stores the claims under ClaimsKey.
func (a *BearerAuthorizer) Authorize(c *gin.Context, ability Ability, record interface{}) error {
	raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok || raw == "" {
		return fmt.Errorf("%w: missing bearer token", ErrUnauthorized)
	}

	claims, err := a.Verify(raw)
	if err != nil {
		return err
	}
	c.Set(ClaimsKey, claims)

	if a.policy != nil && !a.policy.Allow(claims, ability, record) {
		return fmt.Errorf("%w: %s denied", ErrUnauthorized, ability)
	}
	return nil
}

// Verify parses and validates a token.
func (a *BearerAuthorizer) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return claims, nil
}

// Issue signs a token for subject granting abilities for ttl.
func (a *BearerAuthorizer) Issue(subject string, abilities []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Abilities: abilities,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
