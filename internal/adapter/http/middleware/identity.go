// Package middleware holds the gin middleware of the billing API.
package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"project_billing/internal/domain/entities"
	"project_billing/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Identity headers set by the trusted upstream gateway when no JWT secret is configured.
const (
	HeaderBusinessID  = "X-Business-ID"
	HeaderActorID     = "X-Actor-ID"
	HeaderActorRole   = "X-Actor-Role"
	HeaderPermissions = "X-Actor-Permissions"
)

const actorKey = "billing.actor"

var errUnauthorized = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing or invalid bearer token", http.StatusUnauthorized)

// Claims is the bearer token payload. The subject is the actor id.
type Claims struct {
	BusinessID  string   `json:"business_id"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// Identity resolves the calling actor. With an empty secret the actor is read from the
// X-Actor-* and X-Business-ID headers, role included, with no verification: that mode
// assumes an authenticating gateway in front that strips client copies of those headers
// and sets its own. config.Config.Validate refuses it in prod unless
// TRUST_GATEWAY_HEADERS is set. With a secret an HS256 bearer token is required and the
// headers are ignored. The middleware only identifies; role checks happen in the use cases.
func Identity(jwtSecret string) gin.HandlerFunc {
	if jwtSecret == "" {
		return func(c *gin.Context) {
			c.Set(actorKey, actorFromHeaders(c))
			c.Next()
		}
	}
	key := []byte(jwtSecret)
	return func(c *gin.Context) {
		actor, err := actorFromToken(c.GetHeader("Authorization"), key)
		if err != nil {
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// ActorFrom returns the actor stored by Identity, or the zero Actor.
func ActorFrom(c *gin.Context) entities.Actor {
	if v, ok := c.Get(actorKey); ok {
		if a, ok := v.(entities.Actor); ok {
			return a
		}
	}
	return entities.Actor{}
}

// IssueToken signs a token for actor, valid for ttl.
func IssueToken(jwtSecret string, actor entities.Actor, ttl time.Duration) (string, error) {
	if jwtSecret == "" {
		return "", errors.New("JWT_SECRET not set")
	}
	now := time.Now()
	perms := make([]string, 0, len(actor.Permissions))
	for _, p := range actor.Permissions {
		perms = append(perms, string(p))
	}
	claims := Claims{
		BusinessID:  actor.BusinessID,
		Role:        actor.Role.String(),
		Permissions: perms,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
}

func actorFromHeaders(c *gin.Context) entities.Actor {
	return entities.Actor{
		ID:          strings.TrimSpace(c.GetHeader(HeaderActorID)),
		BusinessID:  strings.TrimSpace(c.GetHeader(HeaderBusinessID)),
		Role:        entities.ParseRole(c.GetHeader(HeaderActorRole)),
		Permissions: parsePermissions(strings.Split(c.GetHeader(HeaderPermissions), ",")),
	}
}

func actorFromToken(header string, key []byte) (entities.Actor, error) {
	raw := strings.TrimSpace(header)
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		raw = strings.TrimSpace(raw[7:])
	}
	if raw == "" {
		return entities.Actor{}, errors.New("missing token")
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return entities.Actor{}, err
	}

	return entities.Actor{
		ID:          claims.Subject,
		BusinessID:  strings.TrimSpace(claims.BusinessID),
		Role:        entities.ParseRole(claims.Role),
		Permissions: parsePermissions(claims.Permissions),
	}, nil
}

func parsePermissions(values []string) []entities.Permission {
	var out []entities.Permission
	for _, v := range values {
		v = strings.ToUpper(strings.TrimSpace(v))
		if v != "" {
			out = append(out, entities.Permission(v))
		}
	}
	return out
}
