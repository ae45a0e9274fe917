package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"dramahub/pkg/utils"
)

const CtxClaimsKey = "auth_claims"

// Middleware rejects requests without a valid bearer token. When a repo is
// given it also checks the token version, so logout/password-change revokes
// every token signed before the bump.
func Middleware(tokens TokenService, repo *Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, tokens, repo)
		if !ok {
			utils.FailAbort(c, http.StatusUnauthorized, "Invalid or missing token")
			return
		}
		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}

// OptionalMiddleware attaches claims when a valid token is present and lets
// anonymous requests through untouched. Used by endpoints that personalize
// but do not require login.
func OptionalMiddleware(tokens TokenService, repo *Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseBearer(c, tokens, repo); ok {
			c.Set(CtxClaimsKey, claims)
		}
		c.Next()
	}
}

func parseBearer(c *gin.Context, tokens TokenService, repo *Repo) (*Claims, bool) {
	h := c.GetHeader("Authorization")
	if h == "" || !strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return nil, false
	}

	raw := strings.TrimSpace(h[len("Bearer "):])
	claims, err := tokens.Parse(raw)
	if err != nil {
		return nil, false
	}

	if repo != nil {
		currentVersion, err := repo.GetTokenVersion(c.Request.Context(), claims.UserID)
		if err != nil || currentVersion != claims.TokenVersion {
			return nil, false
		}
	}
	return claims, true
}

func MustGetClaims(c *gin.Context) *Claims {
	v, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}
