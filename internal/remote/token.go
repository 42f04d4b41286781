package remote

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InspectToken parses the bearer token without verifying its signature and
// warns when it is expired or close to expiring. The case service verifies
// the signature; this is an early operator heads-up only.
func InspectToken(token string, logger *zap.Logger) {
	if token == "" {
		logger.Warn("no case service token configured, pushes will be rejected")
		return
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// Opaque tokens are allowed, nothing to inspect.
		return
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return
	}

	remaining := time.Until(expiry.Time)
	switch {
	case remaining <= 0:
		logger.Error("case service token is expired", zap.Time("expired_at", expiry.Time))
	case remaining < 7*24*time.Hour:
		logger.Warn("case service token expires soon",
			zap.Time("expires_at", expiry.Time),
			zap.Duration("remaining", remaining))
	}
}

func parseCaseID(raw string) (uuid.UUID, error) {
	return uuid.Parse(raw)
}
