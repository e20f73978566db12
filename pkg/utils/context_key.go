package utils

import (
	"context"

	"creditdesk/internal/models"
)

type ContextKey string

const IdentityContextKey = ContextKey("identity")

// IdentityFromContext returns the identity the JWT middleware stored for this
// request, and false when the request carried no valid session.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(IdentityContextKey).(models.Identity)
	return identity, ok
}
