package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/clubhub/clubhub-api/internal/core/domain"
	"github.com/clubhub/clubhub-api/internal/core/ports"
)

// idemClaim is what a create request learned from the idempotency store.
type idemClaim struct {
	scope, key string
	priorID    int64 // set when an earlier request already created the resource
	held       bool  // this request owns the key and must settle it
}

// claimKey reserves key before anything is written. A store failure is logged
// and the request proceeds without idempotency.
func claimKey(ctx context.Context, store ports.IdempotencyStore, log zerolog.Logger, scope, key string) (idemClaim, error) {
	claim := idemClaim{scope: scope, key: key}
	if key == "" || store == nil {
		return claim, nil
	}

	id, reserved, err := store.Reserve(ctx, scope, key)
	switch {
	case err != nil:
		log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency reservation failed, creating anyway")
	case reserved:
		claim.held = true
	case id == 0:
		return claim, domain.ErrIdempotencyKeyInUse
	default:
		claim.priorID = id
	}
	return claim, nil
}

// settle records the created id, or frees the key when id is 0.
func (c idemClaim) settle(ctx context.Context, store ports.IdempotencyStore, log zerolog.Logger, id int64) {
	if !c.held {
		return
	}
	var err error
	if id == 0 {
		err = store.Release(ctx, c.scope, c.key)
	} else {
		err = store.Remember(ctx, c.scope, c.key, id)
	}
	if err != nil {
		log.Warn().Err(err).Str("idempotency_key", c.key).Msg("failed to settle idempotency key")
	}
}
