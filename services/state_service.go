package services

import (
	"context"
	"orcado_server/lib"
	"orcado_server/structs"
	"time"

	"github.com/MonkyMars/gecho"
)

const oauthStatePrefix = "bling:oauth:state:"

// nonceStore is the slice of cache behavior the guard needs; satisfied by
// CacheService and by test fakes.
type nonceStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	GetDel(ctx context.Context, key string) (string, error)
}

// StateService is the anti-CSRF guard for the Bling OAuth flow. Every
// authorize redirect gets a fresh nonce; the callback must present it back
// within the TTL window, and presenting it consumes it.
type StateService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	store  nonceStore
}

func NewStateService(logger *gecho.Logger, cfg *structs.Config, store nonceStore) *StateService {
	return &StateService{
		logger: logger,
		cfg:    cfg,
		store:  store,
	}
}

// Issue generates a random nonce and stores it with the configured TTL.
func (ss *StateService) Issue(ctx context.Context) (string, error) {
	state, err := lib.GenerateOauthState()
	if err != nil {
		return "", err
	}

	if err := ss.store.Set(ctx, oauthStatePrefix+state, time.Now().Format(time.RFC3339), ss.cfg.Bling.StateTTL); err != nil {
		ss.logger.Error("Failed to store OAuth state", gecho.Field("error", err))
		return "", err
	}

	return state, nil
}

// Consume removes the nonce and reports whether it was still valid. A nonce
// is single-use: the read deletes it, so a second call with the same value
// returns false. Expired nonces have already been evicted and also return
// false.
func (ss *StateService) Consume(ctx context.Context, state string) (bool, error) {
	if state == "" {
		return false, nil
	}

	val, err := ss.store.GetDel(ctx, oauthStatePrefix+state)
	if err != nil {
		return false, err
	}

	return val != "", nil
}
