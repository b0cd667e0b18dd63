package link

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/farmpool/poold/types"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Redis reads account links kept by the account service. Keys are launcher ids in hex.
type Redis struct {
	client *redis.Client
}

func NewRedis(cfg RedisConfig) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func (r *Redis) LookupAccount(ctx context.Context, launcherID types.Bytes32) (uint64, bool, error) {
	value, err := r.client.Get(ctx, launcherID.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("looking up account of %s: %w", launcherID, err)
	}
	var account Account
	if err := json.Unmarshal(value, &account); err != nil {
		return 0, false, fmt.Errorf("%w for %s: %v", ErrMalformedAccount, launcherID, err)
	}
	return account.PUID, true, nil
}

// Link stores the account of a launcher id.
func (r *Redis) Link(ctx context.Context, launcherID types.Bytes32, puid uint64, at time.Time) error {
	value, err := json.Marshal(Account{PUID: puid, Timestamp: at.Unix()})
	if err != nil {
		return err
	}
	return r.client.Set(ctx, launcherID.String(), value, 0).Err()
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
