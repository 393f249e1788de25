package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/bibbank/loan-origination/internal/domain/model"
	"github.com/bibbank/loan-origination/internal/domain/port"
)

const keyPrefix = "origination:"

var _ port.ApplicationRepository = (*ApplicationRepo)(nil)

// ApplicationRepo implements port.ApplicationRepository on Redis. Each
// application is a JSON snapshot under its own key, and a per-customer set
// indexes them. Both expire after the session TTL of the last write.
type ApplicationRepo struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

// NewApplicationRepo creates a store on client. A ttl of zero keeps
// applications forever.
func NewApplicationRepo(client goredis.UniversalClient, ttl time.Duration) *ApplicationRepo {
	return &ApplicationRepo{client: client, ttl: ttl}
}

func applicationKey(id string) string { return keyPrefix + "application:" + id }

func customerKey(customerID string) string {
	return keyPrefix + "customer:" + customerID + ":applications"
}

// Save writes the snapshot inside a WATCH transaction on the application key,
// so a concurrent writer between the version read and the write aborts it.
func (r *ApplicationRepo) Save(ctx context.Context, app model.LoanApplication) error {
	key := applicationKey(app.ID())

	snapshot := app.Snapshot()
	snapshot.Version = app.Version() + 1
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal application %s: %w", app.ID(), err)
	}

	err = r.client.Watch(ctx, func(tx *goredis.Tx) error {
		stored, err := storedVersion(ctx, tx, key)
		if err != nil {
			return err
		}
		if stored != app.Version() {
			return fmt.Errorf("application %s at version %d, stored %d: %w",
				app.ID(), app.Version(), stored, model.ErrConcurrentModification)
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.ttl)
			idx := customerKey(app.CustomerID())
			pipe.SAdd(ctx, idx, app.ID())
			if r.ttl > 0 {
				pipe.Expire(ctx, idx, r.ttl)
			}
			return nil
		})
		return err
	}, key)

	if errors.Is(err, goredis.TxFailedErr) {
		return fmt.Errorf("application %s changed during save: %w", app.ID(), model.ErrConcurrentModification)
	}
	if err != nil && !errors.Is(err, model.ErrConcurrentModification) {
		return fmt.Errorf("save application %s: %w", app.ID(), err)
	}
	return err
}

func storedVersion(ctx context.Context, tx *goredis.Tx, key string) (int, error) {
	raw, err := tx.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", key, err)
	}
	var head struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return 0, fmt.Errorf("decode %s: %w", key, err)
	}
	return head.Version, nil
}

// FindByID retrieves a single application.
func (r *ApplicationRepo) FindByID(ctx context.Context, id string) (model.LoanApplication, error) {
	raw, err := r.client.Get(ctx, applicationKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return model.LoanApplication{}, fmt.Errorf("application %s: %w", id, model.ErrApplicationNotFound)
	}
	if err != nil {
		return model.LoanApplication{}, fmt.Errorf("get application %s: %w", id, err)
	}
	return decode(raw)
}

// FindByCustomerID retrieves the customer's applications that have not
// expired. Index entries whose application is gone are pruned.
func (r *ApplicationRepo) FindByCustomerID(ctx context.Context, customerID string) ([]model.LoanApplication, error) {
	idx := customerKey(customerID)
	ids, err := r.client.SMembers(ctx, idx).Result()
	if err != nil {
		return nil, fmt.Errorf("list applications of %s: %w", customerID, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	// One GET per key in a pipeline: the keys hash to different cluster
	// slots, so a single MGET would fail with CROSSSLOT.
	gets := make([]*goredis.StringCmd, len(ids))
	_, err = r.client.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
		for i, id := range ids {
			gets[i] = pipe.Get(ctx, applicationKey(id))
		}
		return nil
	})
	if err != nil && !errors.Is(err, goredis.Nil) {
		return nil, fmt.Errorf("get applications of %s: %w", customerID, err)
	}

	var (
		apps  []model.LoanApplication
		stale []any
	)
	for i, get := range gets {
		raw, err := get.Bytes()
		if errors.Is(err, goredis.Nil) {
			stale = append(stale, ids[i])
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get application %s: %w", ids[i], err)
		}
		app, err := decode(raw)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	if len(stale) > 0 {
		// Best effort; a failed prune only leaves dangling ids behind.
		_ = r.client.SRem(ctx, idx, stale...).Err()
	}
	return apps, nil
}

// Ping checks the Redis connection.
func (r *ApplicationRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func decode(raw []byte) (model.LoanApplication, error) {
	var snapshot model.ApplicationSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return model.LoanApplication{}, fmt.Errorf("decode loan application: %w", err)
	}
	return model.RestoreLoanApplication(snapshot)
}
