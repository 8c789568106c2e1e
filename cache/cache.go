package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Idempotency fast-path for checkout: idem:checkout:{key} -> order_ref.
	// The unique index on orders.idempotency_key stays the source of truth.
	KeyIdemCheckout = "idem:checkout:%s"

	// Order status cache: order_status:{order_ref} -> status string.
	KeyOrderStatus = "order_status:%s"
)

var (
	TTLIdempotency = 24 * time.Hour
	TTLStatusCache = 5 * time.Minute
)

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// ReserveCheckoutKey claims an idempotency key. Returns the previously
// stored order ref when the key was already claimed. A nil client means no
// fast path; the caller falls back to the database.
func ReserveCheckoutKey(ctx context.Context, rdb *redis.Client, key, orderRef string) (string, bool, error) {
	if rdb == nil || key == "" {
		return "", true, nil
	}
	k := fmt.Sprintf(KeyIdemCheckout, key)
	ok, err := rdb.SetNX(ctx, k, orderRef, TTLIdempotency).Result()
	if err != nil {
		return "", true, err
	}
	if ok {
		return "", true, nil
	}
	existing, err := rdb.Get(ctx, k).Result()
	if err != nil {
		return "", true, err
	}
	return existing, false, nil
}

// ReleaseCheckoutKey drops a reservation after a failed checkout so the
// client can retry with the same key.
func ReleaseCheckoutKey(ctx context.Context, rdb *redis.Client, key string) {
	if rdb == nil || key == "" {
		return
	}
	rdb.Del(ctx, fmt.Sprintf(KeyIdemCheckout, key))
}

func SetOrderStatus(ctx context.Context, rdb *redis.Client, orderRef, status string) {
	if rdb == nil {
		return
	}
	rdb.Set(ctx, fmt.Sprintf(KeyOrderStatus, orderRef), status, TTLStatusCache)
}

func GetOrderStatus(ctx context.Context, rdb *redis.Client, orderRef string) (string, bool) {
	if rdb == nil {
		return "", false
	}
	v, err := rdb.Get(ctx, fmt.Sprintf(KeyOrderStatus, orderRef)).Result()
	if err != nil {
		return "", false
	}
	return v, true
}
