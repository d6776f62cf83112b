package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// CredentialRepository persists session credentials under a storage key.
type CredentialRepository interface {
	Load(ctx context.Context, key string) (string, bool, error)
	Save(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type redisCredentialRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCredentialRepository stores credentials as redis strings. A zero ttl keeps them until logout.
func NewRedisCredentialRepository(client *redis.Client, ttl time.Duration) CredentialRepository {
	return &redisCredentialRepository{client: client, ttl: ttl}
}

func (r *redisCredentialRepository) Load(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *redisCredentialRepository) Save(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, r.ttl).Err()
}

func (r *redisCredentialRepository) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

type postgresCredentialRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCredentialRepository stores credentials in the session_credentials table.
func NewPostgresCredentialRepository(pool *pgxpool.Pool) CredentialRepository {
	return &postgresCredentialRepository{pool: pool}
}

func (r *postgresCredentialRepository) Load(ctx context.Context, key string) (string, bool, error) {
	const query = `SELECT credential FROM session_credentials WHERE storage_key=$1`

	var credential string
	if err := r.pool.QueryRow(ctx, query, key).Scan(&credential); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return credential, true, nil
}

func (r *postgresCredentialRepository) Save(ctx context.Context, key, value string) error {
	const query = `
        INSERT INTO session_credentials (storage_key, credential)
        VALUES ($1, $2)
        ON CONFLICT (storage_key) DO UPDATE SET credential=EXCLUDED.credential, updated_at=NOW()`

	_, err := r.pool.Exec(ctx, query, key, value)
	return err
}

func (r *postgresCredentialRepository) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM session_credentials WHERE storage_key=$1`

	_, err := r.pool.Exec(ctx, query, key)
	return err
}

type memoryCredentialRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryCredentialRepository keeps credentials for the life of the process.
func NewMemoryCredentialRepository() CredentialRepository {
	return &memoryCredentialRepository{values: make(map[string]string)}
}

func (r *memoryCredentialRepository) Load(_ context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	val, ok := r.values[key]
	return val, ok, nil
}

func (r *memoryCredentialRepository) Save(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

func (r *memoryCredentialRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, key)
	return nil
}
