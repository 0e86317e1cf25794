// Package redis guarda los códigos de recuperación en Redis cuando RESET_TOKEN_STORE=redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/scoreking-api/internal/domain/entity"
	"github.com/jhoicas/scoreking-api/internal/domain/repository"
	"github.com/jhoicas/scoreking-api/pkg/config"
)

var _ repository.PasswordResetTokenRepository = (*ResetTokenStore)(nil)

const keyPrefix = "pwreset:"

// ResetTokenStore un key por (usuario, código) con TTL igual a la vigencia del código.
// Consume usa GETDEL, que es atómico en el servidor.
type ResetTokenStore struct {
	rdb goredis.Cmdable
}

// NewClient abre el cliente y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// NewResetTokenStore construye el almacén sobre un cliente (o pipeline) de go-redis.
func NewResetTokenStore(rdb goredis.Cmdable) *ResetTokenStore {
	return &ResetTokenStore{rdb: rdb}
}

func key(userID, token string) string {
	return keyPrefix + userID + ":" + token
}

// Create guarda el código; si el mismo usuario recibe dos veces el mismo código gana el último.
func (s *ResetTokenStore) Create(ctx context.Context, t *entity.PasswordResetToken) error {
	ttl := t.ExpiresAt.Sub(t.CreatedAt)
	if ttl <= 0 {
		return fmt.Errorf("redis: código ya expirado")
	}
	b, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("redis: serializar código: %w", err)
	}
	if err := s.rdb.Set(ctx, key(t.UserID, t.Token), b, ttl).Err(); err != nil {
		return fmt.Errorf("redis: guardar código: %w", err)
	}
	return nil
}

func (s *ResetTokenStore) FindValid(ctx context.Context, userID, token string, now time.Time) (*entity.PasswordResetToken, error) {
	val, err := s.rdb.Get(ctx, key(userID, token)).Bytes()
	return decodeValid(val, err, now)
}

func (s *ResetTokenStore) Consume(ctx context.Context, userID, token string, now time.Time) (bool, error) {
	val, err := s.rdb.GetDel(ctx, key(userID, token)).Bytes()
	t, err := decodeValid(val, err, now)
	if err != nil {
		return false, err
	}
	return t != nil, nil
}

// decodeValid aplica también la vigencia con now: el TTL de Redis y el reloj de la app pueden diferir.
func decodeValid(val []byte, err error, now time.Time) (*entity.PasswordResetToken, error) {
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis: leer código: %w", err)
	}
	var t entity.PasswordResetToken
	if err := json.Unmarshal(val, &t); err != nil {
		return nil, fmt.Errorf("redis: deserializar código: %w", err)
	}
	if !t.ValidAt(now) {
		return nil, nil
	}
	return &t, nil
}
