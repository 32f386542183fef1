// Package redis implementa el caché de stock actual sobre Redis (go-redis v9).
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tekeliveli/stoktakip/internal/application/inventory"
	"github.com/tekeliveli/stoktakip/pkg/config"
	"github.com/tekeliveli/stoktakip/pkg/logger"
)

const (
	stockKeyPrefix   = "stock:"
	versionKeyPrefix = "stock:ver:"
)

// setIfVersionScript escribe el stock solo si la versión del material sigue siendo ARGV[1].
// Una versión ausente cuenta como 0.
var setIfVersionScript = redis.NewScript(`
local current = redis.call('GET', KEYS[2])
if not current then
	current = '0'
end

if current == ARGV[1] then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
	return 1
end

return 0
`)

// invalidateScript sube la versión y borra la entrada en un solo paso.
var invalidateScript = redis.NewScript(`
redis.call('INCR', KEYS[2])
redis.call('DEL', KEYS[1])
return 1
`)

var _ inventory.StockCache = (*StockCache)(nil)

// StockCache guarda el stock actual por material con TTL. Redis nunca es la fuente
// de verdad: un miss o un error hacen que el caso de uso lea del libro.
type StockCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewClient crea el cliente y verifica la conexión con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// NewStockCache construye el caché. log puede ser nil.
func NewStockCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *StockCache {
	if log == nil {
		log = logger.Nop()
	}
	return &StockCache{client: client, ttl: ttl, log: log}
}

// Las llaves usan hash tag {id} para caer en el mismo slot en Redis Cluster (los scripts tocan ambas).
func stockKey(materialID int64) string {
	return stockKeyPrefix + "{" + strconv.FormatInt(materialID, 10) + "}"
}

func versionKey(materialID int64) string {
	return versionKeyPrefix + "{" + strconv.FormatInt(materialID, 10) + "}"
}

// Get devuelve (stock, true, nil) en hit y (0, false, nil) en miss.
func (c *StockCache) Get(ctx context.Context, materialID int64) (int64, bool, error) {
	v, err := c.client.Get(ctx, stockKey(materialID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		c.log.Warn().Err(err).Int64("material_id", materialID).Msg("stock cache get")
		return 0, false, err
	}
	return v, true, nil
}

// Version devuelve el contador de invalidaciones del material (0 si nunca se invalidó).
func (c *StockCache) Version(ctx context.Context, materialID int64) (int64, error) {
	v, err := c.client.Get(ctx, versionKey(materialID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		c.log.Warn().Err(err).Int64("material_id", materialID).Msg("stock cache version")
		return 0, err
	}
	return v, nil
}

// SetIfVersion guarda el stock con el TTL configurado si la versión no cambió desde Version.
func (c *StockCache) SetIfVersion(ctx context.Context, materialID, version, stock int64) (bool, error) {
	keys := []string{stockKey(materialID), versionKey(materialID)}
	res, err := setIfVersionScript.Run(ctx, c.client, keys, version, stock, c.ttl.Milliseconds()).Int()
	if err != nil {
		c.log.Warn().Err(err).Int64("material_id", materialID).Msg("stock cache set")
		return false, err
	}
	return res == 1, nil
}

// Invalidate sube la versión y borra la entrada del material. Se llama tras cada escritura confirmada.
func (c *StockCache) Invalidate(ctx context.Context, materialID int64) error {
	keys := []string{stockKey(materialID), versionKey(materialID)}
	if err := invalidateScript.Run(ctx, c.client, keys).Err(); err != nil {
		c.log.Warn().Err(err).Int64("material_id", materialID).Msg("stock cache invalidate")
		return err
	}
	return nil
}
