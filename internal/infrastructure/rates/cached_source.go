package rates

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/abasto-api/internal/application/ports"
)

var _ ports.RateSource = (*CachedSource)(nil)

// rateCacheKey clave única: solo se cachea la cotización oficial Bs/USD.
const rateCacheKey = "abasto:rates:bs_usd"

// CachedSource decora un RateSource con una caché Redis con TTL. Redis caído
// degrada a consultar el upstream directo; nunca es un error fatal.
type CachedSource struct {
	upstream ports.RateSource
	rdb      *redis.Client
	ttl      time.Duration
}

// NewCachedSource construye el decorador.
func NewCachedSource(upstream ports.RateSource, rdb *redis.Client, ttl time.Duration) *CachedSource {
	return &CachedSource{upstream: upstream, rdb: rdb, ttl: ttl}
}

// CurrentRate intenta la caché y cae al upstream en miss o error. El valor
// fresco se guarda con mejor esfuerzo.
func (c *CachedSource) CurrentRate(ctx context.Context) (decimal.Decimal, error) {
	if cached, err := c.rdb.Get(ctx, rateCacheKey).Result(); err == nil {
		if rate, perr := decimal.NewFromString(cached); perr == nil && rate.IsPositive() {
			return rate, nil
		}
	} else if err != redis.Nil {
		log.Warn().Err(err).Msg("rates: caché redis no disponible")
	}

	rate, err := c.upstream.CurrentRate(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if err := c.rdb.Set(ctx, rateCacheKey, rate.String(), c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("rates: no se pudo cachear la tasa")
	}
	return rate, nil
}
