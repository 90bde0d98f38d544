package service

import (
	"context"

	"lifeguard/infras/kafka"
	"lifeguard/internal/domains/booking/model"
	"lifeguard/shared"
	"lifeguard/shared/cache"

	"github.com/rs/zerolog/log"
)

// PublishEvent sends a lifecycle event. Failures are logged only.
func PublishEvent(ctx context.Context, client kafka.Client, topic string, event model.Event) {
	err := client.SendMessages(ctx, topic, kafka.Message{
		Key:   event.BookingID,
		Value: event,
	})
	if err != nil {
		log.Error().Err(err).Str("event", event.Type).Str("booking_id", event.BookingID).Msg("failed to publish booking event")
	}
}

// Invalidate drops every cached view that may contain booking.
func Invalidate(ctx context.Context, redisCache cache.RedisCache, booking model.Booking) {
	if err := redisCache.Delete(ctx, shared.BuildCacheKey(model.CacheGet, booking.ID)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking from cache")
	}

	if err := redisCache.Delete(ctx, shared.BuildCacheKey(model.CacheGet, cacheOrderPart, booking.OrderID)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking from cache")
	}

	shared.InvalidateCaches(ctx, redisCache, model.CacheGetAll)
	shared.InvalidateCaches(ctx, redisCache, model.CacheCount)
}
