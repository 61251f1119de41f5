package app

import (
	"time"

	"habit-store/internal/domain/repository"
	domainservice "habit-store/internal/domain/service"
	"habit-store/internal/infrastructure/guest"
	"habit-store/internal/infrastructure/memory"
	"habit-store/internal/infrastructure/postgres"
	infraredis "habit-store/internal/infrastructure/redis"
	"habit-store/internal/service"
	"habit-store/internal/transport/http/middleware"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// storeResolver maps a caller identity to services bound to the right
// backend: PostgreSQL for authenticated users, a session-scoped
// key-value store for guests. This is the single place where the
// guest/account split exists; everything below it is backend-agnostic.
type storeResolver struct {
	pool        *pgxpool.Pool
	redisClient *redis.Client
	localStore  *memory.Store
	guestTTL    time.Duration
	producer    service.EventPublisher
}

func newStoreResolver(pool *pgxpool.Pool, redisClient *redis.Client, guestTTL time.Duration, producer service.EventPublisher) *storeResolver {
	return &storeResolver{
		pool:        pool,
		redisClient: redisClient,
		localStore:  memory.NewStore(),
		guestTTL:    guestTTL,
		producer:    producer,
	}
}

func (r *storeResolver) HabitService(identity middleware.Identity) domainservice.HabitService {
	if identity.IsGuest() {
		repo := guest.NewHabitRepository(r.guestKV(identity.GuestSession))
		return service.NewHabitService(repo, r.producer, "guest:"+identity.GuestSession)
	}

	repo := postgres.NewHabitRepository(r.pool, identity.UserID)
	return service.NewHabitService(repo, r.producer, identity.UserID)
}

func (r *storeResolver) SettingsService(identity middleware.Identity) domainservice.SettingsService {
	if identity.IsGuest() {
		return service.NewSettingsService(r.guestKV(identity.GuestSession))
	}
	return service.NewSettingsService(r.userKV(identity.UserID))
}

func (r *storeResolver) guestKV(sessionID string) repository.KeyValueStore {
	if r.redisClient != nil {
		return infraredis.NewGuestKVStore(r.redisClient, sessionID, r.guestTTL)
	}
	return r.localStore.Scoped("guest:" + sessionID + ":")
}

func (r *storeResolver) userKV(userID string) repository.KeyValueStore {
	if r.redisClient != nil {
		return infraredis.NewUserKVStore(r.redisClient, userID)
	}
	return r.localStore.Scoped("user:" + userID + ":")
}
