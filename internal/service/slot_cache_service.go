package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-hospital-management/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefix for the per-doctor slot cache
	slotCacheKeyPrefix = "doctor:slots:"

	// Cached rows are only raw slot state; advisory disabled flags are
	// recomputed per request, so a short TTL is enough.
	slotCacheTTL = 2 * time.Minute
)

// SlotCacheService keeps a redis copy of each doctor's availability rows for
// the patient browse path. Every write to a doctor's calendar (add, toggle,
// bulk save, sweep deletion, booking, cancellation) invalidates the doctor's
// entry; the cache is never authoritative and all misses fall through to the
// database.
type SlotCacheService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewSlotCacheService(redisClient *redis.Client, log *logrus.Logger) *SlotCacheService {
	return &SlotCacheService{
		redisClient: redisClient,
		log:         log,
	}
}

// Get returns the cached slot rows for a doctor. The second return value is
// false on a miss or any redis failure; redis outages degrade to DB reads.
func (s *SlotCacheService) Get(ctx context.Context, doctorID uuid.UUID) ([]entity.AvailabilitySlot, bool) {
	raw, err := s.redisClient.Get(ctx, s.key(doctorID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warnf("Slot cache read failed for doctor %s: %+v", doctorID, err)
		}
		return nil, false
	}

	var slots []entity.AvailabilitySlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		s.log.Warnf("Slot cache entry corrupt for doctor %s, dropping: %+v", doctorID, err)
		s.Invalidate(ctx, doctorID)
		return nil, false
	}

	return slots, true
}

// Set stores a doctor's slot rows. Failures are logged and ignored.
func (s *SlotCacheService) Set(ctx context.Context, doctorID uuid.UUID, slots []entity.AvailabilitySlot) {
	raw, err := json.Marshal(slots)
	if err != nil {
		s.log.Warnf("Slot cache marshal failed for doctor %s: %+v", doctorID, err)
		return
	}

	if err := s.redisClient.Set(ctx, s.key(doctorID), raw, slotCacheTTL).Err(); err != nil {
		s.log.Warnf("Slot cache write failed for doctor %s (non-fatal): %+v", doctorID, err)
	}
}

// Invalidate drops a doctor's cache entry after any calendar write.
func (s *SlotCacheService) Invalidate(ctx context.Context, doctorID uuid.UUID) {
	if err := s.redisClient.Del(ctx, s.key(doctorID)).Err(); err != nil {
		s.log.Warnf("Slot cache invalidation failed for doctor %s (non-fatal): %+v", doctorID, err)
	}
}

func (s *SlotCacheService) key(doctorID uuid.UUID) string {
	return fmt.Sprintf("%s%s", slotCacheKeyPrefix, doctorID.String())
}
