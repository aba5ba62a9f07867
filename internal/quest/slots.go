package quest

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/sandeepkv93/questd/internal/model"
	"github.com/sandeepkv93/questd/internal/storage"
)

// SlotsKey is the storage key for the reminder schedule.
const SlotsKey = "notification_slots"

// SlotStore persists the weekly reminder slots, seeding the defaults
// (10:00 and 21:00 daily) on first run.
type SlotStore struct {
	mu     sync.Mutex
	kv     storage.KV
	logger *zap.Logger
}

func NewSlotStore(kv storage.KV, logger *zap.Logger) *SlotStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlotStore{kv: kv, logger: logger}
}

func (s *SlotStore) Load(ctx context.Context) ([]model.ReminderSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var slots []model.ReminderSlot
	found, err := s.kv.Load(ctx, SlotsKey, &slots)
	if err != nil {
		s.logger.Warn("loading reminder slots", zap.Error(err))
		found = false
	}
	// A stored slot that fails validation is as untrustworthy as a
	// malformed row: discard the whole schedule and re-seed.
	if found {
		for _, slot := range slots {
			if vErr := slot.Validate(); vErr != nil {
				s.logger.Warn("discarding invalid stored reminder slots", zap.String("slot_id", slot.ID), zap.Error(vErr))
				found = false
				break
			}
		}
	}
	if !found {
		slots = model.DefaultReminderSlots()
		if err := s.kv.Save(ctx, SlotsKey, slots); err != nil {
			s.logger.Error("seeding reminder slots", zap.Error(err))
			return slots, err
		}
	}
	return slots, nil
}

func (s *SlotStore) Save(ctx context.Context, slots []model.ReminderSlot) error {
	for _, slot := range slots {
		if err := slot.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Save(ctx, SlotsKey, slots); err != nil {
		s.logger.Error("persisting reminder slots", zap.Error(err))
		return err
	}
	return nil
}
