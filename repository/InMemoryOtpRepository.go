package repository

import (
	"sync"
	"time"

	"umkmotion-otp/model"
)

type memOtpRepo struct {
	mu   sync.Mutex
	data map[string]*model.OtpRecord
}

// NewInMemoryOtpRepo returns the process-local store used in memory mode
// and in tests. A janitor goroutine sweeps expired records every interval
// so codes that are never verified do not accumulate forever.
func NewInMemoryOtpRepo(janitorInterval time.Duration) OtpRepository {
	repo := &memOtpRepo{
		data: make(map[string]*model.OtpRecord),
	}

	if janitorInterval > 0 {
		go func() {
			ticker := time.NewTicker(janitorInterval)
			defer ticker.Stop()
			for range ticker.C {
				_ = repo.DeleteExpired()
			}
		}()
	}

	return repo
}

func (r *memOtpRepo) Insert(rec *model.OtpRecord) error {
	cp := *rec

	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[cp.Key()] = &cp
	return nil
}

func (r *memOtpRepo) Get(key string) (*model.OtpRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.data[key]
	if !ok {
		return nil, ErrOtpNotFound
	}

	cp := *rec
	return &cp, nil
}

func (r *memOtpRepo) MarkUsed(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.data[key]
	if !ok {
		return ErrOtpNotFound
	}
	if rec.Used {
		return ErrOtpUsed
	}

	rec.Used = true
	return nil
}

func (r *memOtpRepo) DeleteExpired() error {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	for key, rec := range r.data {
		if rec.IsExpired(now) {
			delete(r.data, key)
		}
	}
	return nil
}
