package repository

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"umkmotion-otp/model"
)

// PgOtpRepo is the Postgres-backed store. It is authoritative in postgres
// mode and doubles as the best-effort sink in memory mode.
type PgOtpRepo struct {
	db *gorm.DB
}

var _ OtpRepository = (*PgOtpRepo)(nil)

func NewPgOtpRepo(db *gorm.DB) *PgOtpRepo {
	return &PgOtpRepo{db: db}
}

func (r *PgOtpRepo) Insert(rec *model.OtpRecord) error {
	cp := *rec
	cp.ID = 0
	return r.db.Create(&cp).Error
}

func (r *PgOtpRepo) Get(key string) (*model.OtpRecord, error) {
	email, code, ok := splitOtpKey(key)
	if !ok {
		return nil, ErrOtpNotFound
	}

	var rec model.OtpRecord
	err := r.db.Where("email = ? AND code = ?", email, code).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOtpNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *PgOtpRepo) MarkUsed(key string) error {
	email, code, ok := splitOtpKey(key)
	if !ok {
		return ErrOtpNotFound
	}

	// Conditional update is the compare-and-swap: of two concurrent
	// verifies only one sees RowsAffected == 1.
	res := r.db.Model(&model.OtpRecord{}).
		Where("email = ? AND code = ? AND used = ?", email, code, false).
		Update("used", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := r.db.Model(&model.OtpRecord{}).
		Where("email = ? AND code = ?", email, code).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrOtpNotFound
	}
	return ErrOtpUsed
}

func (r *PgOtpRepo) DeleteExpired() error {
	return r.db.Where("expires_at < ?", time.Now()).Delete(&model.OtpRecord{}).Error
}

// Record implements the best-effort persistence sink used in memory mode
func (r *PgOtpRepo) Record(rec *model.OtpRecord) error {
	return r.Insert(rec)
}

// OtpKey builds the composite store key
func OtpKey(email, code string) string {
	return email + ":" + code
}

// splitOtpKey reverses OtpKey. The code never contains a colon, so the
// last separator is the boundary even for exotic local parts.
func splitOtpKey(key string) (email, code string, ok bool) {
	i := strings.LastIndex(key, ":")
	if i < 0 {
		return "", "", false
	}
	return key[:i], key[i+1:], true
}
