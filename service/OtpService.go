package service

import (
	"errors"
	"log"
	"time"

	"umkmotion-otp/config"
	"umkmotion-otp/model"
	"umkmotion-otp/repository"
	"umkmotion-otp/util"
)

// User-facing error taxonomy. The controller maps these onto localized
// messages and status codes.
var (
	ErrInvalidEmail          = errors.New("invalid email address")
	ErrCodeNotFound          = errors.New("otp code not found")
	ErrCodeAlreadyUsed       = errors.New("otp code already used")
	ErrCodeExpired           = errors.New("otp code expired")
	ErrDeliveryConfigMissing = errors.New("smtp transport not configured")
)

const defaultSubject = "Kode Verifikasi UMKMotion"

// Mailer is the outbound email transport (EmailService in production,
// a fake in tests)
type Mailer interface {
	IsConfigured() bool
	SendOTP(to, subject, code string, ttl time.Duration) error
}

// OtpSink receives a best-effort copy of every issued record for
// durability beyond the process lifetime. Failures are logged, never
// surfaced: the in-memory contract does not depend on it.
type OtpSink interface {
	Record(rec *model.OtpRecord) error
}

// IssueOptions are the per-request overrides for Issue
type IssueOptions struct {
	Subject      string        // empty = default Indonesian subject
	TTL          time.Duration // zero = configured default
	SkipDelivery bool          // generate and store without emailing
}

// IssueResult reports a stored code plus what happened to its delivery
type IssueResult struct {
	Email       string
	Code        string
	IssuedAt    time.Time
	ExpiresAt   time.Time
	Delivery    model.DeliveryStatus
	DeliveryErr error
}

// OtpService issues, optionally delivers, and verifies single-use numeric
// codes bound to an email address.
type OtpService struct {
	repo   repository.OtpRepository
	mailer Mailer
	sink   OtpSink

	defaultTTL  time.Duration
	devFallback bool

	now func() time.Time
}

func NewOtpService(repo repository.OtpRepository, mailer Mailer, cfg config.OTPConfig) *OtpService {
	return &OtpService{
		repo:        repo,
		mailer:      mailer,
		defaultTTL:  cfg.TTL,
		devFallback: cfg.DevFallback,
		now:         time.Now,
	}
}

// AttachSink enables the best-effort persistence mirror
func (s *OtpService) AttachSink(sink OtpSink) {
	s.sink = sink
}

// Issue generates a 6-digit code for the address, stores it, and hands it
// to the mailer unless delivery is skipped. The store write happens before
// any delivery attempt, so a failed send never invalidates the code.
func (s *OtpService) Issue(email string, opts IssueOptions) (*IssueResult, error) {
	if !util.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	normalized := util.NormalizeEmail(email)

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	subject := opts.Subject
	if subject == "" {
		subject = defaultSubject
	}

	now := s.now()
	rec := model.OtpRecord{
		Email:     normalized,
		Code:      util.GenerateOtpCode(),
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	if err := s.repo.Insert(&rec); err != nil {
		return nil, err
	}

	if s.sink != nil {
		if err := s.sink.Record(&rec); err != nil {
			log.Printf("OTP sink write failed for %s: %v", normalized, err)
		}
	}

	result := &IssueResult{
		Email:     normalized,
		Code:      rec.Code,
		IssuedAt:  rec.IssuedAt,
		ExpiresAt: rec.ExpiresAt,
	}

	switch {
	case opts.SkipDelivery:
		result.Delivery = model.DeliverySkipped

	case !s.mailer.IsConfigured():
		if !s.devFallback {
			// The record stays stored; the caller just never learns the code.
			return nil, ErrDeliveryConfigMissing
		}
		log.Printf("SMTP not configured, dev fallback active: skipping delivery for %s", normalized)
		result.Delivery = model.DeliverySkipped

	default:
		if err := s.mailer.SendOTP(normalized, subject, rec.Code, ttl); err != nil {
			log.Printf("Failed to send OTP to %s: %v", normalized, err)
			result.Delivery = model.DeliveryFailed
			result.DeliveryErr = err
		} else {
			result.Delivery = model.DeliverySent
		}
	}

	return result, nil
}

// Verify consumes a still-valid code exactly once. The checks run in a
// fixed order: existence, used flag, expiry. Unknown email and wrong code
// are indistinguishable to the caller.
func (s *OtpService) Verify(email, code string) (string, error) {
	normalized := util.NormalizeEmail(email)
	key := repository.OtpKey(normalized, code)

	rec, err := s.repo.Get(key)
	if errors.Is(err, repository.ErrOtpNotFound) {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", err
	}

	if rec.Used {
		return "", ErrCodeAlreadyUsed
	}
	if rec.IsExpired(s.now()) {
		return "", ErrCodeExpired
	}

	// MarkUsed is the compare-and-swap: of two concurrent verifies for the
	// same key, exactly one passes this point.
	switch err := s.repo.MarkUsed(key); {
	case errors.Is(err, repository.ErrOtpUsed):
		return "", ErrCodeAlreadyUsed
	case errors.Is(err, repository.ErrOtpNotFound):
		return "", ErrCodeNotFound
	case err != nil:
		return "", err
	}

	return normalized, nil
}
