package service

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"umkmotion-otp/config"
	"umkmotion-otp/model"
	"umkmotion-otp/repository"
)

type sentMail struct {
	to      string
	subject string
	code    string
	ttl     time.Duration
}

type fakeMailer struct {
	configured bool
	failWith   error
	sent       []sentMail
}

func (m *fakeMailer) IsConfigured() bool { return m.configured }

func (m *fakeMailer) SendOTP(to, subject, code string, ttl time.Duration) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, code: code, ttl: ttl})
	return nil
}

func newTestService(mailer *fakeMailer) *OtpService {
	repo := repository.NewInMemoryOtpRepo(0)
	return NewOtpService(repo, mailer, config.OTPConfig{TTL: 600 * time.Second})
}

var codePattern = regexp.MustCompile(`^\d{6}$`)

func TestIssueAndVerifyOnce(t *testing.T) {
	mailer := &fakeMailer{configured: true}
	svc := newTestService(mailer)

	result, err := svc.Issue("user@example.com", IssueOptions{})
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", result.Email)
	assert.Regexp(t, codePattern, result.Code)
	assert.Equal(t, model.DeliverySent, result.Delivery)
	assert.Equal(t, result.IssuedAt.Add(600*time.Second), result.ExpiresAt)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, result.Code, mailer.sent[0].code)

	email, err := svc.Verify("user@example.com", result.Code)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", email)

	// single-use contract: the same code never verifies twice
	_, err = svc.Verify("user@example.com", result.Code)
	assert.ErrorIs(t, err, ErrCodeAlreadyUsed)
}

func TestVerifyExpired(t *testing.T) {
	svc := newTestService(&fakeMailer{configured: true})

	issuedAt := time.Now()
	svc.now = func() time.Time { return issuedAt }

	result, err := svc.Issue("user@example.com", IssueOptions{TTL: 600 * time.Second})
	require.NoError(t, err)

	// one millisecond past the lifetime
	svc.now = func() time.Time { return issuedAt.Add(600*time.Second + time.Millisecond) }

	_, err = svc.Verify("user@example.com", result.Code)
	assert.ErrorIs(t, err, ErrCodeExpired)
}

func TestVerifyJustBeforeExpiry(t *testing.T) {
	svc := newTestService(&fakeMailer{configured: true})

	issuedAt := time.Now()
	svc.now = func() time.Time { return issuedAt }

	result, err := svc.Issue("user@example.com", IssueOptions{TTL: 600 * time.Second})
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(600*time.Second - time.Millisecond) }

	_, err = svc.Verify("user@example.com", result.Code)
	assert.NoError(t, err)
}

func TestVerifyNotFoundShapeParity(t *testing.T) {
	svc := newTestService(&fakeMailer{configured: true})

	_, err := svc.Issue("user@example.com", IssueOptions{})
	require.NoError(t, err)

	// wrong code for a known email and any code for an unknown email
	// must be indistinguishable
	_, errWrongCode := svc.Verify("user@example.com", "000000")
	_, errUnknown := svc.Verify("nobody@example.com", "123456")

	assert.ErrorIs(t, errWrongCode, ErrCodeNotFound)
	assert.ErrorIs(t, errUnknown, ErrCodeNotFound)
	assert.Equal(t, errWrongCode, errUnknown)
}

func TestIssueInvalidEmail(t *testing.T) {
	mailer := &fakeMailer{configured: true}
	svc := newTestService(mailer)

	_, err := svc.Issue("not-an-email", IssueOptions{})
	assert.ErrorIs(t, err, ErrInvalidEmail)
	assert.Empty(t, mailer.sent)

	// the rejection left the store untouched: a later issuance works as usual
	result, err := svc.Issue("other@example.com", IssueOptions{})
	require.NoError(t, err)
	_, err = svc.Verify("other@example.com", result.Code)
	assert.NoError(t, err)
}

func TestTwoOutstandingCodesAreIndependent(t *testing.T) {
	svc := newTestService(&fakeMailer{configured: true})

	first, err := svc.Issue("user@example.com", IssueOptions{})
	require.NoError(t, err)
	second, err := svc.Issue("user@example.com", IssueOptions{})
	require.NoError(t, err)
	require.NotEqual(t, first.Code, second.Code)

	// consuming the first does not touch the second
	_, err = svc.Verify("user@example.com", first.Code)
	require.NoError(t, err)
	_, err = svc.Verify("user@example.com", second.Code)
	assert.NoError(t, err)
}

func TestIssueNormalizesEmail(t *testing.T) {
	svc := newTestService(&fakeMailer{configured: true})

	result, err := svc.Issue("  Budi@Example.COM ", IssueOptions{})
	require.NoError(t, err)
	assert.Equal(t, "budi@example.com", result.Email)

	// verification normalizes the same way
	email, err := svc.Verify("BUDI@example.com", result.Code)
	require.NoError(t, err)
	assert.Equal(t, "budi@example.com", email)
}

func TestIssueDeliveryConfigMissing(t *testing.T) {
	svc := newTestService(&fakeMailer{configured: false})

	_, err := svc.Issue("user@example.com", IssueOptions{})
	assert.ErrorIs(t, err, ErrDeliveryConfigMissing)
}

func TestIssueDevFallbackSkipsDelivery(t *testing.T) {
	mailer := &fakeMailer{configured: false}
	repo := repository.NewInMemoryOtpRepo(0)
	svc := NewOtpService(repo, mailer, config.OTPConfig{TTL: 600 * time.Second, DevFallback: true})

	result, err := svc.Issue("user@example.com", IssueOptions{})
	require.NoError(t, err)
	assert.Equal(t, model.DeliverySkipped, result.Delivery)
	assert.Empty(t, mailer.sent)

	// the undelivered code is still stored and verifiable
	_, err = svc.Verify("user@example.com", result.Code)
	assert.NoError(t, err)
}

func TestIssueSkipDelivery(t *testing.T) {
	mailer := &fakeMailer{configured: true}
	svc := newTestService(mailer)

	result, err := svc.Issue("user@example.com", IssueOptions{SkipDelivery: true})
	require.NoError(t, err)
	assert.Equal(t, model.DeliverySkipped, result.Delivery)
	assert.Empty(t, mailer.sent)
}

func TestIssueDeliveryFailureKeepsCodeValid(t *testing.T) {
	mailer := &fakeMailer{configured: true, failWith: errors.New("smtp connection refused")}
	svc := newTestService(mailer)

	result, err := svc.Issue("user@example.com", IssueOptions{})
	require.NoError(t, err)
	assert.Equal(t, model.DeliveryFailed, result.Delivery)
	assert.Error(t, result.DeliveryErr)

	// issuance is not rolled back on a transport failure
	_, err = svc.Verify("user@example.com", result.Code)
	assert.NoError(t, err)
}

func TestIssueCustomSubject(t *testing.T) {
	mailer := &fakeMailer{configured: true}
	svc := newTestService(mailer)

	_, err := svc.Issue("user@example.com", IssueOptions{Subject: "Kode login UMKMotion"})
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Kode login UMKMotion", mailer.sent[0].subject)

	_, err = svc.Issue("user@example.com", IssueOptions{})
	require.NoError(t, err)
	require.Len(t, mailer.sent, 2)
	assert.Equal(t, defaultSubject, mailer.sent[1].subject)
}

type failingSink struct{}

func (failingSink) Record(*model.OtpRecord) error { return errors.New("sink unavailable") }

func TestSinkFailureIsSwallowed(t *testing.T) {
	svc := newTestService(&fakeMailer{configured: true})
	svc.AttachSink(failingSink{})

	result, err := svc.Issue("user@example.com", IssueOptions{})
	require.NoError(t, err)

	_, err = svc.Verify("user@example.com", result.Code)
	assert.NoError(t, err)
}
