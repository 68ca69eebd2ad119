package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"umkmotion-otp/config"
	"umkmotion-otp/repository"
	"umkmotion-otp/service"
)

type stubMailer struct {
	configured bool
}

func (m *stubMailer) IsConfigured() bool { return m.configured }

func (m *stubMailer) SendOTP(_, _, _ string, _ time.Duration) error { return nil }

func newTestApp(cfg *config.Config) *fiber.App {
	repo := repository.NewInMemoryOtpRepo(0)
	otpSvc := service.NewOtpService(repo, &stubMailer{configured: true}, cfg.OTP)
	oc := NewOtpController(otpSvc, cfg)

	app := fiber.New()
	app.Get("/api/v1/auth/send-otp", oc.SendOtp)
	app.Post("/api/v1/auth/send-otp", oc.SendOtp)
	app.Put("/api/v1/auth/send-otp", oc.VerifyOtp)
	return app
}

func devConfig() *config.Config {
	return &config.Config{
		Env: "development",
		OTP: config.OTPConfig{TTL: 600 * time.Second, RevealCode: true},
	}
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp, parsed
}

func TestSendOtpPost(t *testing.T) {
	app := newTestApp(devConfig())

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/send-otp", fiber.Map{
		"email":      "user@example.com",
		"ttlSeconds": 600,
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "user@example.com", body["email"])
	assert.Equal(t, "sent", body["delivery"])
	assert.Regexp(t, `^\d{6}$`, body["code"])
	assert.InDelta(t, float64(600), body["ttlSeconds"].(float64), 0)

	expiresAt := int64(body["expiresAt"].(float64))
	assert.InDelta(t, time.Now().Add(600*time.Second).UnixMilli(), expiresAt, 2000)
}

func TestSendOtpGetQueryParams(t *testing.T) {
	app := newTestApp(devConfig())

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/auth/send-otp?email=user@example.com&skipDelivery=true", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "skipped", body["delivery"])
	assert.Regexp(t, `^\d{6}$`, body["code"])
}

func TestSendOtpInvalidEmail(t *testing.T) {
	app := newTestApp(devConfig())

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/send-otp", fiber.Map{
		"email": "bad-email",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, MsgInvalidEmail, body["error"])
	assert.NotEmpty(t, body["hint"])
}

func TestSendOtpCodeHiddenByDefault(t *testing.T) {
	cfg := devConfig()
	cfg.OTP.RevealCode = false
	app := newTestApp(cfg)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/send-otp", fiber.Map{
		"email": "user@example.com",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "code")
}

func TestVerifyOtpLifecycle(t *testing.T) {
	app := newTestApp(devConfig())

	_, issued := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/send-otp", fiber.Map{
		"email": "user@example.com",
	})
	code := issued["code"].(string)

	resp, body := doJSON(t, app, fiber.MethodPut, "/api/v1/auth/send-otp", fiber.Map{
		"email": "user@example.com",
		"code":  code,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, MsgOtpVerified, body["message"])
	assert.Equal(t, "user@example.com", body["email"])

	// replay of the same valid code
	resp, body = doJSON(t, app, fiber.MethodPut, "/api/v1/auth/send-otp", fiber.Map{
		"email": "user@example.com",
		"code":  code,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, MsgOtpAlreadyUsed, body["error"])
}

func TestVerifyOtpNotFound(t *testing.T) {
	app := newTestApp(devConfig())

	resp, body := doJSON(t, app, fiber.MethodPut, "/api/v1/auth/send-otp", fiber.Map{
		"email": "user@example.com",
		"code":  "123456",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, MsgOtpNotFound, body["error"])
}

func TestVerifyOtpMissingFields(t *testing.T) {
	app := newTestApp(devConfig())

	resp, body := doJSON(t, app, fiber.MethodPut, "/api/v1/auth/send-otp", fiber.Map{
		"email": "user@example.com",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, MsgMissingFields, body["error"])
}

func TestSkipDeliveryIgnoredInProduction(t *testing.T) {
	cfg := devConfig()
	cfg.Env = "production"
	app := newTestApp(cfg)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/send-otp", fiber.Map{
		"email":        "user@example.com",
		"skipDelivery": true,
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "sent", body["delivery"])
}
