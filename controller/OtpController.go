package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"umkmotion-otp/config"
	"umkmotion-otp/dto"
	"umkmotion-otp/model"
	"umkmotion-otp/service"
	"umkmotion-otp/util"
)

// Localized user-facing messages
const (
	MsgInvalidEmail   = "Email tidak valid"
	MsgMissingFields  = "Email dan kode OTP wajib diisi"
	MsgOtpNotFound    = "Kode OTP tidak ditemukan"
	MsgOtpAlreadyUsed = "Kode OTP sudah digunakan"
	MsgOtpExpired     = "Kode OTP sudah kedaluwarsa"
	MsgOtpVerified    = "Kode OTP berhasil diverifikasi"
	MsgDeliveryFailed = "Gagal mengirim email OTP"
	MsgConfigMissing  = "Konfigurasi SMTP belum diatur"
)

type OtpController struct {
	otpSvc *service.OtpService
	cfg    *config.Config
}

func NewOtpController(otpSvc *service.OtpService, cfg *config.Config) *OtpController {
	return &OtpController{otpSvc: otpSvc, cfg: cfg}
}

// SendOtp godoc
// @Summary      Issue an OTP code for an email address
// @Description  Generates a 6-digit code, stores it with a TTL, and emails it unless delivery is skipped. The raw code appears in the response only when OTP_REVEAL_CODE is enabled.
// @Tags         otp
// @Accept       json
// @Produce      json
// @Param        payload body dto.SendOtpRequest true "Issuance payload (same fields as query parameters on GET)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]interface{}
// @Router       /auth/send-otp [post]
func (oc *OtpController) SendOtp(c *fiber.Ctx) error {
	var req dto.SendOtpRequest
	if c.Method() == fiber.MethodGet {
		if err := c.QueryParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"ok": false, "error": "invalid query parameters",
			})
		}
	} else {
		// JSON or form-encoded, depending on Content-Type
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"ok": false, "error": "invalid request payload",
			})
		}
	}

	opts := service.IssueOptions{
		Subject: req.Subject,
		TTL:     time.Duration(req.TTLSeconds) * time.Second,
	}
	// skipDelivery is a development convenience, never a production path
	if req.SkipDelivery && oc.cfg.IsDevelopment() {
		opts.SkipDelivery = true
	}

	result, err := oc.otpSvc.Issue(req.Email, opts)
	switch {
	case errors.Is(err, service.ErrInvalidEmail):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":    false,
			"error": MsgInvalidEmail,
			"hint":  "Sertakan parameter email dengan format local@domain.tld",
		})
	case errors.Is(err, service.ErrDeliveryConfigMissing):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":    false,
			"error": MsgConfigMissing,
			"hint":  "Setel SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS, SMTP_FROM atau aktifkan OTP_DEV_FALLBACK di lingkungan pengembangan",
		})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok": false, "error": "failed to issue OTP",
		})
	}

	body := fiber.Map{
		"ok":         result.Delivery != model.DeliveryFailed,
		"email":      result.Email,
		"expiresAt":  result.ExpiresAt.UnixMilli(),
		"ttlSeconds": int(result.ExpiresAt.Sub(result.IssuedAt) / time.Second),
		"delivery":   result.Delivery,
	}
	if oc.cfg.OTP.RevealCode {
		body["code"] = result.Code
	}

	if result.Delivery == model.DeliveryFailed {
		// The stored code stays valid; only the email leg failed.
		body["error"] = MsgDeliveryFailed
		return c.Status(fiber.StatusBadGateway).JSON(body)
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

// VerifyOtp godoc
// @Summary      Verify an OTP code
// @Description  Consumes a still-valid (email, code) pair exactly once. A second attempt with the same code fails.
// @Tags         otp
// @Accept       json
// @Produce      json
// @Param        payload body dto.VerifyOtpRequest true "Verification payload"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /auth/send-otp [put]
func (oc *OtpController) VerifyOtp(c *fiber.Ctx) error {
	var req dto.VerifyOtpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok": false, "error": MsgMissingFields,
		})
	}
	if err := util.ValidateStruct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok": false, "error": MsgMissingFields,
		})
	}

	email, err := oc.otpSvc.Verify(req.Email, req.Code)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok": false, "error": verifyErrorMessage(err),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok":      true,
		"message": MsgOtpVerified,
		"email":   email,
	})
}

// verifyErrorMessage maps the service taxonomy onto localized strings.
// Unknown email and wrong code share MsgOtpNotFound on purpose.
func verifyErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrCodeAlreadyUsed):
		return MsgOtpAlreadyUsed
	case errors.Is(err, service.ErrCodeExpired):
		return MsgOtpExpired
	default:
		return MsgOtpNotFound
	}
}
