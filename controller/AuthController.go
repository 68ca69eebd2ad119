package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"umkmotion-otp/dto"
	"umkmotion-otp/service"
	"umkmotion-otp/util"
)

type AuthController struct {
	authSvc *service.AuthService
	otpSvc  *service.OtpService
}

func NewAuthController(authSvc *service.AuthService, otpSvc *service.OtpService) *AuthController {
	return &AuthController{authSvc: authSvc, otpSvc: otpSvc}
}

// Register godoc
// @Summary      Register a new account
// @Description  Creates an unverified user and sends a verification code to the email address.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload body dto.RegisterRequest true "Registration payload"
// @Success      201  {object}  dto.RegisterResponse
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request payload"})
	}
	if err := util.ValidateStruct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	resp, err := ac.authSvc.Register(&req)
	if err != nil {
		if util.IsDuplicateKeyError(err) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "email sudah terdaftar"})
		}
		log.Printf("Registration failed for %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "registration failed"})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login godoc
// @Summary      Login with email and password
// @Description  Returns a short-lived access token. Accounts that never consumed their verification OTP are rejected.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload body dto.LoginRequest true "Login payload"
// @Success      200  {object}  dto.LoginResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request payload"})
	}
	if err := util.ValidateStruct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	resp, err := ac.authSvc.Login(&req)
	switch {
	case errors.Is(err, service.ErrEmailNotVerified):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "email belum diverifikasi"})
	case err != nil:
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "email atau kata sandi salah"})
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// VerifyEmail godoc
// @Summary      Verify an account with the emailed OTP
// @Description  Consumes the 6-digit code and activates the account (sets IsEmailVerified).
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload body dto.VerifyEmailRequest true "Verification payload"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /auth/verify [post]
func (ac *AuthController) VerifyEmail(c *fiber.Ctx) error {
	var req dto.VerifyEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": MsgMissingFields})
	}
	if err := util.ValidateStruct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": MsgMissingFields})
	}

	user, err := ac.authSvc.GetUserByEmail(req.Email)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "akun tidak ditemukan"})
	}

	email, err := ac.otpSvc.Verify(req.Email, req.Code)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verifyErrorMessage(err)})
	}

	if err := ac.authSvc.MarkEmailVerified(user); err != nil {
		log.Printf("Failed to mark email verified for %s: %v", email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update verification status"})
	}
	log.Printf("Email verified for %s (user_id=%s)", email, user.ID.String())

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "email terverifikasi", "email": email})
}

// Me godoc
// @Summary      Current account from the access token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (ac *AuthController) Me(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
	}

	claims, err := ac.authSvc.ParseToken(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user_id":  claims.Subject,
		"email":    claims.Email,
		"verified": claims.Verified,
	})
}

// ResendCode godoc
// @Summary      Resend the verification code
// @Description  Issues a fresh code for an existing unverified account. Earlier codes stay independently valid until they expire or are used.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload body dto.ResendOtpRequest true "Resend payload"
// @Success      202  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /auth/resend [post]
func (ac *AuthController) ResendCode(c *fiber.Ctx) error {
	var req dto.ResendOtpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request payload"})
	}
	if err := util.ValidateStruct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user, err := ac.authSvc.GetUserByEmail(req.Email)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "akun tidak ditemukan"})
	}

	result, err := ac.otpSvc.Issue(user.Email, service.IssueOptions{})
	if err != nil {
		log.Printf("Failed to resend verification code for %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to send verification code"})
	}
	log.Printf("Verification code resent for %s (delivery=%s)", result.Email, result.Delivery)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "kode verifikasi dikirim"})
}
