package service

import (
	"errors"

	"umkmotion-otp/dto"
	"umkmotion-otp/model"
	"umkmotion-otp/repository"
	"umkmotion-otp/util"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
)

// AuthService implements the account flow around the OTP service:
// registration triggers an issuance, verification consumes a code and
// activates the account, login requires the flag.
type AuthService struct {
	userRepo       repository.UserRepository
	credentialRepo repository.CredentialRepository
	otpService     *OtpService
	jwtSecret      string
}

func NewAuthService(
	u repository.UserRepository,
	c repository.CredentialRepository,
	otp *OtpService,
	jwtSecret string,
) *AuthService {
	return &AuthService{
		userRepo:       u,
		credentialRepo: c,
		otpService:     otp,
		jwtSecret:      jwtSecret,
	}
}

// Register creates an unverified user with a password credential and
// issues a verification code to the new address. A delivery failure does
// not fail the registration; the user can hit /auth/resend.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	user := &model.User{
		Name:  req.Name,
		Email: util.NormalizeEmail(req.Email),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	hashed, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	cred := &model.Credential{
		UserID: user.ID,
		Type:   model.CredTypePassword,
		Value:  hashed,
	}
	if err := s.credentialRepo.Create(cred); err != nil {
		return nil, err
	}

	if _, err := s.otpService.Issue(user.Email, IssueOptions{}); err != nil && !errors.Is(err, ErrDeliveryConfigMissing) {
		return nil, err
	}

	return &dto.RegisterResponse{ID: user.ID.String(), Name: user.Name, Email: user.Email}, nil
}

// Login validates the password and returns an access token. Unverified
// accounts are rejected so the OTP step cannot be skipped.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(util.NormalizeEmail(req.Email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	var pwCred *model.Credential
	for i := range user.Credentials {
		if user.Credentials[i].Type == model.CredTypePassword {
			pwCred = &user.Credentials[i]
			break
		}
	}
	if pwCred == nil {
		return nil, ErrInvalidCredentials
	}

	if err := util.ComparePassword(pwCred.Value, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsEmailVerified {
		return nil, ErrEmailNotVerified
	}

	token, err := util.GenerateAccessToken(s.jwtSecret, user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{AccessToken: token, ExpiresIn: util.AccessTokenTTLSeconds}, nil
}

// GetUserByEmail exposes user lookup to the verification controller
func (s *AuthService) GetUserByEmail(email string) (*model.User, error) {
	return s.userRepo.GetByEmail(util.NormalizeEmail(email))
}

// ParseToken validates an access token and returns its claims
func (s *AuthService) ParseToken(token string) (*dto.AuthClaims, error) {
	return util.ParseAccessToken(s.jwtSecret, token)
}

// MarkEmailVerified flips IsEmailVerified after a successful OTP check
func (s *AuthService) MarkEmailVerified(user *model.User) error {
	user.IsEmailVerified = true
	return s.userRepo.Update(user)
}
