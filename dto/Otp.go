package dto

// SendOtpRequest is the POST body for /auth/send-otp.
// The same fields are accepted as query parameters on GET.
type SendOtpRequest struct {
	Email        string `json:"email" form:"email" query:"email"`
	Subject      string `json:"subject" form:"subject" query:"subject"`
	TTLSeconds   int    `json:"ttlSeconds" form:"ttlSeconds" query:"ttlSeconds"`
	SkipDelivery bool   `json:"skipDelivery" form:"skipDelivery" query:"skipDelivery"` // honored in development only
}

// VerifyOtpRequest is the PUT body for /auth/send-otp
type VerifyOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code"  validate:"required,len=6,numeric"`
}
