package model

type CredentialType string

const (
	CredTypePassword CredentialType = "password"
)

func (ct CredentialType) IsValid() bool {
	switch ct {
	case CredTypePassword:
		return true
	}
	return false
}

// DeliveryStatus records what happened to the email leg of an issuance.
// A failed delivery never invalidates the stored code.
type DeliveryStatus string

const (
	DeliverySent    DeliveryStatus = "sent"
	DeliverySkipped DeliveryStatus = "skipped"
	DeliveryFailed  DeliveryStatus = "delivery_failed"
)

func (ds DeliveryStatus) IsValid() bool {
	switch ds {
	case DeliverySent, DeliverySkipped, DeliveryFailed:
		return true
	}
	return false
}
