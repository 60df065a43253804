package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	ErrCodeSubscriberNotFound = "SUB001"
	ErrCodeInvalidPayload     = "SUB002"
	ErrCodeAlreadySubscribed  = "SUB003"
	ErrCodeStorageFailure     = "SUB004"
)

var (
	ErrSubscriberNotFound = errors.New("subscriber not found")
	ErrAlreadySubscribed  = errors.New("email already subscribed")
)

// Subscriber is one newsletter recipient.
type Subscriber struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// SubscribeRequest is the public subscription payload.
type SubscribeRequest struct {
	Email string `json:"email"`
}

func (r SubscribeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// TestEmailRequest is the admin test-email payload.
type TestEmailRequest struct {
	Recipient string `json:"recipient"`
}

func (r TestEmailRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Recipient, validation.Required, is.Email),
	)
}
