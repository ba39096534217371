package portal

import (
	"github.com/jrsteele09/afterschool-portal/apiclient"
	"github.com/jrsteele09/afterschool-portal/internal/errors"
)

// InputError rejects a form before any request is sent, or a response the
// page cannot act on. Cause, when set, names the reason for errors.Is.
type InputError struct {
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	return e.Message
}

func (e *InputError) Unwrap() []error {
	if e.Cause == nil {
		return []error{errors.ErrValidation}
	}
	return []error{errors.ErrValidation, e.Cause}
}

func Invalid(message string) error {
	return &InputError{Message: message}
}

// InvalidBecause is Invalid with a cause that errors.Is can match.
func InvalidBecause(cause error, message string) error {
	return &InputError{Message: message, Cause: cause}
}

// Message returns the text to show for err: the input or API message when
// there is one, fallback otherwise.
func Message(err error, fallback string) string {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return inputErr.Message
	}
	return apiclient.MessageOf(err, fallback)
}
