package httperr

import "errors"

type BusinessError struct {
	Code    string
	Details map[string]any
}

func (e BusinessError) Error() string {
	return e.Code
}

// Is matches on Code so sentinel business errors work with errors.Is even
// when details are attached.
func (e BusinessError) Is(target error) bool {
	t, ok := target.(BusinessError)
	return ok && t.Code == e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// ErrBusinessWith attaches details the client needs to correct its input,
// e.g. the appointments it collided with.
func ErrBusinessWith(code string, details map[string]any) error {
	return BusinessError{Code: code, Details: details}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
