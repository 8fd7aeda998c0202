package validator

import "regexp"

var (
	HexRX    = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}){1,2}$`)
	DateRX   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	TimeRX   = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	// UserIDRX accepts email addresses and plain names but no path separators.
	UserIDRX = regexp.MustCompile("^[A-Za-z0-9.@!#$%&'*+=?^_`{|}~-]{1,254}$")
)

type Validator struct {
	Errors map[string]string
}

func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError keeps the first message recorded for a key.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}

// OptionalMatches accepts the empty string.
func OptionalMatches(value string, rx *regexp.Regexp) bool {
	return value == "" || rx.MatchString(value)
}
