package api

import (
	"fmt"
	"strconv"
	"strings"
)

// Number tolerates upstream decimals encoded either as JSON numbers or
// as quoted strings (how the upstream serializes decimal columns).
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", s, err)
	}
	*n = Number(f)
	return nil
}

// Availability tolerates boolean and integer encodings of the
// is_available flag; legacy records use either. An absent flag counts
// as available.
type Availability struct {
	known bool
	value bool
}

// Available reports whether the flag is anything other than an explicit
// false or zero.
func (a Availability) Available() bool {
	return !a.known || a.value
}

// AvailabilityOf builds an explicit flag value.
func AvailabilityOf(v bool) Availability {
	return Availability{known: true, value: v}
}

func (a *Availability) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch s {
	case "null":
		*a = Availability{}
		return nil
	case "true":
		*a = Availability{known: true, value: true}
		return nil
	case "false":
		*a = Availability{known: true, value: false}
		return nil
	}
	s = strings.Trim(s, `"`)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid availability flag %q: %w", s, err)
	}
	*a = Availability{known: true, value: f != 0}
	return nil
}

func (a Availability) MarshalJSON() ([]byte, error) {
	if !a.known {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatBool(a.value)), nil
}
