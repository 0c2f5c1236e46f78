package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// StringSlice stores a []string as a single comma-joined text column so the
// whole token set is written in one per-row update. Elements must not contain
// commas; JWT compact serialization never does.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "", nil
	}

	for _, v := range s {
		if strings.Contains(v, ",") {
			return "", fmt.Errorf("unsafe element %q", v)
		}
	}

	return strings.Join(s, ","), nil
}

func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = []string{}
		return nil
	}

	str, ok := value.(string)
	if !ok {
		b, ok := value.([]byte)
		if !ok {
			return fmt.Errorf("cannot scan %T into StringSlice", value)
		}
		str = string(b)
	}

	if str == "" {
		*s = []string{}
	} else {
		*s = strings.Split(str, ",")
	}

	return nil
}

// Without returns a copy of s with tok removed; Append returns a copy with
// tok added. Callers mutate the set by value and persist the result.
func (s StringSlice) Without(tok string) StringSlice {
	out := make(StringSlice, 0, len(s))
	for _, v := range s {
		if v != tok {
			out = append(out, v)
		}
	}
	return out
}

func (s StringSlice) Append(tok string) StringSlice {
	out := make(StringSlice, 0, len(s)+1)
	out = append(out, s...)
	return append(out, tok)
}

func (s StringSlice) Contains(tok string) bool {
	for _, v := range s {
		if v == tok {
			return true
		}
	}
	return false
}
