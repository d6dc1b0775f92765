// Package querycodec maps flat parameter mappings to and from URL query strings.
//
// Encoding is deterministic: keys are emitted in sorted order so two equal
// mappings always produce the same string. Parse(Encode(p)) == p holds for
// every mapping.
package querycodec

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrDecode is the sentinel wrapped by every DecodeError.
var ErrDecode = errors.New("malformed query string")

// DecodeError reports a query string that could not be decoded.
type DecodeError struct {
	Query string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding query %q: %v", e.Query, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrDecode, e.Err}
}

// Parse decodes a query string into flat key/value pairs. A leading "?" is
// ignored. When a key repeats, the first value wins.
func Parse(query string) (map[string]string, error) {
	query = strings.TrimPrefix(query, "?")

	values, err := url.ParseQuery(query)
	if err != nil {
		return nil, &DecodeError{Query: query, Err: err}
	}

	params := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		params[key] = vals[0]
	}
	return params, nil
}

// Encode renders params as a query string without the leading "?".
func Encode(params map[string]string) string {
	values := make(url.Values, len(params))
	for key, value := range params {
		values.Set(key, value)
	}
	// url.Values.Encode sorts by key.
	return values.Encode()
}
