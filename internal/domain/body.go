package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var ErrMalformedBody = errors.New("malformed json body")

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

var nullBody = []byte("null")

func isAbsent(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, nullBody)
}

// SerializeBody turns a JSON body into the text stored in the database.
func SerializeBody(raw json.RawMessage) (*string, error) {
	if isAbsent(raw) {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	text := buf.String()
	return &text, nil
}

// ParseBody is the inverse of SerializeBody. NULL text passes through as nil.
func ParseBody(text *string) (json.RawMessage, error) {
	if text == nil {
		return nil, nil
	}
	if !jsonAPI.Valid([]byte(*text)) {
		return nil, ErrMalformedBody
	}
	return json.RawMessage(*text), nil
}

// DecodeDetails returns the structured form of a body for log output. A body
// that is itself a JSON string is parsed one more level, so a caller that
// double-encoded its response still gets structured details.
func DecodeDetails(raw json.RawMessage) (any, error) {
	if isAbsent(raw) {
		return nil, nil
	}

	var value any
	if err := jsonAPI.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	encoded, ok := value.(string)
	if !ok {
		return value, nil
	}

	var inner any
	if err := jsonAPI.UnmarshalFromString(encoded, &inner); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return inner, nil
}
