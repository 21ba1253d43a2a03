package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Envelope is the normalized response shape every client call settles
// into, regardless of how the upstream chose to encode its reply.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Result is a decoded envelope: the same success/message pair with Data
// unmarshaled into the operation's concrete type.
type Result[T any] struct {
	Success bool
	Message string
	Data    T
}

// normalize maps a raw HTTP response onto the envelope. Rules, in order:
//
//  1. non-2xx: {success:false, message: server message or fallback},
//     empty data
//  2. body already carries a success field: passed through unchanged
//  3. bare array body: wrapped as {success:true, data: array}
//  4. any other JSON body: wrapped whole as {success:true, data: body}
//
// A 2xx response with a non-JSON body is the one condition reported as a
// Go error; callers are not expected to handle it as a designed failure.
func normalize(status int, body []byte, fallback string) (Envelope, error) {
	trimmed := bytes.TrimSpace(body)

	if status < 200 || status > 299 {
		return Envelope{Success: false, Message: messageFrom(trimmed, fallback)}, nil
	}

	if len(trimmed) == 0 {
		return Envelope{Success: true}, nil
	}

	if trimmed[0] == '{' {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return Envelope{}, fmt.Errorf("decode response body: %w", err)
		}
		if _, ok := probe["success"]; ok {
			var env Envelope
			if err := json.Unmarshal(trimmed, &env); err != nil {
				return Envelope{}, fmt.Errorf("decode response envelope: %w", err)
			}
			return env, nil
		}
		return Envelope{Success: true, Data: append(json.RawMessage(nil), trimmed...)}, nil
	}

	if !json.Valid(trimmed) {
		return Envelope{}, fmt.Errorf("unexpected non-JSON response body (status %d)", status)
	}
	return Envelope{Success: true, Data: append(json.RawMessage(nil), trimmed...)}, nil
}

// transportFailure wraps a network-level error as a failure envelope so
// callers see the same shape as an API-reported failure.
func transportFailure(err error) Envelope {
	return Envelope{Success: false, Message: err.Error()}
}

// messageFrom extracts a human-readable failure message from an error
// body. Validation failures arrive as an errors map whose values are
// flattened, taking precedence over the top-level message.
func messageFrom(body []byte, fallback string) string {
	var probe struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &probe); err == nil {
		if len(probe.Errors) > 0 {
			keys := make([]string, 0, len(probe.Errors))
			for k := range probe.Errors {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			var parts []string
			for _, k := range keys {
				parts = append(parts, probe.Errors[k]...)
			}
			return strings.Join(parts, ", ")
		}
		if probe.Message != "" {
			return probe.Message
		}
	}
	return fallback
}

// unwrapNested digs one level into a {data: ...} wrapper. Some upstream
// detail endpoints nest the record under data without a success field,
// which normalize then wraps whole.
func unwrapNested(env Envelope) Envelope {
	if !env.Success || len(env.Data) == 0 {
		return env
	}
	trimmed := bytes.TrimSpace(env.Data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return env
	}
	var probe struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &probe); err == nil && len(probe.Data) > 0 {
		env.Data = probe.Data
	}
	return env
}

// decode unmarshals an envelope's data into T. An undecodable payload on
// a successful envelope is a contract violation, reported as an error.
func decode[T any](env Envelope, err error) (Result[T], error) {
	if err != nil {
		return Result[T]{}, err
	}
	res := Result[T]{Success: env.Success, Message: env.Message}
	if !env.Success {
		return res, nil
	}
	if len(env.Data) > 0 {
		if uerr := json.Unmarshal(env.Data, &res.Data); uerr != nil {
			return Result[T]{}, fmt.Errorf("decode response data: %w", uerr)
		}
	}
	return res, nil
}

func jsonMarshal(payload any) ([]byte, error) {
	return json.Marshal(payload)
}
