package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		fallback string
		want     Envelope
		wantErr  bool
	}{
		{
			name:     "non-2xx uses server message",
			status:   422,
			body:     `{"message":"The name field is required."}`,
			fallback: "Failed to create tour",
			want:     Envelope{Success: false, Message: "The name field is required."},
		},
		{
			name:     "non-2xx falls back without a message",
			status:   500,
			body:     `<html>boom</html>`,
			fallback: "Failed to fetch tours",
			want:     Envelope{Success: false, Message: "Failed to fetch tours"},
		},
		{
			name:     "non-2xx flattens validation errors",
			status:   422,
			body:     `{"message":"ignored","errors":{"otp":["Invalid OTP."],"email":["Email not found."]}}`,
			fallback: "Verification failed",
			want:     Envelope{Success: false, Message: "Email not found., Invalid OTP."},
		},
		{
			name:   "envelope body passes through",
			status: 200,
			body:   `{"success":true,"message":"ok","data":[{"id":1}]}`,
			want:   Envelope{Success: true, Message: "ok", Data: json.RawMessage(`[{"id":1}]`)},
		},
		{
			name:   "failure envelope passes through on 2xx",
			status: 200,
			body:   `{"success":false,"message":"nothing here"}`,
			want:   Envelope{Success: false, Message: "nothing here"},
		},
		{
			name:   "bare array is wrapped",
			status: 200,
			body:   `[{"id":1},{"id":2}]`,
			want:   Envelope{Success: true, Data: json.RawMessage(`[{"id":1},{"id":2}]`)},
		},
		{
			name:   "plain object is wrapped whole",
			status: 200,
			body:   `{"data":{"id":7}}`,
			want:   Envelope{Success: true, Data: json.RawMessage(`{"data":{"id":7}}`)},
		},
		{
			name:   "empty 2xx body succeeds",
			status: 204,
			body:   "",
			want:   Envelope{Success: true},
		},
		{
			name:    "non-JSON 2xx body is an error",
			status:  200,
			body:    `<html>login form</html>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalize(tt.status, []byte(tt.body), tt.fallback)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.Success, got.Success)
			assert.Equal(t, tt.want.Message, got.Message)
			if tt.want.Data == nil {
				assert.Empty(t, got.Data)
			} else {
				assert.JSONEq(t, string(tt.want.Data), string(got.Data))
			}
		})
	}
}

func TestUnwrapNested(t *testing.T) {
	nested, err := normalize(200, []byte(`{"data":{"id":7,"name":"Bromo Sunrise"}}`), "")
	require.NoError(t, err)
	got := unwrapNested(nested)
	assert.JSONEq(t, `{"id":7,"name":"Bromo Sunrise"}`, string(got.Data))

	// A record without a data wrapper is left alone.
	flat, err := normalize(200, []byte(`{"id":7,"name":"Bromo Sunrise"}`), "")
	require.NoError(t, err)
	got = unwrapNested(flat)
	assert.JSONEq(t, `{"id":7,"name":"Bromo Sunrise"}`, string(got.Data))

	failure := Envelope{Success: false, Message: "no"}
	assert.Equal(t, failure, unwrapNested(failure))
}

func TestDecode(t *testing.T) {
	env := Envelope{Success: true, Data: json.RawMessage(`[{"id":1,"name":"Ijen"}]`)}
	res, err := decode[[]Tour](env, nil)
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "Ijen", res.Data[0].Name)

	// Failure envelopes decode to a zero payload, not an error.
	res, err = decode[[]Tour](Envelope{Success: false, Message: "down"}, nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "down", res.Message)
	assert.Nil(t, res.Data)

	_, err = decode[[]Tour](Envelope{Success: true, Data: json.RawMessage(`"not a list"`)}, nil)
	require.Error(t, err)
}

func TestNumberUnmarshal(t *testing.T) {
	var doc struct {
		Price Number `json:"price"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"price":"150000.50"}`), &doc))
	assert.InDelta(t, 150000.50, float64(doc.Price), 0.001)

	require.NoError(t, json.Unmarshal([]byte(`{"price":250000}`), &doc))
	assert.InDelta(t, 250000, float64(doc.Price), 0.001)

	require.NoError(t, json.Unmarshal([]byte(`{"price":null}`), &doc))
	assert.Zero(t, float64(doc.Price))

	assert.Error(t, json.Unmarshal([]byte(`{"price":"free"}`), &doc))
}

func TestAvailabilityUnmarshal(t *testing.T) {
	tests := []struct {
		raw       string
		available bool
	}{
		{`true`, true},
		{`false`, false},
		{`1`, true},
		{`0`, false},
		{`"1"`, true},
		{`"0"`, false},
		{`null`, true},
	}
	for _, tt := range tests {
		var doc struct {
			Flag Availability `json:"is_available"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"is_available":`+tt.raw+`}`), &doc), "raw %s", tt.raw)
		assert.Equal(t, tt.available, doc.Flag.Available(), "raw %s", tt.raw)
	}

	// Absent flag counts as available.
	var doc struct {
		Flag Availability `json:"is_available"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &doc))
	assert.True(t, doc.Flag.Available())
}
