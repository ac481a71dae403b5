package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhoneNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"081234567890", "+6281234567890"},
		{"0812-3456-7890", "+6281234567890"},
		{"0812 3456 7890", "+6281234567890"},
		{"(0812) 3456-7890", "+6281234567890"},
		{"6281234567890", "+6281234567890"},
		{"+6281234567890", "+6281234567890"},
		{"81234567890", "+6281234567890"},
		{" 081234567890 ", "+6281234567890"},
	}

	for _, tc := range cases {
		got, err := NormalizePhoneNumber(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestNormalizePhoneNumberRejectsInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"abc",
		"0812",             // too short after normalization
		"+12345678901234567", // too long
		"+62abc1234567",
	} {
		_, err := NormalizePhoneNumber(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestHTTPProviderSend(t *testing.T) {
	var received gatewayRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(gatewayResponse{MessageID: "msg-1", Status: "sent"})
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL, "token-1")
	result := p.Send(context.Background(), "+6281234567890", "hello")

	assert.True(t, result.Success)
	assert.Equal(t, "msg-1", result.MessageID)
	assert.Equal(t, "+6281234567890", received.Phone)
	assert.Equal(t, "hello", received.Message)
}

func TestHTTPProviderSendGatewayFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	result := NewHTTPProvider(srv.URL, "").Send(context.Background(), "+6281234567890", "hello")

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}
