package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truora/identity-bridge/proto"
)

// startedValidationBridge returns a bridge in validation mode and the
// recorded callback invocations.
func startedValidationBridge(t *testing.T) (*Bridge, *[]proto.ValidationResult, *[]proto.ValidationResult) {
	t.Helper()

	var completed, expired []proto.ValidationResult
	b := New(&fakeHost{}, Options{})
	err := b.StartValidation(ValidationParams{
		ValidationID: "v-1",
		OnComplete:   func(r proto.ValidationResult) { completed = append(completed, r) },
		OnExpired:    func(r proto.ValidationResult) { expired = append(expired, r) },
	})
	require.NoError(t, err)
	return b, &completed, &expired
}

func TestValidationDecoder(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantComplete []proto.ValidationResult
		wantExpired  []proto.ValidationResult
	}{
		{
			name: "onComplete with succeeded result",
			body: `onComplete:{"status":"succeeded","validationID":"v1"}`,
			wantComplete: []proto.ValidationResult{
				{Status: proto.ValidationStatus_Succeeded, ValidationID: "v1"},
			},
		},
		{
			name: "onComplete with failed result",
			body: `onComplete:{"status":"failed","validationID":"v2"}`,
			wantComplete: []proto.ValidationResult{
				{Status: proto.ValidationStatus_Failed, ValidationID: "v2"},
			},
		},
		{
			name: "onComplete with pending result",
			body: `onComplete:{"status":"pending","validationID":"v3"}`,
			wantComplete: []proto.ValidationResult{
				{Status: proto.ValidationStatus_Pending, ValidationID: "v3"},
			},
		},
		{
			name: "onExpired selects only the expiry callback",
			body: `onExpired:{"status":"pending","validationID":"v4"}`,
			wantExpired: []proto.ValidationResult{
				{Status: proto.ValidationStatus_Pending, ValidationID: "v4"},
			},
		},
		{
			name: "unknown prefix invokes nothing",
			body: `onCancelled:{"status":"failed","validationID":"v5"}`,
		},
		{
			name: "missing prefix invokes nothing",
			body: `{"status":"succeeded","validationID":"v6"}`,
		},
		{
			name: "undecodable payload invokes nothing",
			body: `onComplete:{"status":`,
		},
		{
			name: "empty body invokes nothing",
			body: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, completed, expired := startedValidationBridge(t)

			b.HandleMessage(RawMessage{ChannelName: proto.ValidationChannel, Body: tt.body})

			assert.Equal(t, tt.wantComplete, *completed)
			assert.Equal(t, tt.wantExpired, *expired)
		})
	}
}

func TestValidationDecoder_NilCallback(t *testing.T) {
	// A consumer that only cares about completion must not crash the
	// bridge when an expiry event arrives.
	b := New(&fakeHost{}, Options{})
	require.NoError(t, b.StartValidation(ValidationParams{ValidationID: "v-1"}))

	assert.NotPanics(t, func() {
		b.HandleMessage(RawMessage{
			ChannelName: proto.ValidationChannel,
			Body:        `onExpired:{"status":"pending","validationID":"v1"}`,
		})
	})
}

func TestValidationDecoder_CallbackInvokedExactlyOnce(t *testing.T) {
	b, completed, expired := startedValidationBridge(t)

	body := `onComplete:{"status":"succeeded","validationID":"v1"}`
	b.HandleMessage(RawMessage{ChannelName: proto.ValidationChannel, Body: body})
	b.HandleMessage(RawMessage{ChannelName: proto.ValidationChannel, Body: body})

	// One invocation per message, never more.
	assert.Len(t, *completed, 2)
	assert.Empty(t, *expired)
}
