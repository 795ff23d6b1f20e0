package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeCallback(t *testing.T) {
	require.Equal(t, "noop", EncodeCallback(CallbackActionNoop))
	require.Equal(t, "vote,approve,abc123", EncodeCallback(CallbackActionVote, "approve", "abc123"))
	require.Equal(t, "pubvote,up", EncodeCallback(CallbackActionPubVote, "up"))
}

func TestParseCallbackRoundTrip(t *testing.T) {
	action, args, err := ParseCallback(EncodeCallback(CallbackActionVote, "reject", "64f0"))
	require.NoError(t, err)
	require.Equal(t, CallbackActionVote, action)
	require.Equal(t, []string{"reject", "64f0"}, args)

	action, args, err = ParseCallback("noop")
	require.NoError(t, err)
	require.Equal(t, CallbackActionNoop, action)
	require.Empty(t, args)
}

func TestParseCallbackMalformed(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"empty field", "vote,,64f0"},
		{"trailing comma", "pubvote,up,"},
		{"too many fields", "vote," + strings.Repeat("x,", 8) + "x"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseCallback(tc.data)
			require.Error(t, err)
		})
	}
}
