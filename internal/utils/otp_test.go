package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP_DigitsOnly(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateOTP(6)
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9', "code %q contains non-digit", code)
		}
	}
}

func TestGenerateOTP_Lengths(t *testing.T) {
	for _, length := range []int{1, 4, 6, 8, 9} {
		code, err := GenerateOTP(length)
		require.NoError(t, err)
		assert.Len(t, code, length)
	}
}

func TestGenerateOTP_DefaultsOnBadLength(t *testing.T) {
	code, err := GenerateOTP(0)
	require.NoError(t, err)
	assert.Len(t, code, 6)
}
