package utils

import (
	"acs/src/types"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var codePattern = regexp.MustCompile(`^[A-Z]+-[A-Z0-9]{1,4}-[A-Z0-9]{5}$`)

func neverTaken(code string) (bool, error) {
	return false, nil
}

func alwaysTaken(code string) (bool, error) {
	return true, nil
}

func TestBuildCodeFormat(t *testing.T) {
	code := BuildCode(CODE_REQUEST, "Smithson")
	assert.Regexp(t, codePattern, code)
	assert.True(t, strings.HasPrefix(code, "RQ-SMIT-"))
}

func TestBuildCodeEmptySource(t *testing.T) {
	code := BuildCode(CODE_BOOKING, "")
	assert.True(t, strings.HasPrefix(code, "BK-XXXX-"))
}

func TestBuildCodeNonAlphanumericSource(t *testing.T) {
	code := BuildCode(CODE_OPERATOR, "  ---  ")
	assert.True(t, strings.HasPrefix(code, "OP-XXXX-"))
}

func TestBuildCodeShortSource(t *testing.T) {
	code := BuildCode(CODE_QUOTE, "Li")
	assert.True(t, strings.HasPrefix(code, "QT-LI-"))
}

func TestGenerateCodeUnique(t *testing.T) {
	code, err := GenerateCode(CODE_PAYMENT, "invoice", neverTaken)
	assert.NoError(t, err)
	assert.Regexp(t, codePattern, code)
}

func TestGenerateCodeRetriesOnCollision(t *testing.T) {
	calls := 0
	exists := func(code string) (bool, error) {
		calls++
		return calls < 3, nil
	}
	code, err := GenerateCode(CODE_INVOICE, "booking", exists)
	assert.NoError(t, err)
	assert.NotEmpty(t, code)
	assert.Equal(t, 3, calls)
}

func TestGenerateCodeExhaustsAttempts(t *testing.T) {
	code, err := GenerateCode(CODE_REQUEST, "smith", alwaysTaken)
	assert.Empty(t, code)
	var generationErr *types.GenerationError
	assert.ErrorAs(t, err, &generationErr)
	assert.Equal(t, maxCodeAttempts, generationErr.Attempts)
}

func TestGenerateCodeFallbackOnProbeError(t *testing.T) {
	broken := func(code string) (bool, error) {
		return false, errors.New("connection refused")
	}
	code, err := GenerateCode(CODE_BOOKING, "smith", broken)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(code, "UN-"))
}

func TestGenerateCodeDistinct(t *testing.T) {
	seen := map[string]bool{}
	for range 100 {
		code, err := GenerateCode(CODE_PAX, "manifest", neverTaken)
		assert.NoError(t, err)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

func TestRoleCodeKind(t *testing.T) {
	assert.Equal(t, CODE_OPERATOR, RoleCodeKind(types.ROLE_OPERATOR))
	assert.Equal(t, CODE_AGENT, RoleCodeKind(types.ROLE_AGENT))
	assert.Equal(t, CODE_ADMIN, RoleCodeKind(types.ROLE_ADMIN))
	assert.Equal(t, CODE_PASSENGER, RoleCodeKind(types.ROLE_PASSENGER))
}

func TestEmailSequenceCode(t *testing.T) {
	assert.Equal(t, "RQ-SMIT-A1B2C-email-00001", EmailSequenceCode("RQ-SMIT-A1B2C", 1))
	assert.Equal(t, "BK-LI-9ZZZZ-email-00042", EmailSequenceCode("BK-LI-9ZZZZ", 42))
}
