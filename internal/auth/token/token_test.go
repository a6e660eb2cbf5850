package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-for-token-tests")
	ResetTokenConfigForTesting()
	t.Cleanup(ResetTokenConfigForTesting)
}

func TestMintAndVerify(t *testing.T) {
	setupSecret(t)

	tok, err := Mint("1001", PurposeAccess)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := Verify(tok, PurposeAccess)
	require.NoError(t, err)
	assert.Equal(t, "1001", claims.MemberNo)
	assert.Equal(t, PurposeAccess, claims.Purpose)
	assert.NotEmpty(t, claims.ID)
}

func TestVerify_AcceptsBearerPrefix(t *testing.T) {
	setupSecret(t)

	tok, err := Mint("1001", PurposeAccess)
	require.NoError(t, err)

	claims, err := Verify("Bearer "+tok, PurposeAccess)
	require.NoError(t, err)
	assert.Equal(t, "1001", claims.MemberNo)
}

func TestVerify_RejectsWrongPurpose(t *testing.T) {
	setupSecret(t)

	tok, err := Mint("1001", PurposeReset)
	require.NoError(t, err)

	_, err = Verify(tok, PurposeAccess)
	assert.ErrorIs(t, err, ErrWrongPurpose)
}

func TestVerify_RejectsGarbage(t *testing.T) {
	setupSecret(t)

	_, err := Verify("not-a-token", PurposeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = Verify("", PurposeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsTamperedToken(t *testing.T) {
	setupSecret(t)

	tok, err := Mint("1001", PurposeAccess)
	require.NoError(t, err)

	tampered := tok[:len(tok)-4] + "AAAA"
	_, err = Verify(tampered, PurposeAccess)
	assert.Error(t, err)
}

func TestMint_UnknownPurpose(t *testing.T) {
	setupSecret(t)

	_, err := Mint("1001", "refresh")
	assert.Error(t, err)
}

func TestJTIIsUniquePerToken(t *testing.T) {
	setupSecret(t)

	first, err := Mint("1001", PurposeAccess)
	require.NoError(t, err)
	second, err := Mint("1001", PurposeAccess)
	require.NoError(t, err)

	firstClaims, err := Verify(first, PurposeAccess)
	require.NoError(t, err)
	secondClaims, err := Verify(second, PurposeAccess)
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}
