package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"woa-fleet/hangar/internal/constants"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	token, expires, err := issuer.Issue(Principal{UserID: "u-1", Role: constants.RoleAdmin})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	p, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", p.UserID)
	assert.True(t, p.IsAdmin())
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	token, _, err := issuer.Issue(Principal{UserID: "u-1", Role: constants.RoleUser})
	require.NoError(t, err)

	_, err = NewTokenIssuer("other", time.Hour).Verify(token)
	assert.ErrorIs(t, err, constants.ErrInvalidToken)

	_, err = issuer.Verify("not-a-token")
	assert.ErrorIs(t, err, constants.ErrInvalidToken)

	expired := NewTokenIssuer("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.Issue(Principal{UserID: "u-1"})
	require.NoError(t, err)
	_, err = issuer.Verify(old)
	assert.ErrorIs(t, err, constants.ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	ok, err := CheckPassword(hash, "hunter22")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword(hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = CheckPassword("garbage", "x")
	assert.Error(t, err)
}

func TestPrincipalContext(t *testing.T) {
	_, ok := GetPrincipal(context.Background())
	assert.False(t, ok)

	ctx := SetPrincipal(context.Background(), Principal{UserID: "u-2", Role: constants.RoleUser})
	p, ok := GetPrincipal(ctx)
	require.True(t, ok)
	assert.Equal(t, "u-2", p.UserID)
	assert.False(t, p.IsAdmin())

	assert.Equal(t, "", GetRequestID(ctx))
	assert.Equal(t, "r-1", GetRequestID(SetRequestID(ctx, "r-1")))
}
