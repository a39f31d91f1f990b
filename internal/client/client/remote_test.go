package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOffline_AlwaysUnavailable(t *testing.T) {
	ctx := context.Background()
	var r Remote = NewOffline()

	_, err := r.Me(ctx, "tok")
	require.ErrorIs(t, err, ErrUnavailable)
	_, err = r.Me(ctx, "")
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = r.RefreshToken(ctx, "refresh")
	require.ErrorIs(t, err, ErrUnavailable)

	require.ErrorIs(t, r.ChangePassword(ctx, "tok", "a", "b"), ErrUnavailable)
	require.ErrorIs(t, r.ChangePassword(ctx, "", "a", "b"), ErrUnauthorized)
	require.ErrorIs(t, r.RequestPasswordReset(ctx, "demo@khula.com"), ErrUnavailable)
	require.ErrorIs(t, r.ResetPassword(ctx, "reset", "New123!"), ErrUnavailable)
}
