package console

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sipico/animal-inventory/internal/inventory"
	"github.com/sipico/animal-inventory/internal/session"
	"github.com/sipico/animal-inventory/internal/testutil/mockstore"
	"github.com/sipico/animal-inventory/internal/testutil/mockzoo"
)

func TestLoginStoresToken(t *testing.T) {
	t.Parallel()
	server := mockzoo.New()
	defer server.Close()
	require.NoError(t, server.AddUser("ana", "secret"))

	items := mockstore.New(nil)
	store := session.NewLocalStore(items)

	err := Login(context.Background(), inventory.NewClient(server.URL()), store, discard, "ana", "secret")
	require.NoError(t, err)

	token, err := store.Token(context.Background())
	require.NoError(t, err)
	sess, err := session.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "ana", sess.Subject)
	assert.True(t, items.Has(session.TokenKey))
}

func TestLoginFailureMessages(t *testing.T) {
	t.Parallel()

	t.Run("bad credentials", func(t *testing.T) {
		t.Parallel()
		server := mockzoo.New()
		defer server.Close()
		store := session.NewLocalStore(mockstore.New(nil))

		err := Login(context.Background(), inventory.NewClient(server.URL()), store, discard, "ana", "nope")

		var authErr *AuthError
		require.True(t, errors.As(err, &authErr))
		assert.Equal(t, MsgLoginFailed, authErr.Message)
		_, tokenErr := store.Token(context.Background())
		assert.ErrorIs(t, tokenErr, session.ErrNoToken)
	})

	t.Run("unreachable backend", func(t *testing.T) {
		t.Parallel()
		server := mockzoo.New()
		url := server.URL()
		server.Close()

		err := Login(context.Background(), inventory.NewClient(url), session.NewLocalStore(mockstore.New(nil)), discard, "ana", "x")

		var authErr *AuthError
		require.True(t, errors.As(err, &authErr))
		assert.Equal(t, MsgGeneric, authErr.Message)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		server := mockzoo.New()
		defer server.Close()
		require.NoError(t, server.AddUser("ana", "secret"))

		items := mockstore.New(nil)
		items.SetItemFunc = func(ctx context.Context, key, value string) error {
			return errors.New("disk full")
		}

		err := Login(context.Background(), inventory.NewClient(server.URL()), session.NewLocalStore(items), discard, "ana", "secret")

		var authErr *AuthError
		require.True(t, errors.As(err, &authErr))
		assert.Equal(t, MsgGeneric, authErr.Message)
	})
}

func TestRegister(t *testing.T) {
	t.Parallel()
	server := mockzoo.New()
	defer server.Close()
	client := inventory.NewClient(server.URL())

	require.NoError(t, Register(context.Background(), client, discard, "ana", "secret"))
	assert.True(t, server.HasUser("ana"))

	err := Register(context.Background(), client, discard, "ana", "secret")
	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, MsgRegisterFailed, authErr.Message)

	server.SetNextError(http.StatusServiceUnavailable, "down", 1)
	err = Register(context.Background(), client, discard, "bob", "secret")
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, MsgRegisterFailed, authErr.Message)
}

func TestLogoutRemovesToken(t *testing.T) {
	t.Parallel()
	items := mockstore.New(map[string]string{session.TokenKey: "t"})

	require.NoError(t, Logout(context.Background(), session.NewLocalStore(items)))
	assert.False(t, items.Has(session.TokenKey))
}
