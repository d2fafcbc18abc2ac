package storage

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biqgook/raffletool/internal/models"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndGetUser(t *testing.T) {
	s := newTestStorage(t)

	err := s.AddUser(&models.User{
		RedditUsername: "shawnfinch2",
		PayPalName:     "Shawn Finch",
		DiscordName:    "shawn#1234",
	})
	require.NoError(t, err)

	user, err := s.GetUser("shawnfinch2")
	require.NoError(t, err)
	assert.Equal(t, "Shawn Finch", user.PayPalName)
	assert.Equal(t, "shawn#1234", user.DiscordName)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestAddUserRejectsDuplicate(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.AddUser(&models.User{RedditUsername: "dupe"}))
	err := s.AddUser(&models.User{RedditUsername: "dupe"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUserExists))
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.GetUser("nobody")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUserNotFound))
}

func TestUpdateUser(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.AddUser(&models.User{RedditUsername: "alice", PayPalName: "old"}))

	err := s.UpdateUser(&models.User{RedditUsername: "alice", PayPalName: "new", DiscordName: "alice#1"})
	require.NoError(t, err)

	user, err := s.GetUser("alice")
	require.NoError(t, err)
	assert.Equal(t, "new", user.PayPalName)
	assert.Equal(t, "alice#1", user.DiscordName)
}

func TestUpdateUserNotFound(t *testing.T) {
	s := newTestStorage(t)

	err := s.UpdateUser(&models.User{RedditUsername: "ghost"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUserNotFound))
}

func TestDeleteUser(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.AddUser(&models.User{RedditUsername: "bob"}))

	require.NoError(t, s.DeleteUser("bob"))

	_, err := s.GetUser("bob")
	assert.True(t, errors.Is(err, ErrUserNotFound))

	err = s.DeleteUser("bob")
	assert.True(t, errors.Is(err, ErrUserNotFound))
}

func TestListUsersOrdered(t *testing.T) {
	s := newTestStorage(t)
	for _, name := range []string{"zoe", "alice", "mike"} {
		require.NoError(t, s.AddUser(&models.User{RedditUsername: name}))
	}

	users, err := s.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "alice", users[0].RedditUsername)
	assert.Equal(t, "mike", users[1].RedditUsername)
	assert.Equal(t, "zoe", users[2].RedditUsername)
}
