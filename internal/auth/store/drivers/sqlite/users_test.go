package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vidora-app/vidora/internal/auth/domain"
	"github.com/vidora-app/vidora/internal/auth/store"
	"github.com/vidora-app/vidora/internal/auth/store/drivers/sqlite"
	"github.com/vidora-app/vidora/pkg/idx"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestUser() domain.User {
	id := idx.New().String()
	return domain.User{
		ID:           id,
		Username:     "user_" + id[len(id)-6:],
		Email:        "user_" + id[len(id)-6:] + "@example.com",
		FullName:     "Test User",
		Avatar:       "https://cdn.example.com/avatars/" + id,
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
	}
}

func TestCreateAndGetUser(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := newTestUser()
	require.NoError(t, st.Users().CreateUser(ctx, u))

	byID, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Username, byID.Username)
	require.Equal(t, u.Email, byID.Email)
	require.Equal(t, u.PasswordHash, byID.PasswordHash)
	require.Nil(t, byID.RefreshToken)
	require.False(t, byID.CreatedAt.IsZero())
	require.False(t, byID.UpdatedAt.IsZero())

	byUsername, err := st.Users().GetUserByUsername(ctx, u.Username)
	require.NoError(t, err)
	require.Equal(t, u.ID, byUsername.ID)

	byEmail, err := st.Users().GetUserByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)
}

func TestGetUserNotFound(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.Users().GetUserByID(ctx, idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Users().GetUserByUsername(ctx, "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Users().GetUserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateUserDuplicates(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := newTestUser()
	require.NoError(t, st.Users().CreateUser(ctx, u))

	sameUsername := newTestUser()
	sameUsername.Username = u.Username
	require.ErrorIs(t, st.Users().CreateUser(ctx, sameUsername), store.ErrAlreadyExists)

	sameEmail := newTestUser()
	sameEmail.Email = u.Email
	require.ErrorIs(t, st.Users().CreateUser(ctx, sameEmail), store.ErrAlreadyExists)
}

func TestUpdateRefreshToken(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := newTestUser()
	require.NoError(t, st.Users().CreateUser(ctx, u))

	token := "some.refresh.token"
	require.NoError(t, st.Users().UpdateRefreshToken(ctx, u.ID, &token))

	got, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RefreshToken)
	require.Equal(t, token, *got.RefreshToken)

	// nil clears the slot
	require.NoError(t, st.Users().UpdateRefreshToken(ctx, u.ID, nil))

	got, err = st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Nil(t, got.RefreshToken)
}

func TestUpdateMissingUser(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	missing := idx.New().String()

	token := "tok"
	require.ErrorIs(t, st.Users().UpdateRefreshToken(ctx, missing, &token), store.ErrNotFound)
	require.ErrorIs(t, st.Users().UpdatePasswordHash(ctx, missing, "hash"), store.ErrNotFound)
	require.ErrorIs(t, st.Users().UpdateAvatar(ctx, missing, "url"), store.ErrNotFound)
}

func TestUpdateAccountDetails(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := newTestUser()
	require.NoError(t, st.Users().CreateUser(ctx, u))

	require.NoError(t, st.Users().UpdateAccountDetails(ctx, u.ID, "New Name", "new@example.com"))

	got, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "New Name", got.FullName)
	require.Equal(t, "new@example.com", got.Email)

	// Email collisions surface as the duplicate sentinel.
	other := newTestUser()
	require.NoError(t, st.Users().CreateUser(ctx, other))
	err = st.Users().UpdateAccountDetails(ctx, other.ID, other.FullName, "new@example.com")
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUpdateImages(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := newTestUser()
	require.NoError(t, st.Users().CreateUser(ctx, u))

	require.NoError(t, st.Users().UpdateAvatar(ctx, u.ID, "https://cdn.example.com/a2"))
	require.NoError(t, st.Users().UpdateCoverImage(ctx, u.ID, "https://cdn.example.com/c2"))

	got, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/a2", got.Avatar)
	require.Equal(t, "https://cdn.example.com/c2", got.CoverImage)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := newTestUser()
	sentinel := errors.New("boom")

	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	_, err = st.Users().GetUserByID(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxCommits(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := newTestUser()
	err := st.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, u)
	})
	require.NoError(t, err)

	got, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Username, got.Username)
}

func TestTimestampsRoundTripUTC(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := newTestUser()
	before := time.Now().UTC().Add(-time.Second)
	require.NoError(t, st.Users().CreateUser(ctx, u))
	after := time.Now().UTC().Add(time.Second)

	got, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.CreatedAt.After(before) && got.CreatedAt.Before(after))
	require.Equal(t, time.UTC, got.CreatedAt.Location())
}
