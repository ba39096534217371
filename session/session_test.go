package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jrsteele09/afterschool-portal/internal/mocks"
	"github.com/jrsteele09/afterschool-portal/session"
	"github.com/jrsteele09/afterschool-portal/storage/memstore"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	tokenKey = "afterschool.authToken"
	userKey  = "afterschool.currentUser"
)

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := session.NewStore(memstore.New(), tokenKey, userKey)

	require.NoError(t, s.Save(ctx, "a.b.c", "ADMIN", "Kim", "k@x.com"))

	got, ok, err := s.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, session.Session{Token: "a.b.c", Role: "ADMIN", Name: "Kim", Email: "k@x.com"}, got)
}

func TestStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s := session.NewStore(memstore.New(), tokenKey, userKey)

	require.NoError(t, s.Save(ctx, "a.b.c", "ADMIN", "Kim", "k@x.com"))
	require.NoError(t, s.Save(ctx, "d.e.f", "학생", "Lee", "l@x.com"))

	got, ok, err := s.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, session.Session{Token: "d.e.f", Role: "학생", Name: "Lee", Email: "l@x.com"}, got)
}

func TestStore_LoadLegacyRoleRecord(t *testing.T) {
	ctx := context.Background()
	backing := memstore.New()
	s := session.NewStore(backing, tokenKey, userKey)

	require.NoError(t, backing.Set(ctx, tokenKey, "a.b.c"))
	require.NoError(t, backing.Set(ctx, userKey, "TEACHER"))

	got, ok, err := s.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, session.Session{Token: "a.b.c", Role: "TEACHER"}, got)
}

func TestStore_ClearThenLoadIsAbsent(t *testing.T) {
	ctx := context.Background()
	s := session.NewStore(memstore.New(), tokenKey, userKey)

	require.NoError(t, s.Save(ctx, "a.b.c", "TEACHER", "Park", "p@x.com"))
	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))

	_, ok, err := s.Load(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = s.Token(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStore_PersistedLayout(t *testing.T) {
	ctx := context.Background()
	kv := memstore.New()
	s := session.NewStore(kv, tokenKey, userKey)

	require.NoError(t, s.Save(ctx, "a.b.c", "ADMIN", "Kim", "k@x.com"))

	token, ok, err := kv.Get(ctx, tokenKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a.b.c", token)

	user, ok, err := kv.Get(ctx, userKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"role":"ADMIN","name":"Kim","email":"k@x.com"}`, user)
	require.Equal(t, 2, kv.Len())
}

func TestStore_LegacyBareRole(t *testing.T) {
	ctx := context.Background()
	kv := memstore.New()
	require.NoError(t, kv.Set(ctx, tokenKey, "a.b.c"))
	require.NoError(t, kv.Set(ctx, userKey, "관리자"))

	got, ok, err := session.NewStore(kv, tokenKey, userKey).Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, session.Session{Token: "a.b.c", Role: "관리자"}, got)
}

func TestStore_UserWithoutToken(t *testing.T) {
	ctx := context.Background()
	kv := memstore.New()
	require.NoError(t, kv.Set(ctx, userKey, `{"role":"STUDENT","name":"Choi","email":"c@x.com"}`))

	got, ok, err := session.NewStore(kv, tokenKey, userKey).Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, got.HasToken())
	require.Equal(t, "STUDENT", got.Role)
}

func TestStore_StorageErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")

	t.Run("save propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		kv := mocks.NewMockStore(ctrl)
		kv.EXPECT().Set(gomock.Any(), tokenKey, "a.b.c").Return(boom)

		err := session.NewStore(kv, tokenKey, userKey).Save(ctx, "a.b.c", "ADMIN", "Kim", "k@x.com")
		require.ErrorIs(t, err, boom)
	})

	t.Run("failed user write drops the new token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		kv := mocks.NewMockStore(ctrl)
		gomock.InOrder(
			kv.EXPECT().Set(gomock.Any(), tokenKey, "a.b.c").Return(nil),
			kv.EXPECT().Set(gomock.Any(), userKey, gomock.Any()).Return(boom),
			kv.EXPECT().Remove(gomock.Any(), tokenKey).Return(nil),
			kv.EXPECT().Remove(gomock.Any(), userKey).Return(nil),
		)

		err := session.NewStore(kv, tokenKey, userKey).Save(ctx, "a.b.c", "ADMIN", "Kim", "k@x.com")
		require.ErrorIs(t, err, boom)
	})

	t.Run("failed user write leaves no session", func(t *testing.T) {
		kv := &userWriteFails{MemStore: memstore.New(), err: boom}
		s := session.NewStore(kv, tokenKey, userKey)
		require.NoError(t, kv.MemStore.Set(ctx, tokenKey, "old.token.sig"))
		require.NoError(t, kv.MemStore.Set(ctx, userKey, `{"role":"STUDENT","name":"Lee","email":"l@x.com"}`))

		require.ErrorIs(t, s.Save(ctx, "new.token.sig", "ADMIN", "Kim", "k@x.com"), boom)

		_, ok, err := s.Load(ctx)
		require.NoError(t, err)
		require.False(t, ok)
		_, ok, err = s.Token(ctx)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("load propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		kv := mocks.NewMockStore(ctrl)
		kv.EXPECT().Get(gomock.Any(), userKey).Return("", false, boom)

		_, ok, err := session.NewStore(kv, tokenKey, userKey).Load(ctx)
		require.ErrorIs(t, err, boom)
		require.False(t, ok)
	})

	t.Run("clear removes both keys even when one fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		kv := mocks.NewMockStore(ctrl)
		kv.EXPECT().Remove(gomock.Any(), tokenKey).Return(boom)
		kv.EXPECT().Remove(gomock.Any(), userKey).Return(nil)

		err := session.NewStore(kv, tokenKey, userKey).Clear(ctx)
		require.ErrorIs(t, err, boom)
	})
}

// userWriteFails rejects writes of the user record.
type userWriteFails struct {
	*memstore.MemStore
	err error
}

func (u *userWriteFails) Set(ctx context.Context, key, value string) error {
	if key == userKey {
		return u.err
	}
	return u.MemStore.Set(ctx, key, value)
}
