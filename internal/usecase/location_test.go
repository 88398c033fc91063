//go:build unit

package usecase_test

import (
	"context"
	"testing"

	"restaurant-pos/internal/domain/location"
	"restaurant-pos/internal/domain/user"
	"restaurant-pos/internal/infra/wire"
	"restaurant-pos/internal/pkg/errs"
	"restaurant-pos/internal/pkg/ptr"
	"restaurant-pos/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type locationFixture struct {
	restA, restB, restC uuid.UUID
	alpha, beta, bravo  *builder.LocationBuilder
	charlie             *builder.LocationBuilder
}

func seedLocations(t *testing.T, h *harness) locationFixture {
	t.Helper()
	f := locationFixture{restA: uuid.New(), restB: uuid.New(), restC: uuid.New()}
	f.beta = builder.NewLocationBuilder(f.restA).WithName("Beta")
	f.alpha = builder.NewLocationBuilder(f.restA).WithName("Alpha").AsInactive()
	f.bravo = builder.NewLocationBuilder(f.restB).WithName("Bravo")
	f.charlie = builder.NewLocationBuilder(f.restC).WithName("Charlie")
	h.seed(t, wire.TableLocations, f.beta.BuildRecord(), f.alpha.BuildRecord(), f.bravo.BuildRecord(), f.charlie.BuildRecord())
	return f
}

func names(locs []location.Location) []string {
	out := make([]string, len(locs))
	for i, l := range locs {
		out[i] = l.Name
	}
	return out
}

func TestLocationStore_FetchScopesByRole(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name  string
		user  func(f locationFixture) *builder.UserBuilder
		want  []string
		calls int
	}{
		{
			name:  "manager は自分のレストランのみ",
			user:  func(f locationFixture) *builder.UserBuilder { return builder.NewUserBuilder().WithRestaurantID(f.restA) },
			want:  []string{"Alpha", "Beta"},
			calls: 1,
		},
		{
			name: "admin も自分のレストランのみ",
			user: func(f locationFixture) *builder.UserBuilder {
				return builder.NewUserBuilder().WithRole(user.RoleAdmin).WithRestaurantID(f.restB)
			},
			want:  []string{"Bravo"},
			calls: 1,
		},
		{
			name: "sub-super-admin は管理対象のレストランのみ",
			user: func(f locationFixture) *builder.UserBuilder {
				return builder.NewUserBuilder().WithRole(user.RoleSubSuperAdmin).Managing(f.restA, f.restC)
			},
			want:  []string{"Alpha", "Beta", "Charlie"},
			calls: 1,
		},
		{
			name: "管理対象のない sub-super-admin はすべて",
			user: func(f locationFixture) *builder.UserBuilder {
				return builder.NewUserBuilder().WithRole(user.RoleSubSuperAdmin).WithoutRestaurant()
			},
			want:  []string{"Alpha", "Beta", "Bravo", "Charlie"},
			calls: 1,
		},
		{
			name: "super-admin はすべて",
			user: func(f locationFixture) *builder.UserBuilder {
				return builder.NewUserBuilder().WithRole(user.RoleSuperAdmin).WithoutRestaurant()
			},
			want:  []string{"Alpha", "Beta", "Bravo", "Charlie"},
			calls: 1,
		},
		{
			name:  "レストランのない staff はバックエンドを呼ばない",
			user:  func(f locationFixture) *builder.UserBuilder { return builder.NewUserBuilder().WithRole(user.RoleStaff).WithoutRestaurant() },
			want:  []string{},
			calls: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			f := seedLocations(t, h)
			h.signIn(t, tc.user(f))

			h.locations.FetchLocations(ctx)

			st := h.locations.Snapshot()
			require.NoError(t, st.Err)
			assert.Equal(t, tc.want, names(st.Locations))
			assert.Equal(t, tc.calls, h.backend.count("select locations"))
		})
	}
}

func TestLocationStore_DefaultSelection(t *testing.T) {
	ctx := context.Background()

	t.Run("保存済みのデフォルトが結果にあれば選択する", func(t *testing.T) {
		h := newHarness(t)
		f := seedLocations(t, h)
		h.signIn(t, builder.NewUserBuilder().WithRestaurantID(f.restA).WithDefaultLocation(f.alpha.ID))

		h.locations.FetchLocations(ctx)

		sel, ok := h.locations.SelectedLocation()
		require.True(t, ok)
		assert.Equal(t, f.alpha.ID, sel.ID, "default wins even when inactive")
	})

	t.Run("デフォルトが見つからなければ名前順で最初のアクティブ", func(t *testing.T) {
		h := newHarness(t)
		f := seedLocations(t, h)
		h.signIn(t, builder.NewUserBuilder().WithRestaurantID(f.restA).WithDefaultLocation(f.bravo.ID))

		h.locations.FetchLocations(ctx)

		sel, ok := h.locations.SelectedLocation()
		require.True(t, ok)
		assert.Equal(t, "Beta", sel.Name)
	})

	t.Run("アクティブがなければ最初のロケーション", func(t *testing.T) {
		h := newHarness(t)
		rest := uuid.New()
		h.seed(t, wire.TableLocations,
			builder.NewLocationBuilder(rest).WithName("Zulu").AsInactive().BuildRecord(),
			builder.NewLocationBuilder(rest).WithName("Yankee").AsInactive().BuildRecord())
		h.signIn(t, builder.NewUserBuilder().WithRestaurantID(rest))

		h.locations.FetchLocations(ctx)

		sel, ok := h.locations.SelectedLocation()
		require.True(t, ok)
		assert.Equal(t, "Yankee", sel.Name)
	})

	t.Run("結果が空なら選択なし", func(t *testing.T) {
		h := newHarness(t)
		h.signIn(t, builder.NewUserBuilder())

		h.locations.FetchLocations(ctx)

		_, ok := h.locations.SelectedLocation()
		assert.False(t, ok)
	})
}

func TestLocationStore_FetchFailureIsSwallowed(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, builder.NewUserBuilder())
	h.backend.SetUnavailable(true)

	h.locations.FetchLocations(context.Background())

	st := h.locations.Snapshot()
	assert.True(t, errs.Is(st.Err, errs.ErrBackend))
	assert.False(t, st.IsLoading)
	assert.NotEmpty(t, h.notes.Recent())
}

func TestLocationStore_Mutations(t *testing.T) {
	ctx := context.Background()

	t.Run("admin が作成・更新・削除できる", func(t *testing.T) {
		h := newHarness(t)
		f := seedLocations(t, h)
		h.signIn(t, builder.NewUserBuilder().WithRole(user.RoleAdmin).WithRestaurantID(f.restA))
		h.locations.FetchLocations(ctx)

		created, err := h.locations.CreateLocation(ctx, location.CreateInput{Name: "Airport", TaxRate: 8.25})
		require.NoError(t, err)
		assert.Equal(t, f.restA, created.RestaurantID)
		assert.Equal(t, location.StatusActive, created.Status)
		assert.Equal(t, []string{"Airport", "Alpha", "Beta"}, names(h.locations.Snapshot().Locations))

		updated, err := h.locations.UpdateLocation(ctx, created.ID, location.UpdateInput{Name: ptr.Of("Zed Airport")})
		require.NoError(t, err)
		assert.Equal(t, "Zed Airport", updated.Name)
		assert.Equal(t, 8.25, updated.TaxRate)
		assert.Equal(t, []string{"Alpha", "Beta", "Zed Airport"}, names(h.locations.Snapshot().Locations))

		require.NoError(t, h.locations.DeleteLocation(ctx, created.ID))
		assert.Equal(t, []string{"Alpha", "Beta"}, names(h.locations.Snapshot().Locations))
	})

	t.Run("manager は作成できない", func(t *testing.T) {
		h := newHarness(t)
		h.signIn(t, builder.NewUserBuilder())

		_, err := h.locations.CreateLocation(ctx, location.CreateInput{Name: "Airport"})

		assert.True(t, errs.Is(err, errs.ErrForbidden))
		assert.Equal(t, 0, h.backend.total())
	})

	t.Run("キャッシュにないロケーションは更新できない", func(t *testing.T) {
		h := newHarness(t)
		h.signIn(t, builder.NewUserBuilder().WithRole(user.RoleAdmin))

		_, err := h.locations.UpdateLocation(ctx, uuid.New(), location.UpdateInput{Name: ptr.Of("x")})

		assert.True(t, errs.Is(err, errs.ErrNotFound))
		assert.True(t, errs.Is(err, errs.ErrPrecondition))
		assert.Equal(t, 0, h.backend.total())
	})
}

func TestLocationStore_SetDefaultLocation(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	f := seedLocations(t, h)
	h.signIn(t, builder.NewUserBuilder().WithRestaurantID(f.restA))
	h.locations.FetchLocations(ctx)

	require.NoError(t, h.locations.SetDefaultLocation(ctx, f.alpha.ID))

	u, _ := h.auth.CurrentUser()
	require.NotNil(t, u.DefaultLocationID)
	assert.Equal(t, f.alpha.ID, *u.DefaultLocationID)
	sel, _ := h.locations.SelectedLocation()
	assert.Equal(t, f.alpha.ID, sel.ID)
	assert.Equal(t, 1, h.backend.count("update profiles"))
}
