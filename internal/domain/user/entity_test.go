//go:build unit

package user_test

import (
	"testing"

	"restaurant-pos/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole(t *testing.T) {
	t.Run("ロール階層", func(t *testing.T) {
		assert.True(t, user.RoleSuperAdmin.AtLeast(user.RoleManager))
		assert.True(t, user.RoleManager.AtLeast(user.RoleManager))
		assert.False(t, user.RoleStaff.AtLeast(user.RoleManager))
		assert.False(t, user.Role("owner").AtLeast(user.RoleStaff))
	})

	t.Run("ロール検証", func(t *testing.T) {
		cases := []struct {
			in    string
			errIs error
		}{
			{in: "super-admin"},
			{in: "sub-super-admin"},
			{in: "admin"},
			{in: "manager"},
			{in: "staff"},
			{in: "viewer", errIs: user.ErrInvalidRole},
			{in: "", errIs: user.ErrInvalidRole},
		}
		for _, c := range cases {
			t.Run(c.in, func(t *testing.T) {
				role, err := user.NewRole(c.in)
				if c.errIs != nil {
					require.ErrorIs(t, err, c.errIs)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, c.in, role.String())
			})
		}
	})
}

func TestUser_CanAccessRestaurant(t *testing.T) {
	own := uuid.New()
	other := uuid.New()

	cases := []struct {
		name string
		u    user.User
		want map[uuid.UUID]bool
	}{
		{
			name: "super-admin は全店舗OK",
			u:    user.User{Role: user.RoleSuperAdmin},
			want: map[uuid.UUID]bool{own: true, other: true},
		},
		{
			name: "sub-super-admin は管理店舗のみ",
			u:    user.User{Role: user.RoleSubSuperAdmin, ManagedRestaurantIDs: []uuid.UUID{own}},
			want: map[uuid.UUID]bool{own: true, other: false},
		},
		{
			name: "管理店舗なし sub-super-admin は制限なし",
			u:    user.User{Role: user.RoleSubSuperAdmin},
			want: map[uuid.UUID]bool{own: true, other: true},
		},
		{
			name: "manager は自店舗のみ",
			u:    user.User{Role: user.RoleManager, RestaurantID: &own},
			want: map[uuid.UUID]bool{own: true, other: false},
		},
		{
			name: "店舗未所属 staff はNG",
			u:    user.User{Role: user.RoleStaff},
			want: map[uuid.UUID]bool{own: false, other: false},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for id, want := range c.want {
				assert.Equal(t, want, c.u.CanAccessRestaurant(id))
			}
		})
	}
}

func TestSignUpInput_Validate(t *testing.T) {
	valid := user.SignUpInput{
		Email:    "Cashier@Example.com ",
		Password: "pin1234",
		FullName: "Ana Cashier",
		Role:     user.RoleStaff,
		Language: "es-MX",
	}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*user.SignUpInput)
		errIs  error
	}{
		{name: "無効なメールNG", mutate: func(in *user.SignUpInput) { in.Email = "nope" }, errIs: user.ErrInvalidEmail},
		{name: "短いパスワードNG", mutate: func(in *user.SignUpInput) { in.Password = "123" }, errIs: user.ErrPasswordTooWeak},
		{name: "氏名なしNG", mutate: func(in *user.SignUpInput) { in.FullName = "" }, errIs: user.ErrFullNameEmpty},
		{name: "無効なロールNG", mutate: func(in *user.SignUpInput) { in.Role = "owner" }, errIs: user.ErrInvalidRole},
		{name: "無効な言語NG", mutate: func(in *user.SignUpInput) { in.Language = "english" }, errIs: user.ErrInvalidLanguage},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := valid
			c.mutate(&in)
			assert.ErrorIs(t, in.Validate(), c.errIs)
		})
	}
}
