//go:build unit

package staff_test

import (
	"testing"

	"restaurant-pos/internal/domain/staff"
	"restaurant-pos/internal/domain/user"
	"restaurant-pos/internal/pkg/ptr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCreateInput_Validate(t *testing.T) {
	base := staff.CreateInput{
		LocationID: uuid.New(),
		FullName:   "Luis Line",
		Role:       user.RoleStaff,
	}

	cases := []struct {
		name   string
		mutate func(*staff.CreateInput)
		errIs  error
	}{
		{name: "最小構成OK", mutate: func(*staff.CreateInput) {}},
		{name: "アカウント付きOK", mutate: func(in *staff.CreateInput) {
			in.Email = "luis@example.com"
			in.Password = "secret1"
		}},
		{name: "ロケーションなしNG", mutate: func(in *staff.CreateInput) { in.LocationID = uuid.Nil }, errIs: staff.ErrLocationRequired},
		{name: "氏名なしNG", mutate: func(in *staff.CreateInput) { in.FullName = "" }, errIs: staff.ErrFullNameRequired},
		{name: "パスワードのみNG", mutate: func(in *staff.CreateInput) { in.Password = "secret1" }, errIs: user.ErrInvalidEmail},
		{name: "無効なロールNG", mutate: func(in *staff.CreateInput) { in.Role = "chef" }, errIs: user.ErrInvalidRole},
		{name: "負の時給NG", mutate: func(in *staff.CreateInput) { in.HourlyRate = ptr.Of(-1.0) }, errIs: staff.ErrInvalidHourlyRate},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := base
			c.mutate(&in)
			err := in.Validate()
			if c.errIs == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, c.errIs)
		})
	}
}
