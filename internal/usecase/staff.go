package usecase

import (
	"context"
	"log/slog"

	"restaurant-pos/internal/domain/staff"
	"restaurant-pos/internal/domain/user"
	"restaurant-pos/internal/infra/converter"
	"restaurant-pos/internal/infra/wire"
	"restaurant-pos/internal/pkg/errs"
	"restaurant-pos/internal/pkg/notify"
	"restaurant-pos/internal/pkg/ptr"

	"github.com/google/uuid"
)

type StaffState struct {
	Members []staff.Member
	Meta
}

// StaffStore manages the people working at a location. Every operation needs a manager or
// higher.
type StaffStore struct {
	tracker[StaffState]
	identity Identity
	tables   Tables
	session  Session
}

func NewStaffStore(identity Identity, tables Tables, session Session, notifier notify.Notifier, logger *slog.Logger) *StaffStore {
	return &StaffStore{
		tracker:  newTracker(StaffState{}, func(s *StaffState) *Meta { return &s.Meta }, notifier, logger),
		identity: identity,
		tables:   tables,
		session:  session,
	}
}

func memberID(m staff.Member) uuid.UUID { return m.ID }

func (s *StaffStore) requireManager() (user.User, error) {
	u, ok := s.session.CurrentUser()
	if !ok {
		return user.User{}, errs.NotSignedIn()
	}
	if !u.Role.AtLeast(user.RoleManager) {
		return user.User{}, errs.Forbidden("staff management requires the manager role")
	}
	return u, nil
}

func (s *StaffStore) cached(id uuid.UUID) (staff.Member, error) {
	m, ok := findByID(s.Snapshot().Members, id, memberID)
	if !ok {
		return staff.Member{}, errs.NotFound("staff member")
	}
	return m, nil
}

func (s *StaffStore) FetchStaff(ctx context.Context, locationID uuid.UUID) {
	s.begin()
	const title = "Could not load staff"

	if _, err := s.requireManager(); err != nil {
		s.fail(title, err)
		return
	}
	if locationID == uuid.Nil {
		s.fail(title, errs.Invalid(staff.ErrLocationRequired))
		return
	}

	q := wire.Where(wire.Eq("location_id", locationID.String())).Order("full_name", false)
	recs, err := s.tables.Select(ctx, wire.TableStaffMembers, q)
	if err != nil {
		s.fail(title, errs.Backend(err, "failed to fetch staff"))
		return
	}
	members, err := converter.StaffFromRecords(recs)
	if err != nil {
		s.fail(title, errs.Backend(err, "malformed staff member"))
		return
	}

	s.succeed(func(st *StaffState) {
		st.Members = members
	})
}

// CreateStaff inserts the staff record. When a password is given it first registers a sign-in
// identity and profile so the member can operate a terminal.
func (s *StaffStore) CreateStaff(ctx context.Context, in staff.CreateInput) (staff.Member, error) {
	s.begin()
	const title = "Could not add staff member"

	u, err := s.requireManager()
	if err != nil {
		return staff.Member{}, s.fail(title, err)
	}
	if in.Role == "" {
		in.Role = user.RoleStaff
	}
	if err := in.Validate(); err != nil {
		return staff.Member{}, s.fail(title, errs.Invalid(err))
	}
	if in.Role.Level() > u.Role.Level() {
		return staff.Member{}, s.fail(title, errs.Forbidden("cannot grant a role above your own"))
	}

	var userID *uuid.UUID
	if in.Password != "" {
		id, err := s.registerAccount(ctx, in, u.RestaurantID)
		if err != nil {
			return staff.Member{}, s.fail(title, err)
		}
		userID = &id
	}

	rec, err := s.tables.Insert(ctx, wire.TableStaffMembers, converter.StaffCreateToRecord(in, u.RestaurantID, userID))
	if err != nil {
		return staff.Member{}, s.fail(title, errs.Backend(err, "failed to create staff member"))
	}
	member, err := converter.StaffFromRecord(rec)
	if err != nil {
		return staff.Member{}, s.fail(title, errs.Backend(err, "malformed staff member"))
	}

	s.succeed(func(st *StaffState) {
		st.Members = upsertByID(st.Members, member, memberID)
	})
	s.notifier.Success("Staff member added", member.FullName)
	return member, nil
}

func (s *StaffStore) registerAccount(ctx context.Context, in staff.CreateInput, restaurantID *uuid.UUID) (uuid.UUID, error) {
	email, _ := user.NewEmail(in.Email)
	acct, err := s.identity.SignUp(ctx, email.Value(), in.Password)
	if err != nil {
		return uuid.Nil, errs.Backend(err, "identity registration failed")
	}
	id, err := uuid.Parse(acct.UserID)
	if err != nil {
		return uuid.Nil, errs.Backend(err, "identity returned a malformed user id")
	}

	profile := converter.ProfileToRecord(user.Profile{
		UserID:       id,
		Email:        email.Value(),
		FullName:     in.FullName,
		Role:         in.Role,
		RestaurantID: restaurantID,
	})
	profile["default_location_id"] = in.LocationID.String()
	if _, err := s.tables.Insert(ctx, wire.TableProfiles, profile); err != nil {
		return uuid.Nil, errs.Backend(err, "failed to create profile")
	}
	return id, nil
}

func (s *StaffStore) UpdateStaff(ctx context.Context, id uuid.UUID, in staff.UpdateInput) (staff.Member, error) {
	return s.patch(ctx, "Could not update staff member", id, in)
}

func (s *StaffStore) DeactivateStaff(ctx context.Context, id uuid.UUID) (staff.Member, error) {
	return s.patch(ctx, "Could not deactivate staff member", id, staff.UpdateInput{IsActive: ptr.Of(false)})
}

func (s *StaffStore) patch(ctx context.Context, title string, id uuid.UUID, in staff.UpdateInput) (staff.Member, error) {
	s.begin()

	u, err := s.requireManager()
	if err != nil {
		return staff.Member{}, s.fail(title, err)
	}
	if _, err := s.cached(id); err != nil {
		return staff.Member{}, s.fail(title, err)
	}
	if err := in.Validate(); err != nil {
		return staff.Member{}, s.fail(title, errs.Invalid(err))
	}
	if in.Role != nil && in.Role.Level() > u.Role.Level() {
		return staff.Member{}, s.fail(title, errs.Forbidden("cannot grant a role above your own"))
	}

	rec, err := s.tables.Update(ctx, wire.TableStaffMembers, id.String(), converter.StaffPatchToRecord(in))
	if err != nil {
		return staff.Member{}, s.fail(title, errs.Backend(err, "failed to update staff member"))
	}
	member, err := converter.StaffFromRecord(rec)
	if err != nil {
		return staff.Member{}, s.fail(title, errs.Backend(err, "malformed staff member"))
	}

	s.succeed(func(st *StaffState) {
		st.Members = upsertByID(st.Members, member, memberID)
	})
	return member, nil
}

func (s *StaffStore) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	s.begin()
	const title = "Could not remove staff member"

	if _, err := s.requireManager(); err != nil {
		return s.fail(title, err)
	}
	if _, err := s.cached(id); err != nil {
		return s.fail(title, err)
	}
	if err := s.tables.Delete(ctx, wire.TableStaffMembers, id.String()); err != nil {
		return s.fail(title, errs.Backend(err, "failed to delete staff member"))
	}

	s.succeed(func(st *StaffState) {
		st.Members = removeByID(st.Members, id, memberID)
	})
	return nil
}
