package usecase

import (
	"context"
	"log/slog"

	"restaurant-pos/internal/domain/location"
	"restaurant-pos/internal/domain/user"
	"restaurant-pos/internal/infra/converter"
	"restaurant-pos/internal/infra/wire"
	"restaurant-pos/internal/pkg/errs"
	"restaurant-pos/internal/pkg/notify"

	"github.com/google/uuid"
)

type LocationState struct {
	Locations []location.Location
	Selected  *location.Location
	Meta
}

type LocationStore struct {
	tracker[LocationState]
	tables  Tables
	session ProfileSession
}

func NewLocationStore(tables Tables, session ProfileSession, notifier notify.Notifier, logger *slog.Logger) *LocationStore {
	return &LocationStore{
		tracker: newTracker(LocationState{}, func(s *LocationState) *Meta { return &s.Meta }, notifier, logger),
		tables:  tables,
		session: session,
	}
}

func locationID(l location.Location) uuid.UUID { return l.ID }

// FetchLocations loads the locations visible to the operator, ordered by name, and selects the
// working location. Failures are reported through state only.
func (s *LocationStore) FetchLocations(ctx context.Context) {
	s.begin()
	const title = "Could not load locations"

	u, ok := s.session.CurrentUser()
	if !ok {
		s.fail(title, errs.NotSignedIn())
		return
	}

	scope := location.ScopeFor(u)
	if scope.IsEmpty() {
		s.succeed(func(st *LocationState) {
			st.Locations = nil
			st.Selected = nil
		})
		return
	}

	q := wire.Query{}.Order("name", false)
	if !scope.All {
		ids := make([]string, len(scope.RestaurantIDs))
		for i, id := range scope.RestaurantIDs {
			ids[i] = id.String()
		}
		q.Filters = append(q.Filters, wire.In("restaurant_id", ids))
	}

	recs, err := s.tables.Select(ctx, wire.TableLocations, q)
	if err != nil {
		s.fail(title, errs.Backend(err, "failed to fetch locations"))
		return
	}
	locs, err := converter.LocationsFromRecords(recs)
	if err != nil {
		s.fail(title, errs.Backend(err, "malformed location"))
		return
	}
	location.SortByName(locs)

	s.succeed(func(st *LocationState) {
		st.Locations = locs
		st.Selected = location.SelectDefault(locs, u.DefaultLocationID)
	})
}

func (s *LocationStore) requireAdmin() (user.User, error) {
	u, ok := s.session.CurrentUser()
	if !ok {
		return user.User{}, errs.NotSignedIn()
	}
	if !u.Role.AtLeast(user.RoleAdmin) {
		return user.User{}, errs.Forbidden("managing locations requires the admin role")
	}
	return u, nil
}

func (s *LocationStore) cached(id uuid.UUID) (location.Location, error) {
	l, ok := findByID(s.Snapshot().Locations, id, locationID)
	if !ok {
		return location.Location{}, errs.NotFound("location")
	}
	return l, nil
}

func (s *LocationStore) CreateLocation(ctx context.Context, in location.CreateInput) (location.Location, error) {
	s.begin()
	const title = "Could not create location"

	u, err := s.requireAdmin()
	if err != nil {
		return location.Location{}, s.fail(title, err)
	}
	if in.RestaurantID == uuid.Nil && u.RestaurantID != nil {
		in.RestaurantID = *u.RestaurantID
	}
	if err := in.Validate(); err != nil {
		return location.Location{}, s.fail(title, errs.Invalid(err))
	}
	if !u.CanAccessRestaurant(in.RestaurantID) {
		return location.Location{}, s.fail(title, errs.Forbidden("restaurant is outside your scope"))
	}

	rec, err := s.tables.Insert(ctx, wire.TableLocations, converter.LocationCreateToRecord(in))
	if err != nil {
		return location.Location{}, s.fail(title, errs.Backend(err, "failed to create location"))
	}
	created, err := converter.LocationFromRecord(rec)
	if err != nil {
		return location.Location{}, s.fail(title, errs.Backend(err, "malformed location"))
	}

	s.succeed(func(st *LocationState) {
		st.Locations = upsertByID(st.Locations, created, locationID)
		location.SortByName(st.Locations)
	})
	s.notifier.Success("Location created", created.Name)
	return created, nil
}

func (s *LocationStore) UpdateLocation(ctx context.Context, id uuid.UUID, in location.UpdateInput) (location.Location, error) {
	s.begin()
	const title = "Could not update location"

	if _, err := s.requireAdmin(); err != nil {
		return location.Location{}, s.fail(title, err)
	}
	if _, err := s.cached(id); err != nil {
		return location.Location{}, s.fail(title, err)
	}
	if err := in.Validate(); err != nil {
		return location.Location{}, s.fail(title, errs.Invalid(err))
	}

	rec, err := s.tables.Update(ctx, wire.TableLocations, id.String(), converter.LocationPatchToRecord(in))
	if err != nil {
		return location.Location{}, s.fail(title, errs.Backend(err, "failed to update location"))
	}
	updated, err := converter.LocationFromRecord(rec)
	if err != nil {
		return location.Location{}, s.fail(title, errs.Backend(err, "malformed location"))
	}

	s.succeed(func(st *LocationState) {
		st.Locations = upsertByID(st.Locations, updated, locationID)
		location.SortByName(st.Locations)
		if st.Selected != nil && st.Selected.ID == id {
			st.Selected = &updated
		}
	})
	return updated, nil
}

func (s *LocationStore) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	s.begin()
	const title = "Could not delete location"

	u, err := s.requireAdmin()
	if err != nil {
		return s.fail(title, err)
	}
	if _, err := s.cached(id); err != nil {
		return s.fail(title, err)
	}

	if err := s.tables.Delete(ctx, wire.TableLocations, id.String()); err != nil {
		return s.fail(title, errs.Backend(err, "failed to delete location"))
	}

	s.succeed(func(st *LocationState) {
		st.Locations = removeByID(st.Locations, id, locationID)
		if st.Selected != nil && st.Selected.ID == id {
			st.Selected = location.SelectDefault(st.Locations, u.DefaultLocationID)
		}
	})
	return nil
}

// SelectLocation switches the working location among the cached ones. It does not touch the
// backend.
func (s *LocationStore) SelectLocation(id uuid.UUID) (location.Location, error) {
	l, err := s.cached(id)
	if err != nil {
		return location.Location{}, s.fail("Could not select location", err)
	}
	s.update(func(st *LocationState) {
		st.Selected = &l
		st.Err = nil
	})
	return l, nil
}

// SetDefaultLocation stores id as the operator's default and selects it.
func (s *LocationStore) SetDefaultLocation(ctx context.Context, id uuid.UUID) error {
	s.begin()
	const title = "Could not set default location"

	u, ok := s.session.CurrentUser()
	if !ok {
		return s.fail(title, errs.NotSignedIn())
	}
	l, err := s.cached(id)
	if err != nil {
		return s.fail(title, err)
	}

	patch := wire.Record{"default_location_id": id.String()}
	if _, err := s.tables.Update(ctx, wire.TableProfiles, u.ID.String(), patch); err != nil {
		return s.fail(title, errs.Backend(err, "failed to store default location"))
	}

	s.session.PatchUser(func(u *user.User) {
		u.DefaultLocationID = &id
	})
	s.succeed(func(st *LocationState) {
		st.Selected = &l
	})
	s.notifier.Success("Default location saved", l.Name)
	return nil
}

func (s *LocationStore) SelectedLocation() (location.Location, bool) {
	sel := s.Snapshot().Selected
	if sel == nil {
		return location.Location{}, false
	}
	return *sel, true
}
