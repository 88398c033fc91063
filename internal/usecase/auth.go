package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"restaurant-pos/internal/domain/auth"
	"restaurant-pos/internal/domain/user"
	"restaurant-pos/internal/infra"
	"restaurant-pos/internal/infra/converter"
	"restaurant-pos/internal/infra/wire"
	"restaurant-pos/internal/pkg/clock"
	"restaurant-pos/internal/pkg/errs"
	"restaurant-pos/internal/pkg/notify"

	"github.com/google/uuid"
)

type AuthStatus string

const (
	AuthSignedOut      AuthStatus = "signed-out"
	AuthAuthenticating AuthStatus = "authenticating"
	AuthSignedIn       AuthStatus = "signed-in"
	AuthError          AuthStatus = "error"
)

type AuthState struct {
	Status          AuthStatus
	User            *user.User
	IsAuthenticated bool
	AccessToken     string
	ExpiresAt       time.Time
	Meta
}

// AuthStore owns the signed-in operator of this terminal.
type AuthStore struct {
	tracker[AuthState]
	identity Identity
	tables   Tables
	clock    clock.Clock
	bg       sync.WaitGroup
}

func NewAuthStore(identity Identity, tables Tables, notifier notify.Notifier, clk clock.Clock, logger *slog.Logger) *AuthStore {
	return &AuthStore{
		tracker:  newTracker(AuthState{Status: AuthSignedOut}, func(s *AuthState) *Meta { return &s.Meta }, notifier, logger),
		identity: identity,
		tables:   tables,
		clock:    clk,
	}
}

func signedOut(s *AuthState) {
	s.User = nil
	s.IsAuthenticated = false
	s.AccessToken = ""
	s.ExpiresAt = time.Time{}
}

// SignIn authenticates against the identity endpoint and loads the operator profile. Any failure
// leaves the store signed out, whatever it held before.
func (s *AuthStore) SignIn(ctx context.Context, email, password string) (user.User, error) {
	s.begin()
	s.update(func(st *AuthState) {
		st.Status = AuthAuthenticating
		signedOut(st)
	})

	failed := func(err error) (user.User, error) {
		return user.User{}, s.failWith("Sign in failed", err, func(st *AuthState) {
			st.Status = AuthError
			signedOut(st)
		})
	}

	creds, err := auth.ParseCredentials(email, password)
	if err != nil {
		return failed(errs.Invalid(err))
	}

	sess, err := s.identity.SignInWithPassword(ctx, creds.Email, creds.Password)
	if err != nil {
		if infra.IsKind(err, infra.KindInvalidCredentials) {
			return failed(errs.Backend(errs.Mark(err, auth.ErrInvalidCredentials), "sign in rejected"))
		}
		return failed(errs.Backend(err, "sign in request failed"))
	}

	u, err := s.loadProfile(ctx, sess.UserID)
	if err != nil {
		return failed(err)
	}
	if !u.IsActive {
		s.revoke(sess.AccessToken)
		return failed(errs.Forbidden("user account is inactive"))
	}

	s.succeed(func(st *AuthState) {
		st.Status = AuthSignedIn
		st.User = &u
		st.IsAuthenticated = true
		st.AccessToken = sess.AccessToken
		st.ExpiresAt = sess.ExpiresAt
	})
	s.touchLastLogin(u.ID)
	s.logger.Info("signed in", slog.String("user_id", u.ID.String()), slog.String("role", u.Role.String()))
	return u, nil
}

func (s *AuthStore) loadProfile(ctx context.Context, userID string) (user.User, error) {
	q := wire.Where(wire.Eq("id", userID))
	q.Limit = 1
	recs, err := s.tables.Select(ctx, wire.TableProfiles, q)
	if err != nil {
		return user.User{}, errs.Backend(err, "failed to load profile")
	}
	if len(recs) == 0 {
		return user.User{}, errs.Backend(errs.New("no profile for signed-in user"), "failed to load profile")
	}
	u, err := converter.UserFromProfile(recs[0])
	if err != nil {
		return user.User{}, errs.Backend(err, "malformed profile")
	}
	return u, nil
}

// touchLastLogin records the sign-in time without holding up the caller. Failures are only
// logged.
func (s *AuthStore) touchLastLogin(userID uuid.UUID) {
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		patch := wire.Record{"last_login_at": s.clock.Now()}
		if _, err := s.tables.Update(ctx, wire.TableProfiles, userID.String(), patch); err != nil {
			s.logger.Warn("failed to update last login", slog.String("user_id", userID.String()), slog.String("error", err.Error()))
		}
	}()
}

// revoke drops a backend session nobody will use.
func (s *AuthStore) revoke(token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.identity.SignOut(ctx, token); err != nil {
		s.logger.Warn("failed to revoke session", slog.String("error", err.Error()))
	}
}

// WaitBackground blocks until background profile writes have finished.
func (s *AuthStore) WaitBackground() {
	s.bg.Wait()
}

// SignUp registers an identity and its profile. The caller stays signed in as before.
// Anything above staff must be granted by a signed-in admin, and never above the admin's own
// role.
func (s *AuthStore) SignUp(ctx context.Context, in user.SignUpInput) (user.User, error) {
	s.begin()
	const title = "Sign up failed"

	if err := in.Validate(); err != nil {
		return user.User{}, s.fail(title, errs.Invalid(err))
	}
	if in.Role == "" {
		in.Role = user.RoleStaff
	}
	if err := s.canGrant(in.Role); err != nil {
		return user.User{}, s.fail(title, err)
	}
	email, _ := user.NewEmail(in.Email)

	acct, err := s.identity.SignUp(ctx, email.Value(), in.Password)
	if err != nil {
		return user.User{}, s.fail(title, errs.Backend(err, "identity registration failed"))
	}
	userID, err := uuid.Parse(acct.UserID)
	if err != nil {
		return user.User{}, s.fail(title, errs.Backend(err, "identity returned a malformed user id"))
	}

	rec, err := s.tables.Insert(ctx, wire.TableProfiles, converter.ProfileToRecord(user.Profile{
		UserID:       userID,
		Email:        email.Value(),
		FullName:     in.FullName,
		Role:         in.Role,
		RestaurantID: in.RestaurantID,
		Language:     in.Language,
	}))
	if err != nil {
		return user.User{}, s.fail(title, errs.Backend(err, "failed to create profile"))
	}
	u, err := converter.UserFromProfile(rec)
	if err != nil {
		return user.User{}, s.fail(title, errs.Backend(err, "malformed profile"))
	}

	s.succeed(nil)
	s.notifier.Success("Account created", u.Email)
	return u, nil
}

// SignOut clears the local operator even when the backend session could not be revoked.
func (s *AuthStore) SignOut(ctx context.Context) error {
	s.begin()
	token := s.Snapshot().AccessToken

	var err error
	if token != "" {
		err = s.identity.SignOut(ctx, token)
	}

	if err != nil {
		return s.failWith("Sign out failed", errs.Backend(err, "failed to revoke session"), func(st *AuthState) {
			st.Status = AuthSignedOut
			signedOut(st)
		})
	}
	s.succeed(func(st *AuthState) {
		st.Status = AuthSignedOut
		signedOut(st)
	})
	return nil
}

func (s *AuthStore) canGrant(role user.Role) error {
	if role == user.RoleStaff {
		return nil
	}
	granter, ok := s.CurrentUser()
	if !ok || !granter.Role.AtLeast(user.RoleAdmin) {
		return errs.Forbidden(fmt.Sprintf("the %s role must be granted by an admin", role))
	}
	if role.Level() > granter.Role.Level() {
		return errs.Forbidden("cannot grant a role above your own")
	}
	return nil
}

// UpdateRole changes the operator's own role. It can only step down.
func (s *AuthStore) UpdateRole(ctx context.Context, role user.Role) (user.User, error) {
	const title = "Role update failed"
	if _, err := user.NewRole(role.String()); err != nil {
		s.begin()
		return user.User{}, s.fail(title, errs.Invalid(err))
	}
	if cur, ok := s.CurrentUser(); ok && role.Level() > cur.Role.Level() {
		s.begin()
		return user.User{}, s.fail(title, errs.Forbidden("cannot raise your own role"))
	}
	return s.updateProfile(ctx, title, wire.Record{"role": role.String()}, func(u *user.User) {
		u.Role = role
	})
}

func (s *AuthStore) UpdateLanguage(ctx context.Context, lang string) (user.User, error) {
	lang, err := user.NewLanguage(lang)
	if err != nil {
		s.begin()
		return user.User{}, s.fail("Language update failed", errs.Invalid(err))
	}
	return s.updateProfile(ctx, "Language update failed", wire.Record{"language": lang}, func(u *user.User) {
		u.Language = lang
	})
}

// updateProfile writes patch to the operator's profile row and then applies only the matching
// change locally.
func (s *AuthStore) updateProfile(ctx context.Context, title string, patch wire.Record, apply func(*user.User)) (user.User, error) {
	s.begin()
	current, ok := s.CurrentUser()
	if !ok {
		return user.User{}, s.fail(title, errs.NotSignedIn())
	}

	if _, err := s.tables.Update(ctx, wire.TableProfiles, current.ID.String(), patch); err != nil {
		return user.User{}, s.fail(title, errs.Backend(err, "failed to update profile"))
	}

	var out user.User
	s.succeed(func(st *AuthState) {
		out = patchUser(st, apply)
	})
	return out, nil
}

// PatchUser applies fn to the local operator only. Callers persist the change themselves.
func (s *AuthStore) PatchUser(fn func(*user.User)) {
	s.update(func(st *AuthState) {
		patchUser(st, fn)
	})
}

func patchUser(st *AuthState, fn func(*user.User)) user.User {
	if st.User == nil {
		return user.User{}
	}
	u := *st.User
	fn(&u)
	st.User = &u
	return u
}

func (s *AuthStore) CurrentUser() (user.User, bool) {
	st := s.Snapshot()
	if !st.IsAuthenticated || st.User == nil {
		return user.User{}, false
	}
	return *st.User, true
}

func (s *AuthStore) AccessToken() string {
	return s.Snapshot().AccessToken
}
