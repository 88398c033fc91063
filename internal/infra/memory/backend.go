// Package memory is an in-process backend with the same table and identity semantics as the
// postgres driver. Rows round-trip through JSON on every write so callers see wire-shaped
// values: ISO-8601 timestamp strings, float64 numbers and string ids.
package memory

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"restaurant-pos/internal/infra"
	"restaurant-pos/internal/infra/wire"
	"restaurant-pos/internal/pkg/clock"
	"restaurant-pos/internal/pkg/password"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var tablesWithUpdatedAt = map[string]bool{
	wire.TableProfiles:     true,
	wire.TableLocations:    true,
	wire.TableMenuItems:    true,
	wire.TableOrders:       true,
	wire.TableStaffMembers: true,
}

type account struct {
	id   string
	hash string
}

type session struct {
	userID    string
	expiresAt time.Time
}

type Backend struct {
	mu          sync.RWMutex
	rows        map[string][]wire.Record
	accounts    map[string]account
	sessions    map[string]session
	sessionTTL  time.Duration
	unavailable atomic.Bool
	clock       clock.Clock
	logger      *slog.Logger
}

func NewBackend(clk clock.Clock, logger *slog.Logger, sessionTTL time.Duration) *Backend {
	return &Backend{
		rows:       make(map[string][]wire.Record),
		accounts:   make(map[string]account),
		sessions:   make(map[string]session),
		sessionTTL: sessionTTL,
		clock:      clk,
		logger:     logger,
	}
}

// SetUnavailable makes every call fail as if the network were down.
func (b *Backend) SetUnavailable(down bool) {
	b.unavailable.Store(down)
}

func (b *Backend) Ping(context.Context) error {
	if b.unavailable.Load() {
		return infra.NewBackendErr(infra.KindUnavailable, "ping", errUnreachable)
	}
	return nil
}

// Seed inserts rows as given, bypassing defaults. Meant for demo data and tests.
func (b *Backend) Seed(table string, recs ...wire.Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range recs {
		row, err := toWire(r)
		if err != nil {
			return err
		}
		b.rows[table] = append(b.rows[table], row)
	}
	return nil
}

func (b *Backend) Select(_ context.Context, table string, q wire.Query) ([]wire.Record, error) {
	if err := b.check("select " + table); err != nil {
		return nil, err
	}
	filters, err := wireFilters(q.Filters)
	if err != nil {
		return nil, infra.WrapBackendErr(b.logger, infra.KindInvalidRequest, "select "+table, err)
	}

	b.mu.RLock()
	var out []wire.Record
	for _, r := range b.rows[table] {
		if matches(r, filters) {
			out = append(out, clone(r))
		}
	}
	b.mu.RUnlock()

	if len(q.OrderBy) > 0 {
		slices.SortStableFunc(out, func(a, c wire.Record) int {
			for _, o := range q.OrderBy {
				d := compareValues(a[o.Column], c[o.Column])
				if o.Desc {
					d = -d
				}
				if d != 0 {
					return d
				}
			}
			return 0
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (b *Backend) Insert(_ context.Context, table string, rec wire.Record) (wire.Record, error) {
	if err := b.check("insert " + table); err != nil {
		return nil, err
	}
	row, err := toWire(rec)
	if err != nil {
		return nil, infra.WrapBackendErr(b.logger, infra.KindInvalidRequest, "insert "+table, err)
	}

	now := b.now()
	if v, _ := row["id"].(string); v == "" {
		row["id"] = uuid.NewString()
	}
	if _, ok := row["created_at"]; !ok {
		row["created_at"] = now
	}
	if tablesWithUpdatedAt[table] {
		if _, ok := row["updated_at"]; !ok {
			row["updated_at"] = now
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range b.rows[table] {
		if r["id"] == row["id"] {
			return nil, infra.WrapBackendErr(b.logger, infra.KindConflict, "insert "+table, fmt.Errorf("duplicate id %v", row["id"]))
		}
	}
	b.rows[table] = append(b.rows[table], row)
	return clone(row), nil
}

func (b *Backend) Update(_ context.Context, table, id string, patch wire.Record) (wire.Record, error) {
	if err := b.check("update " + table); err != nil {
		return nil, err
	}
	row, err := toWire(patch)
	if err != nil {
		return nil, infra.WrapBackendErr(b.logger, infra.KindInvalidRequest, "update "+table, err)
	}
	delete(row, "id")

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, r := range b.rows[table] {
		if r["id"] != id {
			continue
		}
		next := clone(r)
		for k, v := range row {
			next[k] = v
		}
		if _, ok := row["updated_at"]; !ok && tablesWithUpdatedAt[table] {
			next["updated_at"] = b.now()
		}
		b.rows[table][i] = next
		return clone(next), nil
	}
	return nil, infra.WrapBackendErr(b.logger, infra.KindNotFound, "update "+table, nil)
}

func (b *Backend) Delete(_ context.Context, table, id string) error {
	if err := b.check("delete " + table); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	rows := b.rows[table]
	idx := slices.IndexFunc(rows, func(r wire.Record) bool { return r["id"] == id })
	if idx < 0 {
		return infra.WrapBackendErr(b.logger, infra.KindNotFound, "delete "+table, nil)
	}
	b.rows[table] = slices.Delete(slices.Clone(rows), idx, idx+1)
	return nil
}

func (b *Backend) SignUp(_ context.Context, email, pw string) (wire.AuthAccount, error) {
	if err := b.check("sign up"); err != nil {
		return wire.AuthAccount{}, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := password.HashPasswordWithCost(pw, bcrypt.MinCost)
	if err != nil {
		return wire.AuthAccount{}, infra.WrapBackendErr(b.logger, infra.KindInvalidRequest, "sign up", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.accounts[email]; exists {
		return wire.AuthAccount{}, infra.WrapBackendErr(b.logger, infra.KindConflict, "sign up", fmt.Errorf("email %s already registered", email))
	}
	acc := account{id: uuid.NewString(), hash: hash}
	b.accounts[email] = acc
	return wire.AuthAccount{UserID: acc.id, Email: email}, nil
}

func (b *Backend) SignInWithPassword(_ context.Context, email, pw string) (wire.AuthSession, error) {
	if err := b.check("sign in"); err != nil {
		return wire.AuthSession{}, err
	}
	email = strings.ToLower(strings.TrimSpace(email))

	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.accounts[email]
	if !ok {
		return wire.AuthSession{}, infra.WrapBackendErr(b.logger, infra.KindInvalidCredentials, "sign in", nil)
	}
	if err := password.ComparePassword(acc.hash, pw); err != nil {
		return wire.AuthSession{}, infra.WrapBackendErr(b.logger, infra.KindInvalidCredentials, "sign in", err)
	}

	token := "mem_" + uuid.NewString()
	expiresAt := b.clock.Now().Add(b.sessionTTL)
	b.sessions[token] = session{userID: acc.id, expiresAt: expiresAt}
	return wire.AuthSession{UserID: acc.id, Email: email, AccessToken: token, ExpiresAt: expiresAt}, nil
}

func (b *Backend) SignOut(_ context.Context, accessToken string) error {
	if err := b.check("sign out"); err != nil {
		return err
	}
	b.mu.Lock()
	delete(b.sessions, accessToken)
	b.mu.Unlock()
	return nil
}

// ActiveSessions reports how many tokens are currently issued.
func (b *Backend) ActiveSessions() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.sessions)
}

func (b *Backend) check(op string) error {
	if b.unavailable.Load() {
		return infra.NewBackendErr(infra.KindUnavailable, op, errUnreachable)
	}
	return nil
}

func (b *Backend) now() string {
	return b.clock.Now().UTC().Format(time.RFC3339Nano)
}

var errUnreachable = errors.New("backend unreachable")

func toWire(rec wire.Record) (wire.Record, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var out wire.Record
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = wire.Record{}
	}
	return out, nil
}

func wireFilters(fs []wire.Filter) ([]wire.Filter, error) {
	out := make([]wire.Filter, len(fs))
	for i, f := range fs {
		switch f.Op {
		case wire.OpEq:
			w, err := toWire(wire.Record{"v": f.Value})
			if err != nil {
				return nil, err
			}
			out[i] = wire.Filter{Column: f.Column, Op: f.Op, Value: w["v"]}
		case wire.OpIn:
			values, ok := f.Value.([]string)
			if !ok {
				return nil, fmt.Errorf("in filter on %s needs []string, got %T", f.Column, f.Value)
			}
			out[i] = wire.Filter{Column: f.Column, Op: f.Op, Value: values}
		default:
			return nil, fmt.Errorf("unsupported filter op %q", f.Op)
		}
	}
	return out, nil
}

func matches(r wire.Record, filters []wire.Filter) bool {
	for _, f := range filters {
		v := r[f.Column]
		switch f.Op {
		case wire.OpEq:
			if compareValues(v, f.Value) != 0 || (v == nil) != (f.Value == nil) {
				return false
			}
		case wire.OpIn:
			s, ok := v.(string)
			if !ok || !slices.Contains(f.Value.([]string), s) {
				return false
			}
		}
	}
	return true
}

// compareValues orders wire values: nil first, then by type. Strings that parse as
// RFC 3339 timestamps compare chronologically.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		if !ok {
			break
		}
		tx, errX := time.Parse(time.RFC3339Nano, x)
		ty, errY := time.Parse(time.RFC3339Nano, y)
		if errX == nil && errY == nil {
			return tx.Compare(ty)
		}
		return strings.Compare(x, y)
	case float64:
		if y, ok := b.(float64); ok {
			return cmp.Compare(x, y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			default:
				return 1
			}
		}
	}

	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	return strings.Compare(string(ja), string(jb))
}

func clone(r wire.Record) wire.Record {
	out := make(wire.Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
