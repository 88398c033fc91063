package converter

import (
	"encoding/json"
	"fmt"
	"time"

	"restaurant-pos/internal/infra/wire"

	"github.com/google/uuid"
)

// timeLayouts covers JSON wire timestamps and the text form Postgres uses.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999",
}

// reader pulls typed fields out of a record and remembers the first failure, so mapping
// code reads as a flat list of assignments followed by one error check.
type reader struct {
	rec   wire.Record
	table string
	err   error
}

func newReader(rec wire.Record, table string) *reader {
	return &reader{rec: rec, table: table}
}

func (r *reader) fail(key string, v any, want string) {
	if r.err == nil {
		r.err = fmt.Errorf("%s.%s: cannot read %T as %s", r.table, key, v, want)
	}
}

func (r *reader) str(key string) string {
	switch v := r.rec[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		r.fail(key, v, "string")
		return ""
	}
}

func (r *reader) uuid(key string) uuid.UUID {
	id, ok := r.uuidOpt(key)
	if !ok && r.err == nil {
		r.err = fmt.Errorf("%s.%s: missing id", r.table, key)
	}
	return id
}

func (r *reader) uuidPtr(key string) *uuid.UUID {
	id, ok := r.uuidOpt(key)
	if !ok {
		return nil
	}
	return &id
}

func (r *reader) uuidOpt(key string) (uuid.UUID, bool) {
	return r.parseUUID(key, r.rec[key])
}

func (r *reader) parseUUID(key string, raw any) (uuid.UUID, bool) {
	switch v := raw.(type) {
	case nil:
		return uuid.Nil, false
	case string:
		if v == "" {
			return uuid.Nil, false
		}
		id, err := uuid.Parse(v)
		if err != nil {
			r.fail(key, v, "uuid")
			return uuid.Nil, false
		}
		return id, true
	case uuid.UUID:
		return v, v != uuid.Nil
	case [16]byte:
		return uuid.UUID(v), true
	default:
		r.fail(key, v, "uuid")
		return uuid.Nil, false
	}
}

func (r *reader) uuidList(key string) []uuid.UUID {
	var raw []any
	switch v := r.rec[key].(type) {
	case nil:
		return nil
	case []any:
		raw = v
	case []string:
		for _, s := range v {
			raw = append(raw, s)
		}
	default:
		r.fail(key, v, "id list")
		return nil
	}

	out := make([]uuid.UUID, 0, len(raw))
	for _, e := range raw {
		if id, ok := r.parseUUID(key, e); ok {
			out = append(out, id)
		}
	}
	return out
}

func (r *reader) float(key string) float64 {
	f, _ := r.floatOpt(key)
	return f
}

func (r *reader) floatPtr(key string) *float64 {
	f, ok := r.floatOpt(key)
	if !ok {
		return nil
	}
	return &f
}

func (r *reader) floatOpt(key string) (float64, bool) {
	switch v := r.rec[key].(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			r.fail(key, v, "number")
			return 0, false
		}
		return f, true
	default:
		r.fail(key, v, "number")
		return 0, false
	}
}

func (r *reader) int(key string) int {
	f, ok := r.floatOpt(key)
	if !ok {
		return 0
	}
	return int(f)
}

func (r *reader) bool(key string) bool {
	switch v := r.rec[key].(type) {
	case nil:
		return false
	case bool:
		return v
	default:
		r.fail(key, v, "bool")
		return false
	}
}

func (r *reader) time(key string) time.Time {
	t, _ := r.timeOpt(key)
	return t
}

func (r *reader) timePtr(key string) *time.Time {
	t, ok := r.timeOpt(key)
	if !ok {
		return nil
	}
	return &t
}

func (r *reader) timeOpt(key string) (time.Time, bool) {
	switch v := r.rec[key].(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return v.UTC(), true
	case string:
		if v == "" {
			return time.Time{}, false
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t.UTC(), true
			}
		}
		r.fail(key, v, "timestamp")
		return time.Time{}, false
	default:
		r.fail(key, v, "timestamp")
		return time.Time{}, false
	}
}

func uuidOrNil(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}

func floatOrNil(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func timeOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
