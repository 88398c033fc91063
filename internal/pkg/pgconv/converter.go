package pgconv

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
	invalidTextInput    = "22P02"
)

var ErrInvalidFloat64Value = errors.New("invalid float64 value in pgtype.Numeric")

// NormalizeRow rewrites the driver-specific values produced by pgx.RowToMap into plain Go
// values: uuids become canonical strings, numerics float64, arrays []any of normalized values.
func NormalizeRow(row map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(row))
	for k, v := range row {
		nv, err := NormalizeValue(v)
		if err != nil {
			return nil, err
		}
		out[k] = nv
	}
	return out, nil
}

func NormalizeValue(v any) (any, error) {
	switch x := v.(type) {
	case [16]byte:
		return uuid.UUID(x).String(), nil
	case pgtype.UUID:
		if !x.Valid {
			return nil, nil
		}
		return uuid.UUID(x.Bytes).String(), nil
	case pgtype.Numeric:
		f, err := Float64PtrFromNumeric(x)
		if err != nil {
			return nil, err
		}
		if f == nil {
			return nil, nil
		}
		return *f, nil
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			ne, err := NormalizeValue(e)
			if err != nil {
				return nil, err
			}
			out[i] = ne
		}
		return out, nil
	default:
		return v, nil
	}
}

func Float64PtrFromNumeric(pn pgtype.Numeric) (*float64, error) {
	if !pn.Valid {
		return nil, nil
	}

	value, err := pn.Float64Value()
	if err != nil {
		return nil, ErrInvalidFloat64Value
	}

	return &value.Float64, nil
}

// IsNoRows checks if the error is a "no rows" error from either sql or pgx
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}

func IsUniqueViolation(err error) bool {
	return hasCode(err, uniqueViolation)
}

// IsConstraintViolation reports foreign key and check failures, which the stores surface
// as rejected writes rather than outages.
func IsConstraintViolation(err error) bool {
	return hasCode(err, foreignKeyViolation) || hasCode(err, checkViolation)
}

// IsInvalidInput reports values the server could not parse, such as a malformed uuid.
func IsInvalidInput(err error) bool {
	return hasCode(err, invalidTextInput)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
