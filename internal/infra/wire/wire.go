// Package wire holds the backend's row-level vocabulary: records keyed by snake_case
// column, simple queries, and what the identity endpoint returns.
package wire

import "time"

// Backend tables. Column names are snake_case, identical across drivers.
const (
	TableProfiles              = "profiles"
	TableLocations             = "locations"
	TableMenuItems             = "menu_items"
	TableOrders                = "orders"
	TableOrderPayments         = "order_payments"
	TableInventoryTransactions = "inventory_transactions"
	TableStaffMembers          = "staff_members"
)

// Record is one backend row keyed by column name.
type Record map[string]any

type FilterOp string

const (
	OpEq FilterOp = "eq"
	OpIn FilterOp = "in"
)

type Filter struct {
	Column string
	Op     FilterOp
	Value  any
}

type OrderBy struct {
	Column string
	Desc   bool
}

type Query struct {
	Filters []Filter
	OrderBy []OrderBy
	Limit   int
}

func Eq(column string, value any) Filter {
	return Filter{Column: column, Op: OpEq, Value: value}
}

// In matches rows whose column equals any of values. An empty list matches nothing.
func In(column string, values []string) Filter {
	return Filter{Column: column, Op: OpIn, Value: values}
}

func Where(filters ...Filter) Query {
	return Query{Filters: filters}
}

func (q Query) Order(column string, desc bool) Query {
	q.OrderBy = append(append([]OrderBy(nil), q.OrderBy...), OrderBy{Column: column, Desc: desc})
	return q
}

// AuthSession is what the identity endpoint returns for a successful sign-in.
type AuthSession struct {
	UserID      string
	Email       string
	AccessToken string
	ExpiresAt   time.Time
}

type AuthAccount struct {
	UserID string
	Email  string
}
