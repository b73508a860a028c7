// Package view derives the displayed task list from the cached collection
// and a shareable filter state. Nothing here touches the cache or a store.
package view

import (
	"net/url"
	"strings"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

// All is the filter value that disables a predicate.
const All = "all"

// Status filters tasks by completion.
type Status string

const (
	StatusAll       Status = All
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Order is the sort order of the derived list.
type Order string

const (
	OrderRecent       Order = "recent"
	OrderPriorityAsc  Order = "priority_asc"
	OrderPriorityDesc Order = "priority_desc"
)

// Query parameter names of the shareable filter state.
const (
	ParamCategory = "category"
	ParamStatus   = "status"
	ParamPriority = "priority"
	ParamOrder    = "order"
)

// Filter is the user-selected filter and sort state. Category and Priority
// hold All or a concrete value.
type Filter struct {
	Category types.Category `json:"category"`
	Status   Status         `json:"status"`
	Priority types.Priority `json:"priority"`
	Order    Order          `json:"order"`
}

// DefaultFilter shows every task, most recent first.
func DefaultFilter() Filter {
	return Filter{
		Category: All,
		Status:   StatusAll,
		Priority: All,
		Order:    OrderRecent,
	}
}

// ParseFilter reads filter state from a query string such as
// "category=work&order=priority_desc". A leading "?" is allowed. Unknown
// parameters are ignored and invalid values fall back to the default of
// their field.
func ParseFilter(rawQuery string) Filter {
	// ParseQuery returns whatever it could parse alongside the error.
	values, _ := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	return FilterFromValues(values)
}

// FilterFromValues reads filter state from parsed query values.
func FilterFromValues(values url.Values) Filter {
	return DefaultFilter().
		WithCategory(types.Category(values.Get(ParamCategory))).
		WithStatus(Status(values.Get(ParamStatus))).
		WithPriority(types.Priority(values.Get(ParamPriority))).
		WithOrder(Order(values.Get(ParamOrder)))
}

// Values returns the non-default fields as query values.
func (f Filter) Values() url.Values {
	f = f.normalize()
	d := DefaultFilter()
	values := url.Values{}
	if f.Category != d.Category {
		values.Set(ParamCategory, string(f.Category))
	}
	if f.Status != d.Status {
		values.Set(ParamStatus, string(f.Status))
	}
	if f.Priority != d.Priority {
		values.Set(ParamPriority, string(f.Priority))
	}
	if f.Order != d.Order {
		values.Set(ParamOrder, string(f.Order))
	}
	return values
}

// Encode returns the shareable query string, without a leading "?".
// The default filter encodes to "".
func (f Filter) Encode() string {
	return f.Values().Encode()
}

// IsDefault reports whether f shows every task in recency order.
func (f Filter) IsDefault() bool {
	return f.normalize() == DefaultFilter()
}

// Clear returns the default filter.
func (f Filter) Clear() Filter {
	return DefaultFilter()
}

// WithCategory returns a copy with the category predicate set. An
// unrecognized value resets it to All.
func (f Filter) WithCategory(c types.Category) Filter {
	if c != All && !c.Valid() {
		c = All
	}
	f.Category = c
	return f
}

// WithStatus returns a copy with the status predicate set.
func (f Filter) WithStatus(s Status) Filter {
	switch s {
	case StatusAll, StatusPending, StatusCompleted:
	default:
		s = StatusAll
	}
	f.Status = s
	return f
}

// WithPriority returns a copy with the priority predicate set. The unset
// priority is not selectable and resets the predicate to All.
func (f Filter) WithPriority(p types.Priority) Filter {
	if p != All && (p == types.PriorityUnset || !p.Valid()) {
		p = All
	}
	f.Priority = p
	return f
}

// WithOrder returns a copy with the sort order set.
func (f Filter) WithOrder(o Order) Filter {
	switch o {
	case OrderRecent, OrderPriorityAsc, OrderPriorityDesc:
	default:
		o = OrderRecent
	}
	f.Order = o
	return f
}

// normalize maps a zero or hand-built Filter onto valid values.
func (f Filter) normalize() Filter {
	return DefaultFilter().
		WithCategory(f.Category).
		WithStatus(f.Status).
		WithPriority(f.Priority).
		WithOrder(f.Order)
}
