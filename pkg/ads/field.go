package ads

import "time"

// Kind is the declared wire kind of a query or form field.
type Kind int

// Field kinds. KindDecimal fields are always money amounts carried in
// micro-units on the wire.
const (
	KindString Kind = iota + 1
	KindStringList
	KindEnum
	KindEnumList
	KindInteger
	KindDecimal
	KindBoolean
	KindTimestamp
	KindTimestampRange
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindStringList:
		return "string-list"
	case KindEnum:
		return "enum"
	case KindEnumList:
		return "enum-list"
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindBoolean:
		return "boolean"
	case KindTimestamp:
		return "timestamp"
	case KindTimestampRange:
		return "timestamp-range"
	default:
		return "unknown"
	}
}

// FieldDescriptor declares one query or form field: its Go-side name, the key
// the API expects, its value kind, and its position in the encoded output.
type FieldDescriptor struct {
	// Order fixes the emission position; lower values come first.
	Order int
	// Name is the Go-side field name, used in error messages.
	Name string
	// Wire is the key sent to the API.
	Wire string
	// PluralWire, when set, replaces Wire for list values holding more than
	// one element.
	PluralWire string
	// RangeWire holds the start and end keys of a timestamp-range field.
	RangeWire [2]string
	Kind      Kind
}

// wireFor picks the key for a list of n elements.
func (d FieldDescriptor) wireFor(n int) string {
	if d.PluralWire != "" && n > 1 {
		return d.PluralWire
	}

	return d.Wire
}

// Opt is a tri-state field value: unset, or set to a value (including the
// zero value). Only set fields are encoded.
type Opt[T any] struct {
	value T
	set   bool
}

// Set returns an Opt holding v.
func Set[T any](v T) Opt[T] {
	return Opt[T]{value: v, set: true}
}

// Get returns the value and whether it was set.
func (o Opt[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether the value was explicitly set.
func (o Opt[T]) IsSet() bool {
	return o.set
}

// OrElse returns the value if set, otherwise def.
func (o Opt[T]) OrElse(def T) T {
	if o.set {
		return o.value
	}

	return def
}

// Set stores v and marks the field as touched.
func (o *Opt[T]) Set(v T) {
	o.value = v
	o.set = true
}

// Unset clears the field.
func (o *Opt[T]) Unset() {
	var zero T

	o.value = zero
	o.set = false
}

// FieldValue pairs a descriptor with the caller's value.
type FieldValue struct {
	Descriptor FieldDescriptor
	Value      any
	Set        bool
}

// Field builds a FieldValue from a descriptor and an Opt.
func Field[T any](d FieldDescriptor, o Opt[T]) FieldValue {
	v, ok := o.Get()

	return FieldValue{Descriptor: d, Value: v, Set: ok}
}

// TimeRange is the value of a timestamp-range field. A zero Start or End
// leaves that side of the range out of the request.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange returns a closed range.
func NewTimeRange(start, end time.Time) TimeRange {
	return TimeRange{Start: start, End: end}
}

// Fielder is implemented by every query and form type.
type Fielder interface {
	Fields() []FieldValue
}
