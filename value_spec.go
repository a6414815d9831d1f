package statefun

// ValueSpecBase is the type-erased projection of a ValueSpec: its name,
// TypeName and expiration policy, with the codec stripped out. This is
// what FunctionRegistry.RegisterFunction collects so that the registry
// doesn't need to be generic over every state cell's type.
//
// Equal reports two ValueSpecBases as equal iff name and typename are
// equal; expiration is metadata reported to the coordinator and is not part
// of equality, because the coordinator does not echo it back (spec §3).
// Go's == operator compares Expiration as well.
type ValueSpecBase struct {
	Name       string
	Typename   string
	Expiration Expiration
}

// Equal reports whether s and other name the same cell with the same
// TypeName, ignoring Expiration.
func (s ValueSpecBase) Equal(other ValueSpecBase) bool {
	return s.Name == other.Name && s.Typename == other.Typename
}

// ValueSpec binds a named persistent cell to its semantic Go type T, its
// TypeName and its Expiration policy.
type ValueSpec[T any] struct {
	Name       string
	Typename   string
	Expiration Expiration
	codec      Serializable[T]
}

// NewValueSpec declares a custom (non-built-in) named cell with the given
// TypeName and codec.
func NewValueSpec[T any](name, typename string, expiration Expiration, codec Serializable[T]) ValueSpec[T] {
	return ValueSpec[T]{Name: name, Typename: typename, Expiration: expiration, codec: codec}
}

// Base erases the value spec's type, for passing to
// FunctionRegistry.RegisterFunction's declared-specs list.
func (s ValueSpec[T]) Base() ValueSpecBase {
	return ValueSpecBase{Name: s.Name, Typename: s.Typename, Expiration: s.Expiration}
}

// BoolValueSpec declares a named cell of the built-in bool type.
func BoolValueSpec(name string, expiration Expiration) ValueSpec[bool] {
	return NewValueSpec(name, BoolTypeName, expiration, Bool)
}

// IntValueSpec declares a named cell of the built-in 32-bit int type.
func IntValueSpec(name string, expiration Expiration) ValueSpec[int32] {
	return NewValueSpec(name, IntTypeName, expiration, Int)
}

// LongValueSpec declares a named cell of the built-in 64-bit int type.
func LongValueSpec(name string, expiration Expiration) ValueSpec[int64] {
	return NewValueSpec(name, LongTypeName, expiration, Long)
}

// FloatValueSpec declares a named cell of the built-in 32-bit float type.
func FloatValueSpec(name string, expiration Expiration) ValueSpec[float32] {
	return NewValueSpec(name, FloatTypeName, expiration, Float)
}

// DoubleValueSpec declares a named cell of the built-in 64-bit float type.
func DoubleValueSpec(name string, expiration Expiration) ValueSpec[float64] {
	return NewValueSpec(name, DoubleTypeName, expiration, Double)
}

// StringValueSpec declares a named cell of the built-in string type.
func StringValueSpec(name string, expiration Expiration) ValueSpec[string] {
	return NewValueSpec(name, StringTypeName, expiration, String)
}
