package assoc

import "reflect"

// EqualFunc reports whether two non-nil keys are equal.
// It is never called when either key is a nil value of K.
type EqualFunc[K comparable] func(a, b K) bool

// Equatable is implemented by keys that define their own notion of equality.
// Equals is only called with a non-nil receiver and a non-nil argument.
type Equatable interface {
	Equals(other any) bool
}

// DefaultEqual compares with Equals when the key is Equatable and with == otherwise.
//
// When K is an interface type, == compares dynamic types and values, so it
// panics if both keys hold the same uncomparable dynamic type (a slice, for
// example), exactly like a Go map would. A typed nil stored in an interface key,
// such as (*T)(nil), is compared with == and never passed to Equals.
func DefaultEqual[K comparable](a, b K) bool {
	if eq, ok := any(a).(Equatable); ok && !holdsNil(a) && !holdsNil(b) {
		return eq.Equals(b)
	}
	return a == b
}

// keysEqual applies the nil rule before delegating:
// two nil keys are equal and a nil key never equals a non-nil one.
func keysEqual[K comparable](equal EqualFunc[K], a, b K) bool {
	aNil, bNil := isNil(a), isNil(b)
	if aNil || bNil {
		return aNil && bNil
	}
	return equal(a, b)
}

// isNil reports whether k is the nil value of K itself.
// For an interface K only the nil interface counts; (*T)(nil) wrapped in it does not.
func isNil[K comparable](k K) bool {
	if any(k) == nil {
		return true
	}
	if reflect.TypeFor[K]().Kind() == reflect.Interface {
		return false
	}
	return holdsNil(k)
}

// holdsNil reports whether x is nil or holds a nil value of a nilable kind.
func holdsNil(x any) bool {
	if x == nil {
		return true
	}
	switch v := reflect.ValueOf(x); v.Kind() {
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
