package merge

import (
	"bytes"
	"cmp"
	"encoding/json"
)

// State distinguishes "no opinion" from "explicitly cleared" from "has a value".
type State uint8

const (
	// Absent means the replica never set the field; the other side decides.
	Absent State = iota
	// Null means the replica deliberately cleared the field.
	Null
	// Present means the replica holds a value.
	Present
)

// Field is a scalar that remembers whether it was absent, explicitly null, or set.
//
// The zero value is Absent. With the `omitzero` JSON option an absent field is
// omitted on encode, a null field encodes as `null`.
type Field[T any] struct {
	State State
	Value T
}

// Some returns a present field holding v.
func Some[T any](v T) Field[T] {
	return Field[T]{State: Present, Value: v}
}

// Clear returns an explicitly null field.
func Clear[T any]() Field[T] {
	return Field[T]{State: Null}
}

// IsZero reports whether the field is absent. encoding/json uses it for `omitzero`.
func (f Field[T]) IsZero() bool { return f.State == Absent }

// IsNull reports whether the field was explicitly cleared.
func (f Field[T]) IsNull() bool { return f.State == Null }

// IsPresent reports whether the field holds a value.
func (f Field[T]) IsPresent() bool { return f.State == Present }

// Get returns the value and whether it is present.
func (f Field[T]) Get() (T, bool) {
	return f.Value, f.State == Present
}

// Or returns the value when present, def otherwise.
func (f Field[T]) Or(def T) T {
	if f.State == Present {
		return f.Value
	}
	return def
}

// NullAsAbsent folds an explicit null into "no opinion".
// Used for fields that cannot be cleared.
func (f Field[T]) NullAsAbsent() Field[T] {
	if f.State == Null {
		return Field[T]{}
	}
	return f
}

// MarshalJSON encodes a present value as itself and anything else as null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.State != Present {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// UnmarshalJSON reads null as Null and a well-typed value as Present.
// A value of the wrong type leaves the field Absent instead of failing.
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*f = Clear[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		*f = Field[T]{}
		return nil
	}
	*f = Some(v)
	return nil
}

// Policy selects how two replica values of one attribute are reconciled.
type Policy int

const (
	// PolicyLWW takes the newer side's value; an absent or null value on the newer
	// side defers to the older side.
	PolicyLWW Policy = iota
	// PolicyMax takes the larger of the present values. For cumulative counters.
	PolicyMax
	// PolicyClearable takes the newer side's value including an explicit null;
	// only an absent value defers to the older side.
	PolicyClearable
)

// String returns the policy name used in diagnostics.
func (p Policy) String() string {
	switch p {
	case PolicyMax:
		return "monotonic-max"
	case PolicyClearable:
		return "null-as-clear"
	default:
		return "lww"
	}
}

// Resolve reconciles one attribute. localNewer is true when the local replica's
// updatedAt is greater than or equal to the remote one's, so ties favor local.
func Resolve[T cmp.Ordered](local, remote Field[T], localNewer bool, policy Policy) Field[T] {
	newer, older := remote, local
	if localNewer {
		newer, older = local, remote
	}

	switch policy {
	case PolicyMax:
		switch {
		case local.IsPresent() && remote.IsPresent():
			return Some(max(local.Value, remote.Value))
		case local.IsPresent():
			return local
		case remote.IsPresent():
			return remote
		}
		return Field[T]{}
	case PolicyClearable:
		if newer.State != Absent {
			return newer
		}
		return older
	default:
		if newer.IsPresent() {
			return newer
		}
		return older.NullAsAbsent()
	}
}

// ResolveCounter reconciles an append-only daily total. Regressing a counter on
// merge is never correct, so the larger value always wins.
func ResolveCounter(local, remote int) int {
	return max(local, remote)
}

// ResolveOverride reconciles a value that a user can pin manually.
// A pinned local value wins unconditionally, then a pinned remote value, and
// only then does last-writer-wins apply. A pin without a present value does not
// count. The returned flag is the winner's pin.
func ResolveOverride[T cmp.Ordered](local, remote Field[T], localPinned, remotePinned, localNewer bool) (Field[T], bool) {
	switch {
	case localPinned && local.IsPresent():
		return local, true
	case remotePinned && remote.IsPresent():
		return remote, true
	default:
		return Resolve(local, remote, localNewer, PolicyLWW), false
	}
}
