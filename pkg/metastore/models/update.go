package models

// fieldState distinguishes "leave unchanged" from "set to NULL" from
// "set to a value" in partial updates.
type fieldState int

const (
	fieldUnset fieldState = iota
	fieldNull
	fieldSet
)

// Field is a tri-state optional used by partial updates. The zero value
// means "leave the column unchanged"; Null() clears the column; Set(v)
// writes v. This keeps the unchanged/null distinction type-safe instead
// of nesting pointers.
type Field[T any] struct {
	state fieldState
	value T
}

// Set returns a Field carrying the given value.
func Set[T any](v T) Field[T] {
	return Field[T]{state: fieldSet, value: v}
}

// Null returns a Field that clears the column.
func Null[T any]() Field[T] {
	return Field[T]{state: fieldNull}
}

// IsSet reports whether the field carries a value.
func (f Field[T]) IsSet() bool { return f.state == fieldSet }

// IsNull reports whether the field clears the column.
func (f Field[T]) IsNull() bool { return f.state == fieldNull }

// IsUnset reports whether the field leaves the column unchanged.
func (f Field[T]) IsUnset() bool { return f.state == fieldUnset }

// Value returns the carried value; meaningful only when IsSet.
func (f Field[T]) Value() T { return f.value }

// Ptr returns the value as a pointer, or nil when the field is Null.
// Meaningful only when !IsUnset.
func (f Field[T]) Ptr() *T {
	if f.state == fieldSet {
		v := f.value
		return &v
	}
	return nil
}

// TagUpdate describes a partial tag modification. Name is a plain optional
// because the name column is never nullable; the remaining fields are
// tri-state.
type TagUpdate struct {
	Name      *string
	Color     Field[string]
	FontColor Field[string]
	ParentID  Field[uint]
}

// Empty reports whether the update touches no field at all.
func (u TagUpdate) Empty() bool {
	return u.Name == nil && u.Color.IsUnset() && u.FontColor.IsUnset() && u.ParentID.IsUnset()
}
