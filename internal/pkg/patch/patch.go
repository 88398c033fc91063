package patch

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Set writes *v under key only when the caller supplied a value.
func Set[T any](dst map[string]any, key string, v *T) {
	if v != nil {
		dst[key] = *v
	}
}

// SetNullable writes *v under key, or nil when clear is requested.
func SetNullable[T any](dst map[string]any, key string, v *T, clear bool) {
	if clear {
		dst[key] = nil
		return
	}
	Set(dst, key, v)
}

// Convert maps an optional string-kinded value to another string kind, keeping nil.
func Convert[From, To ~string](v *From) *To {
	if v == nil {
		return nil
	}
	out := To(*v)
	return &out
}
