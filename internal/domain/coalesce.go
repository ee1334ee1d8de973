package domain

// Int64FromPtrWithDefault returns the first non-nil *int64 value, or the fallback.
func Int64FromPtrWithDefault(fallback int64, ptrs ...*int64) int64 {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}
