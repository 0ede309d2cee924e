package viewpref

// Merge resolves the effective view state field by field. Precedence,
// highest first: remote, session, cache, defaults. Callers sanitize the
// remote and cache tiers beforehand; session values were sanitized when
// they were committed.
func Merge(remote, session, cache Partial, defaults ViewState) ViewState {
	merged := cache.Overlay(session).Overlay(remote)
	v := merged.Apply(defaults.Clone())
	if v.ListColumns == nil {
		v.ListColumns = DefaultColumns()
	}
	return v
}
