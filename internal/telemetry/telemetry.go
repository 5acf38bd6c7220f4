package telemetry

// API is what the pipelines report through instead of logging directly, so
// tests can assert on which items were skipped and why.
type API interface {
	// ReportBroken reports an item that could not be processed and was skipped,
	// ex. a commander page that failed to fetch is "harvester.fetch".
	//
	// Ids are lowercase "<component>.<step>", multi-word steps use dashes
	// ("resolver.extract-image").
	ReportBroken(id string, params ...any)

	// ReportWarning reports an item that was skipped for an expected reason,
	// ex. a page without embedded card data.
	ReportWarning(id string, params ...any)

	// ReportDebug reports progress that is only shown with --verbose.
	ReportDebug(msg string, params ...any)

	// ReportCount reports a total at the end of a run, ex. the number of
	// records a harvest produced.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id with the name of the component reporting it.
type ScopedAPI struct {
	component string
	inner     API
}

func NewScopedAPI(component string, inner API) ScopedAPI {
	return ScopedAPI{component: component, inner: inner}
}

func (s ScopedAPI) id(step string) string {
	return s.component + "." + step
}

func (s ScopedAPI) ReportBroken(step string, params ...any) {
	s.inner.ReportBroken(s.id(step), params...)
}

func (s ScopedAPI) ReportWarning(step string, params ...any) {
	s.inner.ReportWarning(s.id(step), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(s.component+": "+msg, params...)
}

func (s ScopedAPI) ReportCount(step string, count int64) {
	s.inner.ReportCount(s.id(step), count)
}
