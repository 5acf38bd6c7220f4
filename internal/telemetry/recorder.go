package telemetry

import "sync"

type ReportKind int

const (
	KindBroken ReportKind = iota
	KindWarning
	KindDebug
	KindCount
)

type Report struct {
	Kind   ReportKind
	ID     string
	Params []any
	Count  int64
}

// Recorder is an API that keeps every report in memory so tests can assert on them.
type Recorder struct {
	mutex   sync.Mutex
	reports []Report
}

func (r *Recorder) add(report Report) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.reports = append(r.reports, report)
}

func (r *Recorder) ReportBroken(id string, params ...any) {
	r.add(Report{Kind: KindBroken, ID: id, Params: params})
}

func (r *Recorder) ReportWarning(id string, params ...any) {
	r.add(Report{Kind: KindWarning, ID: id, Params: params})
}

func (r *Recorder) ReportDebug(msg string, params ...any) {
	r.add(Report{Kind: KindDebug, ID: msg, Params: params})
}

func (r *Recorder) ReportCount(id string, count int64) {
	r.add(Report{Kind: KindCount, ID: id, Count: count})
}

func (r *Recorder) Reports() []Report {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return append([]Report(nil), r.reports...)
}

// IDs returns the ids of every report of the given kind, in order.
func (r *Recorder) IDs(kind ReportKind) []string {
	var ids []string
	for _, report := range r.Reports() {
		if report.Kind == kind {
			ids = append(ids, report.ID)
		}
	}
	return ids
}

// Count returns the last count reported under `id` and whether there was one.
func (r *Recorder) Count(id string) (int64, bool) {
	reports := r.Reports()
	for i := len(reports) - 1; i >= 0; i-- {
		if reports[i].Kind == KindCount && reports[i].ID == id {
			return reports[i].Count, true
		}
	}
	return 0, false
}
