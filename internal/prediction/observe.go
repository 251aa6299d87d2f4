package prediction

// Recorder receives observability events from the estimators. Clamps and
// unknown targets never surface as errors, but they are worth counting.
// Implemented by monitoring.Metrics; the engine defaults to a no-op.
type Recorder interface {
	RecordClamp(estimator string)
	RecordUnknownTarget(target string)
	RecordFallback(field string)
}

type nopRecorder struct{}

func (nopRecorder) RecordClamp(string)         {}
func (nopRecorder) RecordUnknownTarget(string) {}
func (nopRecorder) RecordFallback(string)      {}
