package prediction

// countingRecorder is a test double for the observability sink.
type countingRecorder struct {
	clamps         map[string]int
	unknownTargets []string
	fallbacks      []string
}

func (r *countingRecorder) RecordClamp(estimator string) {
	if r.clamps == nil {
		r.clamps = make(map[string]int)
	}
	r.clamps[estimator]++
}

func (r *countingRecorder) RecordUnknownTarget(target string) {
	r.unknownTargets = append(r.unknownTargets, target)
}

func (r *countingRecorder) RecordFallback(field string) {
	r.fallbacks = append(r.fallbacks, field)
}
