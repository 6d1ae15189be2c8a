package logging

import "time"

// Timer measures an operation and logs its duration when stopped
type Timer struct {
	logger    *Logger
	operation string
	start     time.Time
	fields    []interface{}
	stopped   bool
}

// StartTimer starts a timer for the given operation
func (l *Logger) StartTimer(operation string, keysAndValues ...interface{}) *Timer {
	return &Timer{
		logger:    l,
		operation: operation,
		start:     l.now(),
		fields:    keysAndValues,
	}
}

// Elapsed returns the time since the timer was started
func (t *Timer) Elapsed() time.Duration {
	return t.logger.now().Sub(t.start)
}

// Stop logs "<operation> completed" at debug level with the elapsed time.
// Later calls return 0 and log nothing.
func (t *Timer) Stop(keysAndValues ...interface{}) time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true

	elapsed := t.Elapsed()
	kv := append([]interface{}{}, t.fields...)
	kv = append(kv, keysAndValues...)
	kv = append(kv,
		"operation", t.operation,
		"duration_ms", float64(elapsed.Nanoseconds())/1e6,
	)
	t.logger.Debug(t.operation+" completed", kv...)
	return elapsed
}
