package metrics

import (
	"time"
)

// Timer tracks the time a metric
type Timer struct {
	client Client
	name   string
	tags   []string
}

// NewTimer returns a new Timer
func NewTimer(client Client, name string, tagOptions ...TagOption) (*Timer, error) {
	if err := validateMetricName(name); err != nil {
		return nil, err
	}

	return &Timer{
		client: client,
		name:   name,
		tags:   GetTags(tagOptions...),
	}, nil
}

// AddTiming emits a timing value that has already been observed
func (t *Timer) AddTiming(value time.Duration, tags ...TagOption) {
	all := make([]string, 0, len(t.tags)+len(tags))
	all = append(all, t.tags...)
	all = append(all, GetTags(tags...)...)
	_ = t.client.Timing(t.name, value, all)
}

// Since emits the time elapsed since start.
func (t *Timer) Since(start time.Time, tags ...TagOption) {
	t.AddTiming(time.Since(start), tags...)
}
