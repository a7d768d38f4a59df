package metrics

// Meter tracks a count of a metric
type Meter struct {
	client Client
	name   string
	tags   []string
}

// NewMeter returns a new meter
func NewMeter(client Client, name string, tagOptions ...TagOption) (*Meter, error) {
	if err := validateMetricName(name); err != nil {
		return nil, err
	}

	return &Meter{
		client: client,
		name:   name,
		tags:   GetTags(tagOptions...),
	}, nil
}

// Incr adds 1 to the metric's count, with any additional tags.
func (m *Meter) Incr(tags ...TagOption) {
	_ = m.client.Count(m.name, 1, m.withTags(tags))
}

func (m *Meter) withTags(additional []TagOption) []string {
	tags := make([]string, 0, len(m.tags)+len(additional))
	tags = append(tags, m.tags...)
	return append(tags, GetTags(additional...)...)
}
