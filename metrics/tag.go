package metrics

import "strconv"

// TagOption specifies a tag that should be added to a metric
type TagOption func() string

// WithTypeTag adds a "type" tag to a metric. This is typically used to
// differentiate metrics from different implementations of an interface.
func WithTypeTag(typeName string) TagOption {
	return func() string {
		return "type:" + typeName
	}
}

// WithServiceTag adds a "service" tag to a metric.
func WithServiceTag(serviceName string) TagOption {
	return func() string {
		return "service:" + serviceName
	}
}

// WithEndpointTag adds an "endpoint" tag, typically the route template of an
// HTTP handler.
func WithEndpointTag(endpoint string) TagOption {
	return func() string {
		return "endpoint:" + endpoint
	}
}

// WithStatusTag adds a "status" tag holding an HTTP status code.
func WithStatusTag(status int) TagOption {
	return func() string {
		return "status:" + strconv.Itoa(status)
	}
}

// GetTags returns a slice of tags given a set of TagOptions
func GetTags(opts ...TagOption) []string {
	tags := make([]string, 0, len(opts))
	for _, opt := range opts {
		tags = append(tags, opt())
	}
	return tags
}
