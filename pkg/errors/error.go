package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// ConfigParseError represents a failure to parse harness configuration.
	ConfigParseError ErrorCode = "config_parse_error"
	// BookConstructError represents a failure to build a storage variant.
	BookConstructError ErrorCode = "book_construct_error"
	// WorkloadError represents a failure while generating order events.
	WorkloadError ErrorCode = "workload_error"
	// ConformanceMismatchError represents a divergence between a storage
	// variant and the ordered-map baseline.
	ConformanceMismatchError ErrorCode = "conformance_mismatch_error"
	// ReportWriteError represents a failure to write benchmark results.
	ReportWriteError ErrorCode = "report_write_error"
	// ResultPublishError represents a failure to publish results to Kafka.
	ResultPublishError ErrorCode = "result_publish_error"
)

func (c ErrorCode) String() string {
	return string(c)
}
