// Package interfaces defines the core interfaces used throughout the application.
package interfaces

// StatusReporter is told about the progress of a notification delivery.
type StatusReporter interface {
	ReportSending()
	ReportSuccess()
	ReportFailure()
}
