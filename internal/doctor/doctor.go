// Package doctor runs health checks against the configuration, the
// notification backends and the files notify-complete writes.
package doctor

//go:generate mockgen -source=doctor.go -destination=doctor_mock.go -package=doctor

import (
	"context"

	"github.com/cockroachdb/errors"
)

// ErrChecksFailed is returned when at least one check fails with error severity.
var ErrChecksFailed = errors.New("health checks failed")

// Severity of a failed check.
type Severity string

const (
	// SeverityError marks a problem that breaks notify-complete.
	SeverityError Severity = "error"
	// SeverityWarning marks a problem that degrades it.
	SeverityWarning Severity = "warning"
	// SeverityInfo is used for passing and skipped checks.
	SeverityInfo Severity = "info"
)

// Status of a check.
type Status string

const (
	StatusPass    Status = "pass"
	StatusFail    Status = "fail"
	StatusSkipped Status = "skipped"
)

// Category groups checks in the report.
type Category string

const (
	// CategoryConfig covers the configuration file.
	CategoryConfig Category = "config"
	// CategoryNotifier covers notification delivery.
	CategoryNotifier Category = "notifier"
	// CategoryPaths covers directories notify-complete writes to.
	CategoryPaths Category = "paths"
)

// Categories lists the categories in report order.
func Categories() []Category {
	return []Category{CategoryConfig, CategoryNotifier, CategoryPaths}
}

// CheckResult is the outcome of one check.
type CheckResult struct {
	Name     string
	Category Category
	Severity Severity
	Status   Status
	Message  string
	Details  []string

	// FixID names the Fixer that can repair a failure. Empty when none can.
	FixID string
}

// HealthChecker performs one check.
type HealthChecker interface {
	Name() string
	Category() Category
	Check(ctx context.Context) CheckResult
}

// Fixer repairs the problem reported by a failed check.
type Fixer interface {
	ID() string
	Description() string
	Fix(ctx context.Context) error
}

// Reporter renders check results.
type Reporter interface {
	Report(results []CheckResult, verbose bool) error
}

func newResult(name string, severity Severity, status Status, message string) CheckResult {
	return CheckResult{
		Name:     name,
		Severity: severity,
		Status:   status,
		Message:  message,
	}
}

// Pass creates a passing result.
func Pass(name, message string) CheckResult {
	return newResult(name, SeverityInfo, StatusPass, message)
}

// FailError creates a failing result with error severity.
func FailError(name, message string) CheckResult {
	return newResult(name, SeverityError, StatusFail, message)
}

// FailWarning creates a failing result with warning severity.
func FailWarning(name, message string) CheckResult {
	return newResult(name, SeverityWarning, StatusFail, message)
}

// Skip creates a skipped result.
func Skip(name, message string) CheckResult {
	return newResult(name, SeverityInfo, StatusSkipped, message)
}

// WithDetails appends detail lines.
func (r CheckResult) WithDetails(details ...string) CheckResult {
	r.Details = append(r.Details, details...)

	return r
}

// WithFixID attaches a fixer.
func (r CheckResult) WithFixID(id string) CheckResult {
	r.FixID = id

	return r
}

func (r CheckResult) IsError() bool   { return r.Status == StatusFail && r.Severity == SeverityError }
func (r CheckResult) IsWarning() bool { return r.Status == StatusFail && r.Severity == SeverityWarning }
func (r CheckResult) IsPassed() bool  { return r.Status == StatusPass }
func (r CheckResult) IsSkipped() bool { return r.Status == StatusSkipped }

// Fixable reports whether the result failed and names a fixer.
func (r CheckResult) Fixable() bool {
	return r.Status == StatusFail && r.FixID != ""
}
