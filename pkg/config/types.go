package config

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

//go:generate enumer -type=Urgency -trimprefix=Urgency -transform=lower -json -text -yaml
//go:generate go run github.com/smykla-skalski/notify-complete/tools/enumerfix urgency_enumer.go

var (
	// ErrInvalidTimeout is returned when a timeout value cannot be parsed.
	ErrInvalidTimeout = errors.New("invalid timeout value")

	// ErrInvalidUrgency is returned when an urgency value cannot be parsed.
	ErrInvalidUrgency = errors.New("invalid urgency value")
)

const (
	timeoutDefaultLiteral = "default"
	timeoutNeverLiteral   = "never"
)

// Urgency is the priority hint passed to the notification server.
// Values match the freedesktop urgency byte.
type Urgency byte

const (
	// UrgencyLow is a low priority notification.
	UrgencyLow Urgency = iota

	// UrgencyNormal is a normal priority notification.
	UrgencyNormal

	// UrgencyCritical is a critical notification. Most servers keep these
	// on screen until dismissed.
	UrgencyCritical
)

// ParseUrgency parses one of "low", "normal" or "critical".
// Matching is case-insensitive.
func ParseUrgency(raw string) (Urgency, error) {
	urgency, err := UrgencyString(raw)
	if err != nil {
		return UrgencyNormal, errors.WithHint(
			errors.Wrapf(ErrInvalidUrgency, "%q", raw),
			"valid urgency values are: low, normal, critical",
		)
	}

	return urgency, nil
}

// TimeoutKind discriminates the Timeout variants.
type TimeoutKind int

const (
	// TimeoutSystemDefault defers the display duration to the notification server.
	TimeoutSystemDefault TimeoutKind = iota

	// TimeoutNever keeps the notification until it is dismissed.
	TimeoutNever

	// TimeoutMilliseconds expires the notification after a fixed duration.
	TimeoutMilliseconds
)

// Timeout is the notification display policy. The zero value defers to the
// notification server default.
type Timeout struct {
	kind TimeoutKind
	ms   uint64
}

// TimeoutDefault returns the Timeout that defers to the server default.
func TimeoutDefault() Timeout {
	return Timeout{kind: TimeoutSystemDefault}
}

// TimeoutNeverExpire returns the Timeout that never auto-hides.
func TimeoutNeverExpire() Timeout {
	return Timeout{kind: TimeoutNever}
}

// TimeoutAfter returns a Timeout of ms milliseconds.
func TimeoutAfter(ms uint64) Timeout {
	return Timeout{kind: TimeoutMilliseconds, ms: ms}
}

// ParseTimeout parses "default", "never" or a non-negative integer number of
// milliseconds. The symbolic literals are matched case-insensitively.
func ParseTimeout(raw string) (Timeout, error) {
	switch strings.ToLower(raw) {
	case timeoutDefaultLiteral:
		return TimeoutDefault(), nil
	case timeoutNeverLiteral:
		return TimeoutNeverExpire(), nil
	}

	ms, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return TimeoutDefault(), errors.WithHint(
			errors.Wrapf(ErrInvalidTimeout, "%q", raw),
			"timeout must be \"default\", \"never\" or a non-negative number of milliseconds",
		)
	}

	return TimeoutAfter(ms), nil
}

// Kind returns the Timeout variant.
func (t Timeout) Kind() TimeoutKind {
	return t.kind
}

// Milliseconds returns the duration for TimeoutMilliseconds and 0 otherwise.
func (t Timeout) Milliseconds() uint64 {
	if t.kind != TimeoutMilliseconds {
		return 0
	}

	return t.ms
}

// String returns the configuration literal for the Timeout.
func (t Timeout) String() string {
	switch t.kind {
	case TimeoutNever:
		return timeoutNeverLiteral
	case TimeoutMilliseconds:
		return strconv.FormatUint(t.ms, 10)
	default:
		return timeoutDefaultLiteral
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Timeout) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Timeout) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeout(string(text))
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}
