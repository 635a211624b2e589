package browse

import (
	"time"

	"github.com/jackzampolin/pokedex/internal/api"
)

// Status is the loading state of a controller.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Toast durations.
const (
	LongNotice  = 4 * time.Second
	ShortNotice = 3 * time.Second
)

// Notice is a transient, severity-keyed message for the user.
type Notice struct {
	Message  string       `json:"message" yaml:"message"`
	Severity api.Severity `json:"severity" yaml:"severity"`
}

// NoticeFrom converts a gateway failure into a notice.
func NoticeFrom(f *api.Failure) *Notice {
	if f == nil {
		return nil
	}
	sev := f.Severity
	if !sev.Valid() {
		sev = api.SeverityError
	}
	return &Notice{Message: f.Message, Severity: sev}
}

// Duration is how long the notice stays up: longer for error and fatal.
func (n Notice) Duration() time.Duration {
	switch n.Severity {
	case api.SeverityError, api.SeverityFatal:
		return LongNotice
	}
	return ShortNotice
}

// Icon is the glyph shown next to the message.
func (n Notice) Icon() string {
	switch n.Severity {
	case api.SeverityError:
		return "❌"
	case api.SeverityWarning:
		return "⚠️"
	case api.SeveritySuccess:
		return "✅"
	case api.SeverityFatal:
		return "💥"
	}
	return "ℹ️"
}

// Text renders the notice for the terminal.
func (n Notice) Text() string {
	return n.Icon() + " " + n.Message
}
