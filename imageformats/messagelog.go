package imageformats

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

type Message struct {
	Severity Severity
	Text     string
}

// MessageLog collects diagnostics from a read or write in the order they
// were raised. Any Error entry means the operation failed. A nil log
// discards everything.
type MessageLog struct {
	messages []Message
}

func (l *MessageLog) Add(severity Severity, format string, args ...any) {
	if l == nil {
		return
	}
	l.messages = append(l.messages, Message{Severity: severity, Text: fmt.Sprintf(format, args...)})
}

func (l *MessageLog) Messages() []Message {
	if l == nil {
		return nil
	}
	return l.messages
}

func (l *MessageLog) Errors() []Message {
	return l.bySeverity(Error)
}

func (l *MessageLog) Warnings() []Message {
	return l.bySeverity(Warning)
}

func (l *MessageLog) bySeverity(severity Severity) []Message {
	return lo.Filter(l.Messages(), func(m Message, _ int) bool {
		return m.Severity == severity
	})
}

func (l *MessageLog) HasErrors() bool {
	return lo.ContainsBy(l.Messages(), func(m Message) bool {
		return m.Severity == Error
	})
}

func (l *MessageLog) Clear() {
	if l != nil {
		l.messages = nil
	}
}

func (l *MessageLog) String() string {
	lines := lo.Map(l.Messages(), func(m Message, _ int) string {
		return fmt.Sprintf("%s: %s", m.Severity, m.Text)
	})
	return strings.Join(lines, "\n")
}
