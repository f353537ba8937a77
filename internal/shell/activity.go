package shell

import (
	"fmt"
	"time"
)

// MaxActivity is the number of activity lines kept.
const MaxActivity = 50

// activityLog is a bounded, newest-first list of timestamped lines.
// It is observational only; callers hold the App lock.
type activityLog struct {
	lines []string
	now   func() time.Time
}

func (l *activityLog) add(format string, args ...any) {
	line := fmt.Sprintf("[%s] %s", l.now().Local().Format("15:04:05"), fmt.Sprintf(format, args...))
	l.lines = append([]string{line}, l.lines...)
	if len(l.lines) > MaxActivity {
		l.lines = l.lines[:MaxActivity]
	}
}

func (l *activityLog) snapshot() []string {
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
