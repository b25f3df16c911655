package testutils

import (
	"bytes"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/lherbaut/boxtree/logger"
)

func AssertEqual(t *testing.T, got, exp interface{}) {
	t.Helper()
	if !reflect.DeepEqual(exp, got) {
		t.Fatalf("expected\n%v\n got \n%v", exp, got)
	}
}

// logCapture redirects WarningLogger during a test.
type logCapture struct {
	buf      bytes.Buffer
	restore  io.Writer
	hadFlags int
}

// CaptureLogs intercepts the output of logger.WarningLogger until
// Logs or AssertNoLogs is called.
func CaptureLogs() *logCapture {
	cp := logCapture{restore: logger.WarningLogger.Writer(), hadFlags: logger.WarningLogger.Flags()}
	logger.WarningLogger.SetOutput(&cp.buf)
	logger.WarningLogger.SetFlags(0)
	return &cp
}

// Logs restore the original logger output and
// returns the intercepted lines.
func (cp *logCapture) Logs() []string {
	logger.WarningLogger.SetOutput(cp.restore)
	logger.WarningLogger.SetFlags(cp.hadFlags)
	s := strings.TrimSuffix(cp.buf.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func (cp *logCapture) AssertNoLogs(t *testing.T) {
	t.Helper()
	if logs := cp.Logs(); len(logs) != 0 {
		t.Fatalf("expected no logs, got (%d): \n %s", len(logs), strings.Join(logs, "\n "))
	}
}
