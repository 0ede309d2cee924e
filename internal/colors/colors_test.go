package colors

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingLogger struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingLogger) record(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, level+":"+msg)
}

func (r *recordingLogger) Debug(msg string, args ...any) { r.record("debug", msg) }
func (r *recordingLogger) Info(msg string, args ...any)  { r.record("info", msg) }
func (r *recordingLogger) Warn(msg string, args ...any)  { r.record("warn", msg) }
func (r *recordingLogger) Error(msg string, args ...any) { r.record("error", msg) }

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	t.Cleanup(func() {
		SetOutput(nil, nil)
		SetLogger(nil)
		SetDebug(false)
	})
	return &out, &errOut
}

func TestConsoleStreams(t *testing.T) {
	out, errOut := captureOutput(t)

	Info("listing", "ready")
	Success("saved")
	Warning("remote", "slow")
	Error("boom")

	assert.Contains(t, out.String(), "listing ready")
	assert.Contains(t, out.String(), "saved")
	assert.Contains(t, errOut.String(), "Warning:")
	assert.Contains(t, errOut.String(), "remote slow")
	assert.Contains(t, errOut.String(), "Error:")
}

func TestDebugRespectsFlag(t *testing.T) {
	_, errOut := captureOutput(t)

	SetDebug(false)
	Debug("hidden")
	assert.Empty(t, errOut.String())

	SetDebug(true)
	Debug("shown")
	assert.Contains(t, errOut.String(), "shown")
}

func TestMirrorsToLogger(t *testing.T) {
	captureOutput(t)
	rec := &recordingLogger{}
	SetLogger(rec)

	Warning("cache", "unavailable")
	Error("failed")

	assert.Equal(t, []string{"warn:cache unavailable", "error:failed"}, rec.calls)
}
