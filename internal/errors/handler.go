// Package errors reports command failures on the console with a hint for
// the failures users can act on.
package errors

import (
	stderrors "errors"
	"sync"

	"github.com/cristianoliveira/viewsync/internal/colors"
	"github.com/cristianoliveira/viewsync/internal/prefcache"
	"github.com/cristianoliveira/viewsync/internal/remote"
	"github.com/cristianoliveira/viewsync/internal/viewpref"
	"github.com/cristianoliveira/viewsync/internal/viewstate"
)

// ColorOutput is the console the handler writes to.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
}

// ColorsOutput adapts the colors package to implement ColorOutput.
type ColorsOutput struct{}

var _ ColorOutput = (*ColorsOutput)(nil)

func (o *ColorsOutput) Error(msgs ...string)   { colors.Error(msgs...) }
func (o *ColorsOutput) Warning(msgs ...string) { colors.Warning(msgs...) }
func (o *ColorsOutput) Info(msgs ...string)    { colors.Info(msgs...) }

type hint struct {
	target error
	text   string
}

var hints = []hint{
	{viewpref.ErrColumnExists, "a column of that type and metadata key is already shown"},
	{viewpref.ErrLastColumn, "the list layout needs at least one column"},
	{viewpref.ErrColumnIndex, "run 'viewsync show' to see column positions"},
	{viewstate.ErrUnknownInstance, "the instance was not mounted"},
	{prefcache.ErrUnknownBackend, "set cache_backend to sqlite, badger or memory"},
	{remote.ErrRemoteStatus, "check api_base_url and api_token"},
}

// CLIHandler prints errors and their hints. It is safe for concurrent use.
type CLIHandler struct {
	out ColorOutput
	mu  sync.Mutex
}

// NewCLIHandler returns a handler writing to out.
func NewCLIHandler(out ColorOutput) *CLIHandler {
	return &CLIHandler{out: out}
}

// NewDefaultCLIHandler creates a CLI handler using ColorsOutput.
func NewDefaultCLIHandler() *CLIHandler {
	return NewCLIHandler(&ColorsOutput{})
}

// Report prints err followed by a hint when one applies. A nil error
// prints nothing.
func (h *CLIHandler) Report(err error) {
	if err == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.out.Error(err.Error())
	if text := Hint(err); text != "" {
		h.out.Info("hint: " + text)
	}
}

// Warn prints a non-fatal problem.
func (h *CLIHandler) Warn(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.out.Warning(msg)
}

// Hint returns the advice for the first known error in err's chain.
func Hint(err error) string {
	for _, h := range hints {
		if stderrors.Is(err, h.target) {
			return h.text
		}
	}
	return ""
}
