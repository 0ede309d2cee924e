package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeShutdowner struct {
	called bool
	err    error
}

func (f *fakeShutdowner) Shutdown(ctx context.Context) error {
	f.called = true
	return f.err
}

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name    string
		execErr error
		downErr error
		want    int
	}{
		{"success", nil, nil, 0},
		{"command failure", errBoom, nil, 1},
		{"shutdown failure does not change the exit code", nil, errBoom, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			down := &fakeShutdowner{err: tt.downErr}
			code := run(func() error { return tt.execErr }, down)
			assert.Equal(t, tt.want, code)
			assert.True(t, down.called, "pending writes are flushed on every exit")
		})
	}
}

func TestAppClientShutdownWithoutServices(t *testing.T) {
	assert.NoError(t, (&appClient{}).Shutdown(context.Background()))
}
