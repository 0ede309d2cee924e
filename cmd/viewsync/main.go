/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"os"
	"time"

	"github.com/cristianoliveira/viewsync/cmd"
	"github.com/cristianoliveira/viewsync/internal/colors"
	clierrors "github.com/cristianoliveira/viewsync/internal/errors"
	"github.com/cristianoliveira/viewsync/internal/logging"
)

// shutdownTimeout bounds the final flush of pending remote writes.
const shutdownTimeout = 5 * time.Second

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

var errorHandler = clierrors.NewDefaultCLIHandler()

func main() {
	os.Exit(run(cmd.Execute, coreClient))
}

func run(execute func() error, client shutdowner) int {
	code := 0
	if err := execute(); err != nil {
		errorHandler.Report(err)
		logging.Error("command failed", "error", err)
		code = 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := client.Shutdown(ctx); err != nil {
		logging.Warn("shutdown failed", "error", err)
	}
	if err := logging.ShutdownGlobal(); err != nil {
		colors.Debug("logging shutdown: " + err.Error())
	}
	return code
}
