// File: cmd/sitedeploy/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"sitedeploy/internal/config"
	"sitedeploy/internal/logger"
	"sitedeploy/pkg/serrors"

	// Provider implementations register themselves in init()
	_ "sitedeploy/pkg/storage/aws"
	_ "sitedeploy/pkg/storage/gcp"
	_ "sitedeploy/pkg/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	level := new(slog.LevelVar)
	log := logger.NewLogger(level)

	err := newRootCmd(level, log, config.NewConfigManager).ExecuteContext(ctx)
	stop()
	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// Prints err, prefixed with its semantic kind when it has one
func reportError(w io.Writer, err error) {
	if kind := serrors.KindOf(err); kind != nil {
		fmt.Fprintf(w, "Error (%s): %v\n", kind, err)
		return
	}
	fmt.Fprintln(w, "Error:", err)
}
