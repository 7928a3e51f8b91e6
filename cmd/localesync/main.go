// localesync copies the translations kept in the i18n directory into each
// rules node package, filling gaps in every locale from the template.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"localesync/internal/adapters/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}
