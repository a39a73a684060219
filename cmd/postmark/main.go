// Command postmark sends email and manages a Postmark account from
// the command line.
//
// Configure the tokens using ~/.config/postmark/config.json or the
// POSTMARK_SERVER_TOKEN and POSTMARK_ACCOUNT_TOKEN environment variables.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"
	"github.com/postmarkgo/postmark/internal/log/handlers/cli"
)

func main() {
	log.SetHandler(cli.Default)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		log.WithError(err).Error("postmark failed")
		stop()
		os.Exit(1)
	}
}
