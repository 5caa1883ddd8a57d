// Command users-api serves the user directory from static data. Writes are accepted and echoed back but never stored.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/clinic-api/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, app.UsersAPI); err != nil {
		log.Fatalf("users-api: %v", err)
	}
}
