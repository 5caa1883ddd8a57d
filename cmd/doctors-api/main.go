// Command doctors-api serves clinic doctors from PostgreSQL.
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

	if err := app.Run(ctx, app.DoctorsAPI); err != nil {
		log.Fatalf("doctors-api: %v", err)
	}
}
