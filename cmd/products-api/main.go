// Command products-api serves the product catalog from PostgreSQL (or static data) and
// composes it with the user count reported by users-api.
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

	if err := app.Run(ctx, app.ProductsAPI); err != nil {
		log.Fatalf("products-api: %v", err)
	}
}
