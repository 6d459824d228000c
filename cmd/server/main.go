// Command server runs the time-allocation analytics HTTP API.
package main

import (
	"context"
	"log"

	"github.com/qiwenzhou/mytime-backend/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
