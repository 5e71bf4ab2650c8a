package main

import (
	"context"
	"log"

	"github.com/Apurer/go-gin-order-server/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("order API failed: %v", err)
	}
}
