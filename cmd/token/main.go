// Command token выпускает access token для локальной разработки:
//
//	ACCESS_TOKEN=secret go run ./cmd/token -user 1
package main

import (
	"flag"
	"fmt"
	"log"
	"scratchcard/internal/config"
	"scratchcard/internal/config/env"
	"scratchcard/pkg/token"
)

func main() {
	userID := flag.Int("user", 1, "user id")
	flag.Parse()

	if err := config.Load(".env"); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	cfg, err := env.NewJWTConfig()
	if err != nil {
		log.Fatal(err)
	}

	tok, err := token.GenerateAccessToken(*userID, cfg.AccessTokenSecretKey(), cfg.AccessTokenDuration())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(tok)
}
