// Command issue-token mints a bearer token for the inventory write routes.
//
//	JWT_SECRET=... go run ./cmd/issue-token --subject=bodega --ttl=72h
package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"go-inventory-api/pkg/config"
	"go-inventory-api/pkg/jwt"

	"github.com/ardanlabs/conf/v3"
	"github.com/joho/godotenv"
)

type options struct {
	Subject string        `conf:"default:operator,flag:subject,help:operator the token is issued to"`
	TTL     time.Duration `conf:"flag:ttl,help:token lifetime; defaults to JWT_TOKEN_TTL"`
	Auth    config.Auth
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	var opts options
	help, err := conf.Parse("", &opts)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return
		}
		log.Fatalf("Failed to parse options: %v", err)
	}

	signer, err := jwt.NewSigner(opts.Auth.JWTSecret, opts.Auth.Issuer)
	if err != nil {
		log.Fatalf("Cannot issue token: %v (set JWT_SECRET)", err)
	}

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = opts.Auth.TokenTTL
	}

	token, err := signer.GenerateToken(opts.Subject, jwt.ScopeWrite, ttl)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	log.Printf("Token for %q valid for %s", opts.Subject, ttl)
	fmt.Println(token)
}
