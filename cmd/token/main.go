// Command token mints a client token for the search endpoint using JWT_SECRET.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/octobees/employee-search/api/internal/auth"
)

func main() {
	client := flag.String("client", "", "client identifier placed in the token subject")
	scope := flag.String("scope", auth.ScopeSearch, "space separated scopes")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	token, err := auth.NewJWTManager(secret, *ttl).GenerateToken(*client, *scope)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	fmt.Println(token)
}
