// Command keygen mints an access token for an operator.
//
//	keygen -user 2b0c7d1e-9d2f-4d0b-8a53-6f0b3c1d2e4f -role admin
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/ray8844/saida-de-campo/config"
	"github.com/ray8844/saida-de-campo/pkg/jwt"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	userID := flag.String("user", "", "operator id (uuid); generated when empty")
	role := flag.String("role", "admin", "role claim: admin or viewer")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	id := *userID
	if id == "" {
		id = uuid.NewString()
	} else if _, err := uuid.Parse(id); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -user %q: %v\n", id, err)
		os.Exit(2)
	}
	switch *role {
	case "admin", "viewer":
	default:
		fmt.Fprintf(os.Stderr, "invalid -role %q: want admin or viewer\n", *role)
		os.Exit(2)
	}

	token, err := jwt.NewManager(&cfg.Auth).GenerateAccessToken(id, *role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sign token: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "user=%s role=%s ttl=%s\n", id, *role, cfg.Auth.AccessTokenTTL)
	fmt.Println(token)
}
