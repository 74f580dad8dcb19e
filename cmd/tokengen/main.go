// Command tokengen mints a user JWT for local development and device-fleet
// scripting against the API. It reads JWT_SECRET the same way the server does.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ecoduino/greenhouse-backend/internal/config"
	"github.com/ecoduino/greenhouse-backend/pkg/utils"
)

func main() {
	userID := flag.Uint("user", 0, "user id to embed in the token")
	email := flag.String("email", "", "email claim (optional)")
	flag.Parse()

	if *userID == 0 {
		fmt.Fprintln(os.Stderr, "usage: tokengen -user <id> [-email <address>]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}
	if cfg.JWT.Secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is not set")
		os.Exit(1)
	}

	token, err := utils.GenerateToken(uint(*userID), *email, cfg.JWT.Secret, cfg.JWT.JWTExpiry())
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to sign token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
