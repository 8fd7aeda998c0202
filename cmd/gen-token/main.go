package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/SergeyKozhin/chat-calendar/internal/config"
	"github.com/SergeyKozhin/chat-calendar/internal/pkg/jwt"
	"github.com/SergeyKozhin/chat-calendar/internal/pkg/validator"
)

func main() {
	user := flag.String("user", "default", "calendar owner put into the token subject")
	flag.Parse()

	if !config.AuthEnabled() {
		fmt.Fprintln(os.Stderr, "SECRET must be set")
		os.Exit(1)
	}

	if !validator.Matches(*user, validator.UserIDRX) {
		fmt.Fprintf(os.Stderr, "invalid user id %q\n", *user)
		os.Exit(1)
	}

	token, err := jwt.NewManager(config.Secret(), config.JwtTTL()).CreateToken(*user)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(token)
}
