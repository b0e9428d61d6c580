// api_key_gen issues a bearer token for the ops API, signed with
// API_JWT_SECRET from the environment or .env.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/pinkslip-racing/pinkslip/internal/auth"
	"github.com/pinkslip-racing/pinkslip/internal/config"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var subject, guildID string
	var ttl time.Duration

	flagSet := pflag.NewFlagSet("api_key_gen", pflag.ContinueOnError)
	flagSet.StringVar(&subject, "subject", "ops", "who the token is issued to")
	flagSet.StringVar(&guildID, "guild", "", "restrict the token to one guild id (default: every guild)")
	flagSet.DurationVar(&ttl, "ttl", 0, "token lifetime, 0 for no expiry")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	token, err := auth.IssueToken([]byte(cfg.APIJWTSecret), subject, guildID, ttl)
	if errors.Is(err, auth.ErrMissingSecret) {
		return errors.New("API_JWT_SECRET must be set")
	}
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
