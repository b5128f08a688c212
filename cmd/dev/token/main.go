package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"campusbooking/pkg/config"
	"campusbooking/pkg/supabase"
)

// token mints a Supabase-shaped access token signed with SUPABASE_JWT_SECRET, for calling the
// API locally without going through Supabase Auth.
func main() {
	var (
		userID = flag.String("user", "", "profile / auth user id (uuid)")
		email  = flag.String("email", "", "email claim")
		ttl    = flag.Duration("ttl", time.Hour, "token lifetime")
	)
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "missing -user")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if cfg.IsProd() {
		fmt.Fprintln(os.Stderr, "refusing to mint tokens with APP_ENV=prod")
		os.Exit(2)
	}
	if cfg.Supabase.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "missing SUPABASE_JWT_SECRET in env/.env")
		os.Exit(2)
	}

	tok, err := supabase.SignAccessToken(*userID, *email, cfg.Supabase.JWTAudience, cfg.Supabase.JWTSecret, time.Now(), *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sign: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
