// Package main provides a small CLI for inspecting and clearing the
// gateway's persisted session file, mainly for recovering a machine
// whose session got into a bad state.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"wisata/internal/auth/models"
	"wisata/internal/platform/config"
	"wisata/internal/sentinel"
	"wisata/internal/session"
)

func main() {
	_ = godotenv.Load()

	showCmd := flag.NewFlagSet("show", flag.ExitOnError)
	showJSON := showCmd.Bool("json", false, "Output as JSON")
	clearCmd := flag.NewFlagSet("clear", flag.ExitOnError)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	store := session.NewFile(cfg.SessionFile, cfg.SessionKey)

	switch os.Args[1] {
	case "show":
		showCmd.Parse(os.Args[2:])
		show(store, cfg.SessionFile, *showJSON)
	case "clear":
		clearCmd.Parse(os.Args[2:])
		if err := store.Clear(); err != nil {
			fatal(err)
		}
		fmt.Println("session cleared")
	default:
		usage()
		os.Exit(2)
	}
}

func show(store *session.FileStore, path string, asJSON bool) {
	rec, err := store.Read()
	switch {
	case errors.Is(err, sentinel.ErrNoSession):
		fmt.Println("no session stored at", path)
		return
	case errors.Is(err, sentinel.ErrCorrupt):
		fmt.Println("session file was corrupt and has been cleared")
		return
	case err != nil:
		fatal(err)
	}

	var user models.User
	if uerr := json.Unmarshal(rec.User, &user); uerr != nil {
		fatal(uerr)
	}

	if asJSON {
		out, _ := json.MarshalIndent(map[string]any{
			"user":           user,
			"email_verified": rec.EmailVerified,
			"device":         rec.Device,
		}, "", "  ")
		fmt.Println(string(out))
		return
	}

	fmt.Printf("user:      %s <%s> (%s)\n", user.Name, user.Email, user.Role)
	fmt.Printf("verified:  %v\n", rec.EmailVerified || user.VerifiedEmail())
	if rec.Device != "" {
		fmt.Printf("device:    %s\n", rec.Device)
	}
	fmt.Printf("file:      %s\n", path)
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: sessionctl <command>

Commands:
  show   Print the stored session (never prints the token)
  clear  Remove the stored session`)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "sessionctl:", err)
	os.Exit(1)
}
