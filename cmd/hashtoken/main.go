package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

const minTokenLength = 16

var (
	errTokenMismatch = errors.New("tokens do not match")
	errTokenTooShort = fmt.Errorf("token must be at least %d characters", minTokenLength)
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(1)
	}

	switch command := os.Args[1]; command {
	case "hash":
		if !runHash() {
			os.Exit(1)
		}
	case "check":
		if !runCheck() {
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", sanitizeCommand(command))
		printUsage(os.Stdout)
		os.Exit(1)
	}
}

// sanitizeCommand replaces any character that is not alphanumeric, a hyphen,
// or an underscore with '_'.
func sanitizeCommand(cmd string) string {
	var b strings.Builder
	b.Grow(len(cmd))
	for _, r := range cmd {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "memwatch API token tool")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage: hashtoken <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  hash   - Prompt for a token and print its bcrypt hash")
	fmt.Fprintln(w, "  check  - Prompt for a token and compare it with API_TOKEN_HASH")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  API_TOKEN_HASH - Hash to compare against (check only)")
}

func readSecret(prompt string) ([]byte, error) {
	fmt.Print(prompt)
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	return secret, err
}

func runHash() bool {
	token, err := readSecret("API token: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading token: %v\n", err)
		return false
	}
	confirm, err := readSecret("Confirm API token: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading token: %v\n", err)
		return false
	}

	hash, err := hashToken(token, confirm, bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return false
	}

	fmt.Println(hash)
	fmt.Fprintln(os.Stderr, "Set API_TOKEN_HASH to the value above.")
	return true
}

func runCheck() bool {
	hash := os.Getenv("API_TOKEN_HASH")
	if hash == "" {
		fmt.Fprintln(os.Stderr, "Error: API_TOKEN_HASH is not set")
		return false
	}

	token, err := readSecret("API token: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading token: %v\n", err)
		return false
	}

	if !tokenMatches(hash, token) {
		fmt.Println("Token does NOT match API_TOKEN_HASH")
		return false
	}
	fmt.Println("Token matches API_TOKEN_HASH")
	return true
}

// tokenMatches trims the token the same way hashToken and the API do.
func tokenMatches(hash string, token []byte) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), bytes.TrimSpace(token)) == nil
}

// hashToken validates a token entered twice and returns its bcrypt hash.
func hashToken(token, confirm []byte, cost int) (string, error) {
	if !bytes.Equal(token, confirm) {
		return "", errTokenMismatch
	}

	token = bytes.TrimSpace(token)
	if len(token) < minTokenLength {
		return "", errTokenTooShort
	}

	hash, err := bcrypt.GenerateFromPassword(token, cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash token: %w", err)
	}
	return string(hash), nil
}
