// Package main is the entry point for the subtle-crypto-cli application.
// It initializes the root command and registers the digest, random, verify and RSA key tooling
// sub-commands, then executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/MGTheTrain/subtle-crypto-adapter/cmd/subtle-crypto-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "subtle-crypto-cli",
		Short: "SubtleCrypto adapter CLI tool",
		Long: `subtle-crypto-cli exposes the SubtleCrypto adapter on the command line.
Computes base64 SHA-256 digests, generates secure random bytes and verifies
RSASSA-PKCS1-v1_5 SHA-256 signatures against public JWKs.
The export-jwk and sign commands turn PEM keys into verification fixtures.

Pass --insecure-context to run without the platform capability.`,
		SilenceUsage: true,
	}
	commands.AddGlobalFlags(rootCmd)

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	// Execute root command ONCE after all commands are registered
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	// Register digest, random and verify commands
	if err := commands.InitCryptoCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize crypto commands: %w", err)
	}

	// Register RSA key tooling commands
	if err := commands.InitRSACommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize RSA commands: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	// Set log flags for better error messages
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Ensure proper exit codes on errors
	log.SetOutput(os.Stderr)
}
