package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MGTheTrain/subtle-crypto-adapter/internal/pkg/config"
	"github.com/MGTheTrain/subtle-crypto-adapter/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// InsecureContextFlag makes every command run without the platform capability
const InsecureContextFlag = "insecure-context"

// Results go to stdout, so the CLI only logs errors.
func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: config.LogLevelError,
		LogType:  config.LogTypeConsole,
		FilePath: "",
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// AddGlobalFlags registers the persistent flags shared by all commands
func AddGlobalFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().Bool(InsecureContextFlag, false, "Simulate an execution context without the SubtleCrypto capability")
}

// readText returns the value of textFlag, or the content of the file named by fileFlag
func readText(cmd *cobra.Command, textFlag, fileFlag string) (string, error) {
	if cmd.Flags().Changed(textFlag) {
		return cmd.Flags().GetString(textFlag)
	}

	path, err := cmd.Flags().GetString(fileFlag)
	if err != nil {
		return "", fmt.Errorf("invalid %s flag: %w", fileFlag, err)
	}

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("unable to read %s: %w", path, err)
	}

	return string(content), nil
}

// readSignature is readText with surrounding whitespace removed, so signature files may end in a newline
func readSignature(cmd *cobra.Command) (string, error) {
	signature, err := readText(cmd, "signature", "signature-file")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(signature), nil
}
