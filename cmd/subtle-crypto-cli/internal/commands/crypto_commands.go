package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	cryptoDomain "github.com/MGTheTrain/subtle-crypto-adapter/internal/domain/crypto"
	"github.com/MGTheTrain/subtle-crypto-adapter/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/subtle-crypto-adapter/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// CryptoCommandHandler encapsulates logic for handling digest, random and verify operations via CLI.
type CryptoCommandHandler struct {
	logger logger.Logger
}

// NewCryptoCommandHandler initializes a new CryptoCommandHandler with logging.
func NewCryptoCommandHandler() (*CryptoCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &CryptoCommandHandler{
		logger: loggerInstance,
	}, nil
}

// newCrypto builds the adapter, over an unavailable capability when --insecure-context is set
func (commandHandler *CryptoCommandHandler) newCrypto(cmd *cobra.Command) (cryptoDomain.Crypto, error) {
	insecure, err := cmd.Flags().GetBool(InsecureContextFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid %s flag: %w", InsecureContextFlag, err)
	}

	subtle := cryptography.NewUnavailableSubtle()
	if !insecure {
		subtle, err = cryptography.NewNativeSubtle(commandHandler.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create platform engine: %w", err)
		}
	}

	return cryptography.NewSubtleAdapter(subtle, commandHandler.logger)
}

// DigestCmd prints the base64 SHA-256 digest of the given text or file
func (commandHandler *CryptoCommandHandler) DigestCmd(cmd *cobra.Command, _ []string) error {
	text, err := readText(cmd, "data", "input-file")
	if err != nil {
		return err
	}

	crypto, err := commandHandler.newCrypto(cmd)
	if err != nil {
		return err
	}

	digest, err := crypto.Sha256DigestBase64(cmd.Context(), text)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), digest)
	return nil
}

// RandomCmd prints count base64-encoded random bytes
func (commandHandler *CryptoCommandHandler) RandomCmd(cmd *cobra.Command, _ []string) error {
	count, err := cmd.Flags().GetInt("count")
	if err != nil {
		return fmt.Errorf("invalid count flag: %w", err)
	}

	crypto, err := commandHandler.newCrypto(cmd)
	if err != nil {
		return err
	}

	random, err := crypto.RandomBytesBase64(count)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), random)
	return nil
}

// VerifyCmd prints whether a base64 RS256 signature is valid for the given text and public JWK
func (commandHandler *CryptoCommandHandler) VerifyCmd(cmd *cobra.Command, _ []string) error {
	jwkPath, err := cmd.Flags().GetString("jwk-file")
	if err != nil {
		return fmt.Errorf("invalid jwk-file flag: %w", err)
	}

	content, err := os.ReadFile(filepath.Clean(jwkPath))
	if err != nil {
		return fmt.Errorf("unable to read JWK file: %w", err)
	}

	var jwk cryptoDomain.JSONWebKey
	if err := json.Unmarshal(content, &jwk); err != nil {
		return fmt.Errorf("unable to parse JWK file: %w", err)
	}

	text, err := readText(cmd, "data", "input-file")
	if err != nil {
		return err
	}

	signature, err := readSignature(cmd)
	if err != nil {
		return err
	}

	crypto, err := commandHandler.newCrypto(cmd)
	if err != nil {
		return err
	}

	valid, err := crypto.Verify(cmd.Context(), &jwk, text, signature)
	if err != nil {
		return err
	}

	if valid {
		fmt.Fprintln(cmd.OutOrStdout(), "Signature is valid")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Signature is invalid")
	}
	return nil
}

// InitCryptoCommands registers digest, random and verify commands
func InitCryptoCommands(rootCmd *cobra.Command) error {
	handler, err := NewCryptoCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create crypto command handler %w", err)
	}

	var digestCmd = &cobra.Command{
		Use:   "digest",
		Short: "Compute the base64 SHA-256 digest of a text",
		RunE:  handler.DigestCmd,
	}
	digestCmd.Flags().StringP("data", "", "", "Text to digest")
	digestCmd.Flags().StringP("input-file", "", "", "Path to a file whose content is digested")
	digestCmd.MarkFlagsMutuallyExclusive("data", "input-file")
	digestCmd.MarkFlagsOneRequired("data", "input-file")
	rootCmd.AddCommand(digestCmd)

	var randomCmd = &cobra.Command{
		Use:   "random",
		Short: "Generate base64-encoded cryptographically secure random bytes",
		RunE:  handler.RandomCmd,
	}
	randomCmd.Flags().IntP("count", "", 32, "Number of random bytes")
	rootCmd.AddCommand(randomCmd)

	var verifyCmd = &cobra.Command{
		Use:   "verify",
		Short: "Verify an RSASSA-PKCS1-v1_5 SHA-256 signature with a public JWK",
		RunE:  handler.VerifyCmd,
	}
	verifyCmd.Flags().StringP("jwk-file", "", "", "Path to the public JWK (JSON)")
	verifyCmd.Flags().StringP("data", "", "", "Signed text")
	verifyCmd.Flags().StringP("input-file", "", "", "Path to the signed file")
	verifyCmd.Flags().StringP("signature", "", "", "Base64 signature")
	verifyCmd.Flags().StringP("signature-file", "", "", "Path to a file holding the base64 signature")
	_ = verifyCmd.MarkFlagRequired("jwk-file")
	verifyCmd.MarkFlagsMutuallyExclusive("data", "input-file")
	verifyCmd.MarkFlagsOneRequired("data", "input-file")
	verifyCmd.MarkFlagsMutuallyExclusive("signature", "signature-file")
	verifyCmd.MarkFlagsOneRequired("signature", "signature-file")
	rootCmd.AddCommand(verifyCmd)

	return nil
}
