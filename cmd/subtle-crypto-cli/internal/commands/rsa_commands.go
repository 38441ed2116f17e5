package commands

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	cryptoDomain "github.com/MGTheTrain/subtle-crypto-adapter/internal/domain/crypto"
	"github.com/MGTheTrain/subtle-crypto-adapter/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/subtle-crypto-adapter/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// RSACommandHandler encapsulates logic for producing JWKs and signatures from PEM keys via CLI.
type RSACommandHandler struct {
	rsaProcessor cryptoDomain.RSAProcessor
	logger       logger.Logger
}

// NewRSACommandHandler initializes a new RSACommandHandler with logging and an RSA processor.
func NewRSACommandHandler() (*RSACommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	rsaProcessor, err := cryptography.NewRSAProcessor(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA processor: %w", err)
	}

	return &RSACommandHandler{
		rsaProcessor: rsaProcessor,
		logger:       loggerInstance,
	}, nil
}

// ExportJWKCmd prints the public JWK of a PEM public key
func (commandHandler *RSACommandHandler) ExportJWKCmd(cmd *cobra.Command, _ []string) error {
	publicKeyPath, err := cmd.Flags().GetString("public-key")
	if err != nil {
		return fmt.Errorf("invalid public-key flag: %w", err)
	}

	publicKey, err := commandHandler.rsaProcessor.ReadPublicKey(publicKeyPath)
	if err != nil {
		return err
	}

	jwk, err := commandHandler.rsaProcessor.ExportJWK(publicKey)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(jwk, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JWK: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return nil
}

// SignCmd prints the base64 RS256 signature of a file
func (commandHandler *RSACommandHandler) SignCmd(cmd *cobra.Command, _ []string) error {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		return fmt.Errorf("invalid input-file flag: %w", err)
	}
	privateKeyPath, err := cmd.Flags().GetString("private-key")
	if err != nil {
		return fmt.Errorf("invalid private-key flag: %w", err)
	}
	urlSafe, err := cmd.Flags().GetBool("url-safe")
	if err != nil {
		return fmt.Errorf("invalid url-safe flag: %w", err)
	}

	// Read private key
	privateKey, err := commandHandler.rsaProcessor.ReadPrivateKey(privateKeyPath)
	if err != nil {
		return err
	}

	// Read data to sign
	data, err := os.ReadFile(filepath.Clean(inputFilePath))
	if err != nil {
		return fmt.Errorf("unable to read input file: %w", err)
	}

	signature, err := commandHandler.rsaProcessor.Sign(data, privateKey)
	if err != nil {
		return err
	}

	encoding := base64.StdEncoding
	if urlSafe {
		encoding = base64.RawURLEncoding
	}

	fmt.Fprintln(cmd.OutOrStdout(), encoding.EncodeToString(signature))
	return nil
}

// InitRSACommands registers export-jwk and sign commands
func InitRSACommands(rootCmd *cobra.Command) error {
	handler, err := NewRSACommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create RSA command handler %w", err)
	}

	var exportJWKCmd = &cobra.Command{
		Use:   "export-jwk",
		Short: "Export a PEM RSA public key as an RS256 JWK",
		RunE:  handler.ExportJWKCmd,
	}
	exportJWKCmd.Flags().StringP("public-key", "", "", "Path to RSA public key (PKCS#1 or PKIX PEM)")
	_ = exportJWKCmd.MarkFlagRequired("public-key")
	rootCmd.AddCommand(exportJWKCmd)

	var signCmd = &cobra.Command{
		Use:   "sign",
		Short: "Sign a file with RSASSA-PKCS1-v1_5 SHA-256",
		RunE:  handler.SignCmd,
	}
	signCmd.Flags().StringP("input-file", "", "", "Path to file which needs to be signed")
	signCmd.Flags().StringP("private-key", "", "", "Path to RSA private key (PKCS#1 or PKCS#8 PEM)")
	signCmd.Flags().BoolP("url-safe", "", false, "Print the signature in unpadded base64url")
	_ = signCmd.MarkFlagRequired("input-file")
	_ = signCmd.MarkFlagRequired("private-key")
	rootCmd.AddCommand(signCmd)

	return nil
}
