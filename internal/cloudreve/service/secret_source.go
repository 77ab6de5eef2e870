package service

import (
	"context"
	"encoding/base64"

	"gocloud.dev/secrets"

	"github.com/ablecats/filestream/internal/config"
	apperrors "github.com/ablecats/filestream/internal/errors"

	// Register KMS provider drivers for secret decryption
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// ResolvePassword returns the remote storage password from configuration.
// When CLOUDREVE_PASSWORD_ENCRYPTED is set it is treated as base64 ciphertext
// and decrypted through the keeper behind KMS_KEY_URI (base64key://,
// hashivault://, awskms://, gcpkms://, azurekeyvault://); otherwise the plain
// password is returned as-is.
func ResolvePassword(ctx context.Context, cfg *config.Config) (string, error) {
	if cfg.CloudrevePasswordEncrypted == "" {
		return cfg.CloudrevePassword, nil
	}
	if cfg.KMSKeyURI == "" {
		return "", apperrors.Wrap(apperrors.ErrConfig, "KMS_KEY_URI is empty")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(cfg.CloudrevePasswordEncrypted)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrConfig, "encrypted password is not valid base64")
	}

	keeper, err := secrets.OpenKeeper(ctx, cfg.KMSKeyURI)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to open KMS keeper")
	}
	defer func() { _ = keeper.Close() }()

	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to decrypt remote storage password")
	}
	return string(plaintext), nil
}
