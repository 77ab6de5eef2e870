package config

import (
	validation "github.com/jellydator/validation"

	apperrors "github.com/ablecats/filestream/internal/errors"
	customValidation "github.com/ablecats/filestream/internal/validation"
)

// Validate checks the configuration for the settings the core cannot run
// without. Cloudreve settings are only required when the hand-off is enabled.
// Validation failures are terminal and reported as ErrConfig.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.LinkBaseURL,
			validation.Required,
			customValidation.HTTPURL,
			customValidation.TrailingSlash,
		),
		validation.Field(&c.LinkCacheSize, validation.Min(1)),
		validation.Field(&c.LinkCacheTTL, validation.Required),
	)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrConfig, err.Error())
	}

	if !c.CloudreveEnabled {
		return nil
	}

	err = validation.ValidateStruct(c,
		validation.Field(&c.CloudreveAPIURL,
			validation.Required,
			customValidation.HTTPURL,
		),
		validation.Field(&c.CloudreveEmail,
			validation.Required,
			customValidation.Email,
		),
		validation.Field(&c.CloudreveDownloadPath,
			validation.Required,
			customValidation.NotBlank,
		),
	)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrConfig, err.Error())
	}

	// The password may arrive plain or encrypted, but one of the two forms has
	// to be present. An encrypted password is unusable without a key.
	if c.CloudrevePassword == "" && c.CloudrevePasswordEncrypted == "" {
		return apperrors.Wrap(
			apperrors.ErrConfig,
			"CLOUDREVE_PASSWORD or CLOUDREVE_PASSWORD_ENCRYPTED must be set",
		)
	}
	if c.CloudrevePasswordEncrypted != "" && c.KMSKeyURI == "" {
		return apperrors.Wrap(
			apperrors.ErrConfig,
			"KMS_KEY_URI must be set when CLOUDREVE_PASSWORD_ENCRYPTED is used",
		)
	}

	return nil
}
