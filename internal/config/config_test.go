package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ablecats/filestream/internal/errors"
)

func validConfig() *Config {
	return &Config{
		LogLevel:              "info",
		LinkBaseURL:           "https://files.example.com/",
		HoldingChannelID:      -1001234567890,
		RelayDownloadDir:      "/tmp",
		LinkCacheSize:         1024,
		LinkCacheTTL:          24 * time.Hour,
		CloudreveEnabled:      true,
		CloudreveAPIURL:       "https://drive.example.com",
		CloudreveEmail:        "bot@example.com",
		CloudrevePassword:     "secret",
		CloudreveDownloadPath: "cloudreve://my/downloads",
		CloudreveTimeout:      15 * time.Second,
		CloudreveTokenSkew:    time.Minute,
		SubmitRatePerSec:      1.0,
		SubmitBurst:           3,
		MetricsNamespace:      "filestream",
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LINK_BASE_URL", "https://files.example.com/")

	cfg := Load()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "https://files.example.com/", cfg.LinkBaseURL)
	assert.Equal(t, 4096, cfg.LinkCacheSize)
	assert.Equal(t, 24*time.Hour, cfg.LinkCacheTTL)
	assert.Equal(t, 15*time.Second, cfg.CloudreveTimeout)
	assert.Equal(t, time.Minute, cfg.CloudreveTokenSkew)
	assert.Equal(t, 0, cfg.CloudreveSuccessCode)
	assert.False(t, cfg.CloudreveEnabled)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, "filestream", cfg.MetricsNamespace)
}

func TestLoadAllowedUsers(t *testing.T) {
	t.Setenv("ALLOWED_USERS", "12345, someuser ,67890")

	cfg := Load()

	assert.Equal(t, []string{"12345", "someuser", "67890"}, cfg.AllowedUsers)
}

func TestValidate(t *testing.T) {
	t.Run("Success_ValidConfig", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("Success_CloudreveDisabledSkipsCloudreveChecks", func(t *testing.T) {
		cfg := validConfig()
		cfg.CloudreveEnabled = false
		cfg.CloudreveAPIURL = ""
		cfg.CloudreveEmail = ""
		cfg.CloudrevePassword = ""
		cfg.CloudreveDownloadPath = ""

		assert.NoError(t, cfg.Validate())
	})

	t.Run("Error_MissingLinkBase", func(t *testing.T) {
		cfg := validConfig()
		cfg.LinkBaseURL = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrConfig))
	})

	t.Run("Error_LinkBaseWithoutTrailingSlash", func(t *testing.T) {
		cfg := validConfig()
		cfg.LinkBaseURL = "https://files.example.com"

		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrConfig))
	})

	t.Run("Error_MissingAPIURL", func(t *testing.T) {
		cfg := validConfig()
		cfg.CloudreveAPIURL = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrConfig))
	})

	t.Run("Error_NoPasswordInAnyForm", func(t *testing.T) {
		cfg := validConfig()
		cfg.CloudrevePassword = ""
		cfg.CloudrevePasswordEncrypted = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrConfig))
	})

	t.Run("Error_EncryptedPasswordWithoutKey", func(t *testing.T) {
		cfg := validConfig()
		cfg.CloudrevePassword = ""
		cfg.CloudrevePasswordEncrypted = "aGVsbG8="
		cfg.KMSKeyURI = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrConfig))
	})
}
