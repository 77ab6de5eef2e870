// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// LinkBaseURL is the public base URL links are built against, including a
	// trailing slash (e.g., "https://files.example.com/").
	LinkBaseURL string

	// HoldingChannelID is the chat id of the channel used as durable storage
	// for relayed media.
	HoldingChannelID int64

	// AllowedUsers restricts who may use the bot. Entries are user ids or
	// usernames; an empty list allows everyone.
	AllowedUsers []string

	// RelayDownloadDir is the transient directory used when a relay has to
	// download media and re-upload it.
	RelayDownloadDir string

	// LinkCacheSize is the maximum number of reply-message links kept in memory.
	LinkCacheSize int
	// LinkCacheTTL is how long a cached link stays valid.
	LinkCacheTTL time.Duration

	// CloudreveEnabled indicates whether the remote-download hand-off is active.
	CloudreveEnabled bool
	// CloudreveAPIURL is the base URL of the Cloudreve-compatible service.
	CloudreveAPIURL string
	// CloudreveEmail is the account email used to log in.
	CloudreveEmail string
	// CloudrevePassword is the account password in plain text. Ignored when
	// CloudrevePasswordEncrypted is set.
	CloudrevePassword string
	// CloudrevePasswordEncrypted is the base64 ciphertext of the account
	// password, decrypted at startup through KMSKeyURI.
	CloudrevePasswordEncrypted string
	// CloudreveDownloadPath is the destination folder for remote-download tasks
	// (e.g., "cloudreve://my/downloads").
	CloudreveDownloadPath string
	// CloudreveSuccessCode is the top-level status code the deployed service
	// returns on success. Service revisions disagree on the convention, so it
	// is configuration rather than a guess.
	CloudreveSuccessCode int
	// CloudreveTimeout bounds every request against the service.
	CloudreveTimeout time.Duration
	// CloudreveTokenSkew is the safety margin subtracted from token expiry when
	// deciding whether renewal is due.
	CloudreveTokenSkew time.Duration

	// SubmitRatePerSec is the number of remote-download submissions allowed per
	// second across all users.
	SubmitRatePerSec float64
	// SubmitBurst is the submission rate limiter burst size.
	SubmitBurst int

	// KMSKeyURI is the URI of the key used to decrypt encrypted secrets
	// (e.g., "base64key://...", "hashivault://keyname").
	KMSKeyURI string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsHost is the host address the metrics server binds to.
	MetricsHost string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Links and relay
		LinkBaseURL:      env.GetString("LINK_BASE_URL", ""),
		HoldingChannelID: env.GetInt64("HOLDING_CHANNEL_ID", 0),
		AllowedUsers:     splitList(env.GetString("ALLOWED_USERS", "")),
		RelayDownloadDir: env.GetString("RELAY_DOWNLOAD_DIR", os.TempDir()),
		LinkCacheSize:    env.GetInt("LINK_CACHE_SIZE", 4096),
		LinkCacheTTL:     env.GetDuration("LINK_CACHE_TTL_MINUTES", 1440, time.Minute),

		// Cloudreve
		CloudreveEnabled:           env.GetBool("CLOUDREVE_ENABLED", false),
		CloudreveAPIURL:            env.GetString("CLOUDREVE_API_URL", ""),
		CloudreveEmail:             env.GetString("CLOUDREVE_EMAIL", ""),
		CloudrevePassword:          env.GetString("CLOUDREVE_PASSWORD", ""),
		CloudrevePasswordEncrypted: env.GetString("CLOUDREVE_PASSWORD_ENCRYPTED", ""),
		CloudreveDownloadPath:      env.GetString("CLOUDREVE_DOWNLOAD_PATH", ""),
		CloudreveSuccessCode:       env.GetInt("CLOUDREVE_SUCCESS_CODE", 0),
		CloudreveTimeout:           env.GetDuration("CLOUDREVE_TIMEOUT_SECONDS", 15, time.Second),
		CloudreveTokenSkew:         env.GetDuration("CLOUDREVE_TOKEN_SKEW_SECONDS", 60, time.Second),

		// Submission rate limiting
		SubmitRatePerSec: env.GetFloat64("SUBMIT_REQUESTS_PER_SEC", 1.0),
		SubmitBurst:      env.GetInt("SUBMIT_BURST", 3),

		// KMS configuration
		KMSKeyURI: env.GetString("KMS_KEY_URI", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "filestream"),
		MetricsHost:      env.GetString("METRICS_HOST", "0.0.0.0"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// splitList parses a comma-separated environment value into trimmed entries.
func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	entries := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			entries = append(entries, trimmed)
		}
	}
	return entries
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
