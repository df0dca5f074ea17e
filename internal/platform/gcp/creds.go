package gcp

import (
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// credentialsFromEnv prefers bucket-specific credentials over the process-wide
// Google defaults so the export reader can use a narrower service account.
func credentialsFromEnv() string {
	for _, key := range []string{
		"GCS_RAW_CREDENTIALS_JSON",
		"GCS_RAW_CREDENTIALS_FILE",
		"GOOGLE_APPLICATION_CREDENTIALS_JSON",
		"GOOGLE_APPLICATION_CREDENTIALS",
	} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}

// clientOptions builds read-only storage options. An emulator host skips auth;
// otherwise Credentials is inline JSON or a file path, and empty falls back to
// application default credentials.
func clientOptions(cfg BucketConfig) []option.ClientOption {
	if cfg.EmulatorHost != "" {
		return []option.ClientOption{option.WithoutAuthentication()}
	}
	opts := []option.ClientOption{option.WithScopes(storage.ScopeReadOnly)}
	switch creds := strings.TrimSpace(cfg.Credentials); {
	case creds == "":
	case strings.HasPrefix(creds, "{"):
		opts = append(opts, option.WithCredentialsJSON([]byte(creds)))
	default:
		opts = append(opts, option.WithCredentialsFile(creds))
	}
	return opts
}
