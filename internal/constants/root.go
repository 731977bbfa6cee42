package constants

const (
	AppName           = "gutlog"
	Version           = "v0.3.1"
	DefaultConfigPath = "~/.config/gutlog/gutlog.json"

	// KeyringTokenUser is the keyring account name under which the
	// backend access token is stored.
	KeyringTokenUser = "access-token"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// StoreVersion is the current local snapshot schema version
	StoreVersion = 1

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "gutlog-"

	// Environment variables
	EnvRemoteDSN  = "GUTLOG_REMOTE_DSN"
	EnvBillingURL = "GUTLOG_BILLING_URL"
	EnvBillingKey = "GUTLOG_BILLING_KEY"
)
