package config

const (
	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Repository Defaults
	DefaultRepositoryPath           = "."
	DefaultRepositoryRemote         = "upstream"
	DefaultRepositoryBranch         = "master"
	DefaultRepositoryFolderBasePath = "packages/libs"
	DefaultRepositoryLookbackHours  = 24

	// Engine Defaults
	DefaultEngineFetchTimeoutMs     = 8000
	DefaultEngineMaxCommitsPerCycle = 60
	DefaultEngineBatchSize          = 3
	DefaultEngineBatchDelayMs       = 300
	DefaultEngineFolderMatchMode    = FolderMatchSubstring

	// Notification Defaults
	DefaultNotificationBackend    = BackendDesktop
	DefaultNotificationThrottleMs = 2000
	DefaultNotificationSoundDir   = "sounds"

	// Storage Defaults
	DefaultStorageSQLiteDBPath = "database/commitsentry.db"

	// ConfigPathEnv overrides config file discovery.
	ConfigPathEnv = "COMMITSENTRY_CONFIG_PATH"
)

// Folder match modes
const (
	FolderMatchSubstring = "substring"
	FolderMatchSegment   = "segment"
)

// Notification backends
const (
	BackendDesktop = "desktop"
	BackendConsole = "console"
	BackendDiscord = "discord"
)
