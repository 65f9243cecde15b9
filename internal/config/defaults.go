package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultConfigFile is the config file looked up in the project path
	DefaultConfigFile = "suitekit.yaml"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultProcessors is the default number of workers
	DefaultProcessors = 4
	// DefaultHistoryDriver is the default SQL driver for run history
	DefaultHistoryDriver = "sqlite3"
	// DefaultHistoryFile is the sqlite database file used when no DSN is set
	DefaultHistoryFile = "history.db"
	// DefaultHistoryLimit is the number of runs the history command shows
	DefaultHistoryLimit = 10
	// DefaultLogLevel is the default slog level
	DefaultLogLevel = "warn"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "SUITEKIT_"
