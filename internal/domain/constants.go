package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// FilePermissions is the permission for generated reports and records (rw-r--r--)
	FilePermissions = 0o644
	// SecureFilePermissions is the permission for the config file (rw-------)
	SecureFilePermissions = 0o600
)

// Timeout and duration constants
const (
	// DefaultProviderTimeout bounds a single model call
	DefaultProviderTimeout = 120 * time.Second
	// DefaultModelTestTimeout is the default timeout for `models test`
	DefaultModelTestTimeout = 30 * time.Second
)

// Naming constants
const (
	// TimestampLayout matches the file name stamps used for reports and evaluations
	TimestampLayout = "2006-01-02_15-04-05"
	// DefaultAppAttr is the manifest key that holds the application object
	DefaultAppAttr = "app"
	// UnnamedAPI is the fallback endpoint name for routes without one
	UnnamedAPI = "Unnamed API"
	// PromptNotFound is returned by the prompt store for unknown versions
	PromptNotFound = "Default prompt not found."
	// EvaluationsDirName is the folder holding critic records under the output dir
	EvaluationsDirName = "critic_evaluations"
	// DefaultReportTitle heads every generated Markdown report
	DefaultReportTitle = "Comprehensive API Documentation"
)

// Placeholder values used when an endpoint lacks optional metadata.
const (
	NoParameters  = "None"
	NoSourceCode  = "Code not found"
	NoDescription = "No description available."
)

// Prompt store keys for the critic rubrics.
const (
	CriticReadmeKey   = "critic:readme"
	CriticEndpointKey = "critic:endpoint"
	// CriticKeyPrefix marks rubric entries that are not generation versions
	CriticKeyPrefix = "critic:"
)

// Limit constants
const (
	// DefaultPromptCacheSize is the number of parsed prompt stores memoised
	DefaultPromptCacheSize = 8
	// DefaultHistoryLimit is the default number of index rows to display
	DefaultHistoryLimit = 20
	// DefaultMaxTokens is the default maximum number of tokens
	DefaultMaxTokens = 2048
)

// SamplingTemperature is sent with every generation and critic call.
// It is not configurable: scores are only comparable across runs at 0.
const SamplingTemperature = 0.0
