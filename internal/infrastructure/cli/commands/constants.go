package commands

// Error messages
const (
	ErrConfigLoaderUnavailable    = "config loader unavailable"
	ErrDoctorServiceUnavailable   = "doctor service unavailable"
	ErrEvaluationIndexUnavailable = "evaluation index unavailable"
	ErrAPIFileRequired            = "--api-file is required"
	ErrNoVersions                 = "no prompt versions selected (use --versions or evaluation.versions)"
	ErrReuseFlagsConflict         = "--reuse and --no-reuse are mutually exclusive"
)

// Success messages
const (
	MsgConfigurationValid = "Configuration valid"
	MsgNoRoutes           = "No endpoints found."
	MsgNoPrompts          = "Prompt store is empty."
)

// Defaults
const (
	DefaultHistoryLimit = 20
	// ModelTestPrompt is sent by `models test`.
	ModelTestPrompt = "Reply with the single word OK."
)
