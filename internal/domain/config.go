package domain

// Config mirrors ~/.apidocgen/config.yaml.
type Config struct {
	ConfigFormatVersion string             `yaml:"config_format_version"`
	Preferences         Preferences        `yaml:"preferences"`
	Models              []ModelDefinition  `yaml:"models"`
	Prompts             PromptSettings     `yaml:"prompts"`
	Routes              RouteSettings      `yaml:"routes"`
	Output              OutputSettings     `yaml:"output"`
	Evaluation          EvaluationSettings `yaml:"evaluation"`
	Logging             LoggingSettings    `yaml:"logging"`
}

// Preferences captures user level defaults that CLI flags may override.
type Preferences struct {
	DefaultModel   string `yaml:"default_model"`
	CriticModel    string `yaml:"critic_model"`
	PromptVersion  string `yaml:"prompt_version"`
	Mode           string `yaml:"mode"`
	TimeoutSeconds int    `yaml:"timeout"`
}

// PromptSettings locates the versioned prompt store.
type PromptSettings struct {
	StoreFile string `yaml:"store_file"`
	CacheSize int    `yaml:"cache_size"`
}

// RouteSettings configures route manifest extraction.
type RouteSettings struct {
	Framework string `yaml:"framework"`
	AppAttr   string `yaml:"app_attr"`
}

// OutputSettings controls where generated artifacts land.
type OutputSettings struct {
	Dir            string `yaml:"dir"`
	EvaluationsDir string `yaml:"evaluations_dir"`
	Title          string `yaml:"title"`
}

// EvaluationSettings controls critic runs.
type EvaluationSettings struct {
	Versions       []string `yaml:"versions"`
	Parser         string   `yaml:"parser"`
	EndpointParser string   `yaml:"endpoint_parser"`
	ReuseIfPresent bool     `yaml:"reuse_if_present"`
	IndexFile      string   `yaml:"index_file"`
}

// LoggingSettings configures the zap logger.
type LoggingSettings struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}
