package domain

// Config mirrors ~/.goterm/config.yaml.
type Config struct {
	ConfigFormatVersion string           `yaml:"config_format_version"`
	Prompt              PromptSettings   `yaml:"prompt"`
	History             HistorySettings  `yaml:"history"`
	Metrics             MetricsSettings  `yaml:"metrics"`
	Terminal            TerminalSettings `yaml:"terminal"`
}

// PromptSettings controls the interactive prompt.
type PromptSettings struct {
	// Format is a template with %s substituted by the working directory.
	Format string `yaml:"format"`
	Banner bool   `yaml:"banner"`
}

// HistorySettings configures where entered lines are persisted.
type HistorySettings struct {
	// Backend is "file" or "sqlite".
	Backend string `yaml:"backend"`
	// Path overrides the default ~/.goterm_history location (file backend).
	Path string `yaml:"path"`
	// RecallLimit caps how many prior entries are preloaded into the line editor.
	RecallLimit int `yaml:"recall_limit"`
}

// MetricsSettings selects the system metrics provider.
type MetricsSettings struct {
	// Provider is "auto", "gopsutil" or "procfs".
	Provider string `yaml:"provider"`
	// TopCount is how many processes the top builtin shows.
	TopCount int `yaml:"top_count"`
}

// TerminalSettings controls line reading behavior.
type TerminalSettings struct {
	// CompletePathExecutables toggles PATH scanning for first-token completion.
	CompletePathExecutables bool `yaml:"complete_path_executables"`
}
