package config

// SchemaVersion is the only config record version this build understands.
const SchemaVersion = 1

// Config is the process-wide rule configuration. It is read once at start-up
// and compiled into a Compiled record that rules share read-only.
type Config struct {
	Version            int               `toml:"version" yaml:"version"`
	SentenceCase       SentenceCase      `toml:"sentence_case" yaml:"sentence_case"`
	Calls              Calls             `toml:"calls" yaml:"calls"`
	TextDomains        TextDomains       `toml:"text_domains" yaml:"text_domains"`
	TranslatorComment  TranslatorComment `toml:"translator_comment" yaml:"translator_comment"`
	Context            Context           `toml:"context" yaml:"context"`
	Quoting            Quoting           `toml:"quoting" yaml:"quoting"`
	Compat             Compat            `toml:"compat" yaml:"compat"`
	ForbiddenFunctions map[string]string `toml:"forbidden_functions" yaml:"forbidden_functions"`
	Rules              Rules             `toml:"rules" yaml:"rules"`
	Files              Files             `toml:"files" yaml:"files"`
	Fixer              Fixer             `toml:"fixer" yaml:"fixer"`

	// Path is the file the record was loaded from, empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

type SentenceCase struct {
	Exceptions     []string `toml:"exceptions" yaml:"exceptions"`
	ExceptionsFile string   `toml:"exceptions_file" yaml:"exceptions_file"`
	ShowWarnings   bool     `toml:"show_warnings" yaml:"show_warnings"`
	// IntegrationOnly limits the integration sentence-case rule to integration files.
	IntegrationOnly bool `toml:"integration_only" yaml:"integration_only"`
}

type Calls struct {
	Translatable    []string `toml:"translatable" yaml:"translatable"`
	ContextRequired []string `toml:"context_required" yaml:"context_required"`
}

type TextDomains struct {
	Core       []string `toml:"core" yaml:"core"`
	Additional []string `toml:"additional" yaml:"additional"`
	Patterns   []string `toml:"patterns" yaml:"patterns"`
}

type TranslatorComment struct {
	MinLength     int `toml:"min_length" yaml:"min_length"`
	LookbackLines int `toml:"lookback_lines" yaml:"lookback_lines"`
}

type Context struct {
	IntegrationPatterns []string `toml:"integration_patterns" yaml:"integration_patterns"`
	ServicePatterns     []string `toml:"service_patterns" yaml:"service_patterns"`
	Default             string   `toml:"default" yaml:"default"`
	// HTMLExceptionKeys are array keys whose translated values may be switched to esc_html_x.
	HTMLExceptionKeys []string `toml:"html_exception_keys" yaml:"html_exception_keys"`
}

type Quoting struct {
	SkipPaths []string `toml:"skip_paths" yaml:"skip_paths"`
}

type Compat struct {
	Target string `toml:"target" yaml:"target"`
}

type Rules struct {
	Disable []string `toml:"disable" yaml:"disable"`
}

type Files struct {
	Extensions []string `toml:"extensions" yaml:"extensions"`
	Ignore     []string `toml:"ignore" yaml:"ignore"`
}

type Fixer struct {
	MaxPasses int `toml:"max_passes" yaml:"max_passes"`
}

// Default returns the built-in record, which reproduces the original ruleset.
func Default() *Config {
	return &Config{
		Version: SchemaVersion,
		SentenceCase: SentenceCase{
			ShowWarnings:    true,
			IntegrationOnly: true,
		},
		Calls: Calls{
			Translatable: []string{
				"__", "_e", "_x", "_ex",
				"esc_html__", "esc_html_e", "esc_html_x",
				"esc_attr__", "esc_attr_e", "esc_attr_x",
			},
			ContextRequired: []string{"__", "_e"},
		},
		TextDomains: TextDomains{
			Core: []string{"uncanny-automator", "uncanny-automator-pro", "uncanny-automator-elite"},
		},
		TranslatorComment: TranslatorComment{
			MinLength:     10,
			LookbackLines: 3,
		},
		Context: Context{
			IntegrationPatterns: []string{`(?:^|/)(?:src/)?integrations/([^/]+)/`},
			ServicePatterns:     []string{`(?:^|/)src/core/services/([^/]+)/`},
			Default:             "Automator",
			HTMLExceptionKeys:   []string{"tokenName", "label", "description", "message"},
		},
		Quoting: Quoting{
			SkipPaths: []string{"discord"},
		},
		Compat: Compat{
			Target: "7.3",
		},
		ForbiddenFunctions: map[string]string{
			"elog": "Remove debugging statements before committing.",
		},
		Files: Files{
			Extensions: []string{"php"},
			Ignore:     []string{"vendor/**", "node_modules/**", ".git/**"},
		},
		Fixer: Fixer{
			MaxPasses: 50,
		},
	}
}
