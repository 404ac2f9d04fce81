package config

// Config is the top-level run configuration parsed from a csfix YAML file.
type Config struct {
	// FixerPath, when set, is used as the fixer executable directly. When
	// empty the php-cs-fixer phar is fetched into the working tree and
	// invoked through the php runtime.
	FixerPath string `yaml:"fixer_path"`

	// Parameters is the global parameter string passed to the fixer.
	Parameters string `yaml:"parameters"`

	// ProjectParameters, when non-empty, fully replaces Parameters for the
	// run. Precedence, not a merge.
	ProjectParameters string `yaml:"project_parameters"`

	// Extensions lists the file suffixes eligible for fixing. Matching is
	// case-sensitive.
	Extensions []string `yaml:"extensions"`

	History History `yaml:"history"`
}

// History configures the local run-history store.
type History struct {
	Disabled bool   `yaml:"disabled"`
	Path     string `yaml:"path"`
}

// DefaultParameters is the fixer parameter string used when none is configured.
const DefaultParameters = "fix --level=psr2 --dry-run --diff"

// DefaultExtensions is the suffix filter used when none is configured.
var DefaultExtensions = []string{".php"}
