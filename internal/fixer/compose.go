// Package fixer composes php-cs-fixer invocations and resolves the fixer
// executable itself.
package fixer

import "strings"

// Config mirrors config.Config with the fields composition needs.
type Config struct {
	// FixerPath, when set, is the fixer executable itself. When empty the
	// fetched phar is invoked through the php runtime.
	FixerPath string
	// Parameters is the global parameter string.
	Parameters string
	// ProjectParameters, when non-empty, fully replaces Parameters.
	ProjectParameters string
}

// PharName is the local filename the fixer artifact is fetched to, relative
// to the working tree.
const PharName = "php-cs-fixer.phar"

// Compose builds the full argument list for one fixer invocation against
// target. It is pure: same config and target, same argument list.
func Compose(cfg Config, target string) []string {
	var args []string
	if cfg.FixerPath != "" {
		args = append(args, cfg.FixerPath)
	} else {
		args = append(args, "php", PharName)
	}

	params := cfg.Parameters
	if strings.TrimSpace(cfg.ProjectParameters) != "" {
		params = cfg.ProjectParameters
	}
	args = append(args, strings.Fields(params)...)

	return append(args, target)
}
