package config

// GetDefaults returns the default configuration values as koanf keys.
// The label set mirrors the standard Conventional Commits vocabulary.
func GetDefaults() map[string]any {
	return map[string]any{
		"format": "markdown",
		"output": "CHANGELOG.md",
		"labels": map[string]string{
			"feat":     "Features",
			"fix":      "Bug Fixes",
			"refactor": "Refactors",
			"perf":     "Performance Improvements",
			"docs":     "Documentation",
			"style":    "Styles",
			"test":     "Tests",
			"build":    "Build",
			"ci":       "CI",
			"chore":    "Chores",
		},
		"types":          map[string]string{},
		"ignore_types":   []string{},
		"breaking_label": "Breaking Changes",
		"parallelism":    1,
	}
}
