package config

const (
	defaultDataDir = "~/.local/share/tally"
	defaultLogDir  = "~/.local/share/tally/logs"

	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	// Reference matching policy. The exact numbers are tunable parameters,
	// not load-bearing business rules.
	defaultTitleWeight       = 60
	defaultDurationWeight    = 30
	defaultDateWeight        = 10
	defaultMinScore          = 40
	defaultAutoApproveScore  = 90
	defaultDurationTolerance = 2
	defaultDateTolerance     = 2
	defaultSubstringGuard    = 250
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Matching: Matching{
			TitleWeight:              defaultTitleWeight,
			DurationWeight:           defaultDurationWeight,
			DateWeight:               defaultDateWeight,
			MinScore:                 defaultMinScore,
			AutoApproveScore:         defaultAutoApproveScore,
			DurationToleranceSeconds: defaultDurationTolerance,
			DateToleranceDays:        defaultDateTolerance,
			SubstringGuard:           defaultSubstringGuard,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
