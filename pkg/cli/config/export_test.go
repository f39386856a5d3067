package config

// NewScheduleForTest builds a Schedule bypassing flag parsing
func NewScheduleForTest(timezone, configPath string) *Schedule {
	return &Schedule{timezone: timezone, configPath: configPath}
}

// ParseWeekday is exported for testing
var ParseWeekday = parseWeekday
