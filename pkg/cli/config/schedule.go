package config

import (
	"os"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/taskbeacon/taskbeacon/pkg/service/worker"
	"github.com/urfave/cli/v3"
)

// Schedule holds CLI flags for the scan schedules. Defaults match the
// production schedule: overdue scan daily at 09:00, cleanup weekly on
// Sunday midnight, both in the configured time zone.
type Schedule struct {
	timezone   string
	configPath string
}

// scheduleFile is the optional TOML override for scan schedules
type scheduleFile struct {
	Timezone string       `toml:"timezone"`
	Overdue  scheduleSpec `toml:"overdue"`
	Cleanup  scheduleSpec `toml:"cleanup"`
}

type scheduleSpec struct {
	Hour    *int   `toml:"hour"`
	Minute  *int   `toml:"minute"`
	Weekday string `toml:"weekday"`
}

// Validate checks if the schedule spec is valid
func (s *scheduleSpec) Validate() error {
	if s.Hour != nil && (*s.Hour < 0 || *s.Hour > 23) {
		return goerr.New("schedule hour must be between 0 and 23", goerr.V("hour", *s.Hour))
	}
	if s.Minute != nil && (*s.Minute < 0 || *s.Minute > 59) {
		return goerr.New("schedule minute must be between 0 and 59", goerr.V("minute", *s.Minute))
	}
	if s.Weekday != "" {
		if _, err := parseWeekday(s.Weekday); err != nil {
			return err
		}
	}
	return nil
}

func parseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), s) {
			return d, nil
		}
	}
	return 0, goerr.New("invalid weekday", goerr.V("weekday", s))
}

// Flags returns CLI flags for schedule configuration
func (x *Schedule) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "timezone",
			Usage:       "Time zone for scheduled scans",
			Category:    "Schedule",
			Value:       "Asia/Kolkata",
			Sources:     cli.EnvVars("TASKBEACON_TIMEZONE"),
			Destination: &x.timezone,
		},
		&cli.StringFlag{
			Name:        "schedule-config",
			Usage:       "Optional TOML file overriding the scan schedules",
			Category:    "Schedule",
			Sources:     cli.EnvVars("TASKBEACON_SCHEDULE_CONFIG"),
			Destination: &x.configPath,
		},
	}
}

// Configure resolves the overdue-scan and cleanup schedules, applying the
// TOML override file when one is given.
func (x *Schedule) Configure() (overdue, cleanup worker.Schedule, err error) {
	file := scheduleFile{}
	if x.configPath != "" {
		data, err := os.ReadFile(x.configPath)
		if err != nil {
			return overdue, cleanup, goerr.Wrap(err, "failed to read schedule config", goerr.V("path", x.configPath))
		}
		if err := toml.Unmarshal(data, &file); err != nil {
			return overdue, cleanup, goerr.Wrap(err, "failed to parse schedule config", goerr.V("path", x.configPath))
		}
		if err := file.Overdue.Validate(); err != nil {
			return overdue, cleanup, goerr.Wrap(err, "invalid overdue schedule")
		}
		if err := file.Cleanup.Validate(); err != nil {
			return overdue, cleanup, goerr.Wrap(err, "invalid cleanup schedule")
		}
	}

	tz := x.timezone
	if file.Timezone != "" {
		tz = file.Timezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return overdue, cleanup, goerr.Wrap(err, "failed to load time zone", goerr.V("timezone", tz))
	}

	overdue = worker.Schedule{Hour: 9, Location: loc}
	if file.Overdue.Hour != nil {
		overdue.Hour = *file.Overdue.Hour
	}
	if file.Overdue.Minute != nil {
		overdue.Minute = *file.Overdue.Minute
	}
	if file.Overdue.Weekday != "" {
		wd, _ := parseWeekday(file.Overdue.Weekday)
		overdue.Weekday = &wd
	}

	sunday := time.Sunday
	cleanup = worker.Schedule{Hour: 0, Weekday: &sunday, Location: loc}
	if file.Cleanup.Hour != nil {
		cleanup.Hour = *file.Cleanup.Hour
	}
	if file.Cleanup.Minute != nil {
		cleanup.Minute = *file.Cleanup.Minute
	}
	if file.Cleanup.Weekday != "" {
		wd, _ := parseWeekday(file.Cleanup.Weekday)
		cleanup.Weekday = &wd
	}

	return overdue, cleanup, nil
}
