// Package config loads the optional YAML configuration file. Flags set
// explicitly on the command line take precedence over file values; the
// file in turn overrides the built-in defaults.
package config

import (
	"fmt"
	"os"

	"github.com/millerntor/presale-calendar/internal/calendar"
	"github.com/millerntor/presale-calendar/internal/feed"
	"gopkg.in/yaml.v3"
)

// CalendarConfig overrides the display metadata of the generated calendar.
type CalendarConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Config is the full configuration of a run.
type Config struct {
	FeedURL  string         `yaml:"feed_url"`
	Timezone string         `yaml:"timezone"`
	LogLevel string         `yaml:"log_level"`
	Output   string         `yaml:"output"`
	Calendar CalendarConfig `yaml:"calendar"`
}

// Default returns the built-in configuration: the club feed, Europe/Berlin,
// info logging, calendar bytes to stdout.
func Default() Config {
	return Config{
		FeedURL:  feed.DefaultFeedURL,
		Timezone: "Europe/Berlin",
		LogLevel: "info",
		Output:   "-",
		Calendar: CalendarConfig{
			Name:        calendar.DefaultName,
			Description: calendar.DefaultDescription,
		},
	}
}

// Load reads a YAML config file and merges it over the defaults. Empty
// fields in the file keep their default values.
func Load(path string) (Config, error) {
	c := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("reading config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(b, &file); err != nil {
		return c, fmt.Errorf("parsing config: %w", err)
	}

	if file.FeedURL != "" {
		c.FeedURL = file.FeedURL
	}
	if file.Timezone != "" {
		c.Timezone = file.Timezone
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
	}
	if file.Output != "" {
		c.Output = file.Output
	}
	if file.Calendar.Name != "" {
		c.Calendar.Name = file.Calendar.Name
	}
	if file.Calendar.Description != "" {
		c.Calendar.Description = file.Calendar.Description
	}

	return c, nil
}
