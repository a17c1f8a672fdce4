package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"lathecam/internal/lathe"
)

// Config holds the defaults taken from the environment.
type Config struct {
	LogLevel  string
	Output    string
	Clearance float64
	Tool      int
	RPM       int
}

// LoadDotEnv reads variables from path into the environment. A missing file is
// not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Load reads the configuration from environment variables, falling back to
// defaults for anything unset or unparsable.
func Load() *Config {
	logLevel := os.Getenv("LATHECAM_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	output := os.Getenv("LATHECAM_OUTPUT")
	if output == "" {
		output = "output.ngc"
	}

	clearance, err := strconv.ParseFloat(os.Getenv("LATHECAM_CLEARANCE"), 64)
	if err != nil || clearance <= 0 {
		clearance = lathe.DefaultClearance
	}

	tool, err := strconv.Atoi(os.Getenv("LATHECAM_TOOL"))
	if err != nil || tool < 0 {
		tool = 0
	}

	rpm, err := strconv.Atoi(os.Getenv("LATHECAM_RPM"))
	if err != nil || rpm < 0 {
		rpm = 0
	}

	return &Config{
		LogLevel:  logLevel,
		Output:    output,
		Clearance: clearance,
		Tool:      tool,
		RPM:       rpm,
	}
}

// Defaults returns a job file holding the environment defaults.
func (c *Config) Defaults() *JobFile {
	return &JobFile{
		Job: JobSection{
			Operation: lathe.Turning.String(),
			Clearance: c.Clearance,
		},
		Machine: MachineSection{
			RPM:        c.RPM,
			SpindleCW:  true,
			Tool:       c.Tool,
			RadiusMode: true,
		},
	}
}
