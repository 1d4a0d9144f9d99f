package app

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/councilvotes/pkg/constants"
	"github.com/agentstation/councilvotes/pkg/errors"
)

// Config holds the application configuration loaded from the config file,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// ConfigFile is the config file in use, if any.
	ConfigFile string

	// Run settings
	InputDir       string
	OutputDir      string
	InputGlob      string
	TopicsFile     string
	TruncateLength int
	Summary        bool

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (applied later by the root command)
//  2. COUNCILVOTES_* environment variables
//  3. .env and .env.local files
//  4. Config file (explicit path, or .councilvotes.yaml in $HOME or the working directory)
//  5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("input_glob", constants.DefaultInputGlob)
	v.SetDefault("truncate_length", constants.DefaultTruncateLength)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")

	if configFile == "" {
		configFile = v.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "cannot read "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigName)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !stderrors.As(err, &notFound) {
				return nil, errors.NewConfigError("config", "cannot parse "+constants.ConfigName+".yaml", err)
			}
		}
	}

	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color") || os.Getenv("NO_COLOR") != "",
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		InputDir:       v.GetString("input_dir"),
		OutputDir:      v.GetString("output_dir"),
		InputGlob:      v.GetString("input_glob"),
		TopicsFile:     v.GetString("topics_file"),
		TruncateLength: v.GetInt("truncate_length"),
		Summary:        v.GetBool("summary"),

		LogLevel:  firstNonEmpty(v.GetString("log_level"), os.Getenv("LOG_LEVEL")),
		LogFormat: firstNonEmpty(os.Getenv("LOG_FORMAT"), v.GetString("log_format")),
		LogOutput: firstNonEmpty(os.Getenv("LOG_OUTPUT"), v.GetString("log_output")),
	}, nil
}

// loadEnvFiles loads environment variables from .env files. Variables that
// are already set win.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
