package cmd

import (
	"errors"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/26sneakysnake/Career-Compass/internal/catalog"
	"github.com/26sneakysnake/Career-Compass/internal/logger"
	"github.com/26sneakysnake/Career-Compass/internal/recommend"
	"github.com/26sneakysnake/Career-Compass/internal/server"
)

const (
	app       = "career-compass"
	envPrefix = "CAREER_COMPASS"
)

type Config struct {
	Data   catalog.Sources `mapstructure:"data"`
	Output *OutputConfig   `mapstructure:"output"`
	Server server.Config   `mapstructure:"server"`
	Coach  *CoachConfig    `mapstructure:"coach"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
}

type CoachConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Model        string `mapstructure:"model"`
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "career-compass ranks the career paths open to an employee and suggests trainings for the gaps",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is career-compass.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("employees", "", "employees table (csv)")
	rootCmd.PersistentFlags().String("career-paths", "", "career paths table (csv)")
	rootCmd.PersistentFlags().String("trainings", "", "trainings table (csv)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("data.employees", rootCmd.PersistentFlags().Lookup("employees"))
	viper.BindPFlag("data.career-paths", rootCmd.PersistentFlags().Lookup("career-paths"))
	viper.BindPFlag("data.trainings", rootCmd.PersistentFlags().Lookup("trainings"))

	setDefaults(viper.GetViper())
	bindEnv(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.employees", "employee_data.csv")
	v.SetDefault("data.career-paths", "career_paths.csv")
	v.SetDefault("data.trainings", "trainings.csv")
	v.SetDefault("output.format", "text")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.rate-limit", 100)
	v.SetDefault("server.shutdown-timeout", "10s")
	v.SetDefault("server.cors-origins", []string{})
	v.SetDefault("coach.enabled", false)
	v.SetDefault("coach.model", "gemini-2.5-flash")
	v.SetDefault("coach.api-key", "")
	v.SetDefault("coach.api-key-file", "")
	v.SetDefault("coach.max-log-length", 200)
}

// bindEnv maps every known key to CAREER_COMPASS_<KEY>, e.g.
// server.rate-limit to CAREER_COMPASS_SERVER_RATE_LIMIT.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

func initConfig() {
	// A missing .env is fine.
	_ = godotenv.Load()

	if err := readConfig(viper.GetViper(), cfgFile); err != nil {
		// We can't proceed if the config file parsed with error.
		log.Fatal(err)
	}
}

// readConfig reads file, or the default config file when file is empty. Only
// an explicitly requested file has to exist.
func readConfig(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
		return v.ReadInConfig()
	}

	v.AddConfigPath(".")
	v.SetConfigName(app)
	v.SetConfigType("yaml")

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}

	return err
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		return nil, errors.New("config is empty")
	}
	if config.Output == nil {
		config.Output = &OutputConfig{}
	}
	if config.Coach == nil {
		config.Coach = &CoachConfig{}
	}

	return config, nil
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.GetViper())
}

// setup builds the logger and config every command starts with.
func setup() (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Debug("starting with config",
		zap.Any("data", config.Data),
		zap.String("output_format", config.Output.Format),
		zap.Bool("coach_enabled", config.Coach.Enabled),
	)

	return logger, config
}

func loadEngine(config *Config, logger *zap.Logger) *recommend.Engine {
	engine, err := recommend.Load(config.Data, logger)
	if err != nil {
		logger.Fatal("loading tables",
			zap.Error(err),
			zap.String("hint", "set data.employees, data.career-paths and data.trainings or the matching flags"),
		)
	}

	return engine
}
