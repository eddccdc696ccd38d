package providers

import (
	"chatstat/internal/structures"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var envFileNames = []string{".env.local", ".env"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("sources.namesPath", "names.txt")
	v.SetDefault("sources.statsPath", "message_stats.txt")
	v.SetDefault("webServer.host", "127.0.0.1")
	v.SetDefault("webServer.port", 8090)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", "logs")
	v.SetDefault("chart.outputDir", ".")
	v.SetDefault("chart.theme", "westeros")
	v.SetDefault("chart.width", 1200)
	v.SetDefault("chart.height", 600)
	v.SetDefault("schedule.interval", 0)
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.size", 0)
	v.SetDefault("metrics.enabled", false)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	// Missing .env files are fine; existing env vars win.
	for _, name := range envFileNames {
		_ = godotenv.Load(name)
	}

	v := viper.New()
	setDefaults(v)

	filename := filepath.Base(flags.ConfigPath)
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		ext = "yaml"
	}
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType(ext)

	v.BindEnv("sources.exportPath", "CHATSTAT_EXPORT_PATH")
	v.BindEnv("sources.namesPath", "CHATSTAT_NAMES_PATH")
	v.BindEnv("sources.statsPath", "CHATSTAT_STATS_PATH")
	v.BindEnv("logger.level", "CHATSTAT_LOG_LEVEL")
	v.BindEnv("schedule.interval", "CHATSTAT_REINGEST_INTERVAL")
	v.BindEnv("cache.enabled", "CHATSTAT_CACHE_ENABLED")
	v.BindEnv("cache.size", "CHATSTAT_CACHE_SIZE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	if conf.Sources.ExportPath == "" {
		conf.Sources.ExportPath = v.GetString("telegram_export_path")
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "ChatStat"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
