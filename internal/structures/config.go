package structures

import "time"

type Sources struct {
	ExportPath string `mapstructure:"exportPath" yaml:"exportPath" validate:"required"`
	NamesPath  string `mapstructure:"namesPath" yaml:"namesPath" validate:"required"`
	StatsPath  string `mapstructure:"statsPath" yaml:"statsPath" validate:"required"`
}

type Server struct {
	Host string `mapstructure:"host" yaml:"host" validate:"required"`
	Port int    `mapstructure:"port" yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `mapstructure:"mode" yaml:"mode" validate:"required|uint"`
	Dir   string `mapstructure:"dir" yaml:"dir" validate:"required"`
}

type ChartConfig struct {
	OutputDir string `mapstructure:"outputDir" yaml:"outputDir" validate:"required"`
	Theme     string `mapstructure:"theme" yaml:"theme"`
	Width     int    `mapstructure:"width" yaml:"width" validate:"min:100"`
	Height    int    `mapstructure:"height" yaml:"height" validate:"min:100"`
}

// ScheduleConfig controls periodic re-ingestion in serve mode. Zero disables it.
type ScheduleConfig struct {
	Interval time.Duration `mapstructure:"interval" yaml:"interval"`
}

type CacheConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	Size    int  `mapstructure:"size" yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	Sources   Sources        `mapstructure:"sources" yaml:"sources"`
	WebServer Server         `mapstructure:"webServer" yaml:"webServer"`
	Logger    LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Chart     ChartConfig    `mapstructure:"chart" yaml:"chart"`
	Schedule  ScheduleConfig `mapstructure:"schedule" yaml:"schedule"`
	Cache     CacheConfig    `mapstructure:"cache" yaml:"cache"`
	Metrics   MetricsConfig  `mapstructure:"metrics" yaml:"metrics"`
}
