package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	OpenAI        OpenAIConfig        `mapstructure:"openai"`
	OpenSubtitles OpenSubtitlesConfig `mapstructure:"opensubtitles"`
	TMDB          TMDBConfig          `mapstructure:"tmdb"`
	Audio         AudioConfig         `mapstructure:"audio"`
	Pipeline      PipelineConfig      `mapstructure:"pipeline"`
	Templates     TemplatesConfig     `mapstructure:"templates"`
	Outputs       OutputsConfig       `mapstructure:"outputs"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	CORS            CORSConfig    `mapstructure:"cors"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver          string            `mapstructure:"driver" validate:"oneof=mysql sqlite"`
	Path            string            `mapstructure:"path" validate:"required_if=Driver sqlite"`
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

// RedisConfig configures the optional TTL script cache. An empty address disables it.
type RedisConfig struct {
	Addr      string        `mapstructure:"addr"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	ScriptTTL time.Duration `mapstructure:"script_ttl"`
}

type OpenAIConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
	TTSModel string `mapstructure:"tts_model"`
	TTSVoice string `mapstructure:"tts_voice"`
}

type OpenSubtitlesConfig struct {
	APIKey    string `mapstructure:"api_key"`
	BaseURL   string `mapstructure:"base_url" validate:"url"`
	UserAgent string `mapstructure:"user_agent"`
}

type TMDBConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url" validate:"url"`
}

type AudioConfig struct {
	Workers      int                `mapstructure:"workers" validate:"min=1,max=10"`
	Timeout      time.Duration      `mapstructure:"timeout"`
	MaxKeyLength int                `mapstructure:"max_key_length" validate:"min=8"`
	FFmpegPath   string             `mapstructure:"ffmpeg_path"`
	Bitrate      string             `mapstructure:"bitrate"`
	Storage      AudioStorageConfig `mapstructure:"storage"`
}

type AudioStorageConfig struct {
	Type          string `mapstructure:"type" validate:"oneof=local http"`
	Directory     string `mapstructure:"directory" validate:"required_if=Type local"`
	Endpoint      string `mapstructure:"endpoint" validate:"required_if=Type http"`
	Bucket        string `mapstructure:"bucket"`
	PublicBaseURL string `mapstructure:"public_base_url" validate:"required"`
}

type PipelineConfig struct {
	DefaultLanguage string `mapstructure:"default_language" validate:"required"`
}

type TemplatesConfig struct {
	LessonTemplate string `mapstructure:"lesson_template" validate:"omitempty,file"`
}

type OutputsConfig struct {
	LessonDirectory string `mapstructure:"lesson_directory"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/lessonforge")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", filepath.Join("data", "lessonforge.db"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "lessonforge")
	v.SetDefault("database.username", "user")
	v.SetDefault("redis.script_ttl", 30*24*time.Hour)
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.tts_model", "tts-1")
	v.SetDefault("openai.tts_voice", "alloy")
	v.SetDefault("opensubtitles.base_url", "https://api.opensubtitles.com/api/v1")
	v.SetDefault("opensubtitles.user_agent", "lessonforge v1")
	v.SetDefault("tmdb.base_url", "https://api.themoviedb.org/3")
	v.SetDefault("audio.workers", 10)
	v.SetDefault("audio.timeout", 5*time.Minute)
	v.SetDefault("audio.max_key_length", 100)
	v.SetDefault("audio.ffmpeg_path", "ffmpeg")
	v.SetDefault("audio.bitrate", "64k")
	v.SetDefault("audio.storage.type", "local")
	v.SetDefault("audio.storage.directory", filepath.Join("data", "audio"))
	v.SetDefault("audio.storage.public_base_url", "http://localhost:8080/audio")
	v.SetDefault("pipeline.default_language", "en")
	// Template is optional - if not specified, will use embedded fallback template
	v.SetDefault("templates.lesson_template", "")
	v.SetDefault("outputs.lesson_directory", filepath.Join("outputs", "lessons"))

	// Secrets are bound to environment variables only (not from config file)
	envBindings := map[string]string{
		"openai.api_key":        "OPENAI_API_KEY",
		"openai.model":          "OPENAI_MODEL",
		"opensubtitles.api_key": "OPENSUBTITLES_API_KEY",
		"tmdb.api_key":          "TMDB_API_KEY",
		"database.password":     "DB_PASSWORD",
		"redis.password":        "REDIS_PASSWORD",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
