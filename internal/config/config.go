package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Remote RemoteConfig
	Log    LogConfig
	Notify NotifyConfig
	Map    MapConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// RemoteConfig points at the authoritative puntos API.
type RemoteConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

type LogConfig struct {
	Level string
}

type NotifyConfig struct {
	TTL time.Duration
}

// MapConfig seeds the browser page: base layer and initial viewport.
type MapConfig struct {
	TileURL     string
	Attribution string
	CenterLat   float64
	CenterLng   float64
	Zoom        int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Running without a .env file is fine, the environment and the
		// defaults below cover everything.
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Remote: RemoteConfig{
			BaseURL:        viper.GetString("PUNTOS_API_URL"),
			RequestTimeout: time.Duration(viper.GetInt("PUNTOS_REQUEST_TIMEOUT")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Notify: NotifyConfig{
			TTL: time.Duration(viper.GetInt("NOTIFY_TTL_MS")) * time.Millisecond,
		},
		Map: MapConfig{
			TileURL:     viper.GetString("MAP_TILE_URL"),
			Attribution: viper.GetString("MAP_ATTRIBUTION"),
			CenterLat:   viper.GetFloat64("MAP_CENTER_LAT"),
			CenterLng:   viper.GetFloat64("MAP_CENTER_LNG"),
			Zoom:        viper.GetInt("MAP_ZOOM"),
		},
	}

	// Set default values if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Remote.BaseURL == "" {
		cfg.Remote.BaseURL = "http://localhost:8000/api/puntos/"
	}
	if cfg.Remote.RequestTimeout == 0 {
		cfg.Remote.RequestTimeout = 10 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Notify.TTL == 0 {
		cfg.Notify.TTL = 3 * time.Second
	}
	if cfg.Map.TileURL == "" {
		cfg.Map.TileURL = "https://{s}.basemaps.cartocdn.com/rastertiles/voyager/{z}/{x}/{y}{r}.png"
	}
	if cfg.Map.Attribution == "" {
		cfg.Map.Attribution = "© CARTO"
	}
	if cfg.Map.CenterLat == 0 && cfg.Map.CenterLng == 0 {
		// Valdivia
		cfg.Map.CenterLat = -39.8142
		cfg.Map.CenterLng = -73.2459
	}
	if cfg.Map.Zoom == 0 {
		cfg.Map.Zoom = 13
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
