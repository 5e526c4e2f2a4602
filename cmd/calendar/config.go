package main

import (
	"fmt"
	"strings"

	"github.com/lomoval/otus-golang/pocketcal/internal/logger"
	internalhttp "github.com/lomoval/otus-golang/pocketcal/internal/server/http"
	"github.com/lomoval/otus-golang/pocketcal/internal/storagebuilder"
	"github.com/spf13/viper"
)

const envConfigPrefix = "$env:"

type CalendarConfig struct {
	// Location is an IANA zone name, "Local" uses the device clock.
	Location      string
	SelectedColor string
}

type Config struct {
	HTTPServer internalhttp.Config
	Logger     logger.Config
	Storage    storagebuilder.Config
	Calendar   CalendarConfig
}

func NewConfig(configFile string) (Config, error) {
	config := Config{}
	v := viper.New()
	v.SetConfigFile(configFile)

	v.SetDefault("httpServer.host", "127.0.0.1")
	v.SetDefault("httpServer.port", "8005")
	v.SetDefault("logger.level", "WARN")
	v.SetDefault("logger.format", "text")
	v.SetDefault("storage.storageType", "file")
	v.SetDefault("storage.file.dir", "./data")
	v.SetDefault("storage.database.driver", "sqlite3")
	v.SetDefault("calendar.location", "Local")

	err := v.ReadInConfig()
	if err != nil {
		return config, fmt.Errorf("failed to read config %q: %w", configFile, err)
	}
	keys := v.AllKeys()
	for _, key := range keys {
		env := v.GetString(key)
		if strings.HasPrefix(env, envConfigPrefix) {
			err := v.BindEnv(key, env[len(envConfigPrefix):])
			if err != nil {
				return Config{}, fmt.Errorf("failed to prepare config: %w", err)
			}
		}
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return config, fmt.Errorf("unable to decode into config struct: %w", err)
	}
	return config, nil
}
