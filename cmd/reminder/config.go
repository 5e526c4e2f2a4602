package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/lomoval/otus-golang/pocketcal/internal/logger"
	"github.com/lomoval/otus-golang/pocketcal/internal/rabbit"
	"github.com/lomoval/otus-golang/pocketcal/internal/storagebuilder"
	"github.com/spf13/viper"
)

const envConfigPrefix = "$env:"

type ReminderConfig struct {
	Interval time.Duration
	Lead     time.Duration
}

type Config struct {
	Logger   logger.Config
	Rabbit   rabbit.Config
	Storage  storagebuilder.Config
	Reminder ReminderConfig
}

func NewConfig(configFile string) (Config, error) {
	config := Config{}
	v := viper.New()
	v.SetConfigFile(configFile)

	v.SetDefault("rabbit.host", "127.0.0.1")
	v.SetDefault("rabbit.port", "5672")
	v.SetDefault("rabbit.user", "user")
	v.SetDefault("rabbit.password", "pass")
	v.SetDefault("rabbit.queue", "calendar.remind")
	v.SetDefault("logger.level", "WARN")
	v.SetDefault("storage.storageType", "file")
	v.SetDefault("storage.file.dir", "./data")
	v.SetDefault("storage.database.driver", "sqlite3")
	v.SetDefault("reminder.interval", "1m")
	v.SetDefault("reminder.lead", "15m")

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
				return config, fmt.Errorf("failed to prepare config: %w", err)
			}
		}
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return config, fmt.Errorf("unable to decode into config struct: %w", err)
	}
	return config, nil
}
