package util

import (
	"fmt"

	"github.com/spf13/viper"
)

// ReadConfig. read ./data/config.yaml (or config.json, etc.) into viper
func ReadConfig() error {
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.AddConfigPath(".")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
