package util

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lintang-b-s/navigatorx-mld/pkg"
	"github.com/spf13/viper"
)

func ReadConfig() error {
	SetConfigDefaults()
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// defaults + env are enough to run the engine
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

// SetConfigDefaults. compiled-in defaults for every key the engine reads
func SetConfigDefaults() {
	viper.SetDefault("OVERLAP_FACTOR", pkg.OVERLAP_FACTOR)
	viper.SetDefault("MAX_STRETCH", pkg.MAX_STRETCH)
	viper.SetDefault("MAX_OVERLAP", pkg.MAX_OVERLAP)
	viper.SetDefault("MAX_ALTERNATIVES", pkg.MAX_ALTERNATIVES)
	viper.SetDefault("MAX_ALTERNATIVE_SIMILARITY", pkg.MAX_ALTERNATIVE_SIMILARITY)
	viper.SetDefault("SNAP_RADIUS_KM", pkg.SNAP_RADIUS_KM)
	viper.SetDefault("GRAPH_FILE", "./data/map.graph")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", 10*time.Second)
	viper.SetDefault("API_READ_TIMEOUT", 10*time.Second)
	viper.SetDefault("API_WRITE_TIMEOUT", 20*time.Second)
	viper.SetDefault("API_IDLE_TIMEOUT", 60*time.Second)
	viper.SetDefault("RATE_LIMIT_RPS", 50.0)
	viper.SetDefault("RATE_LIMIT_BURST", 100)
}
