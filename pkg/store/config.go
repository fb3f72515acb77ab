package store

import (
	"log"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config says where durable state lives on disk.
type Config interface {
	BasePath() string
}

// LoadConfig resolves the storage base path from a .flashback config file,
// FLASHBACK_* environment variables, or the default under the home directory.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.flashback.db")
	viper.SetConfigName(".flashback") // .yaml is implicit
	viper.SetEnvPrefix("FLASHBACK")
	viper.AutomaticEnv()

	if override := os.Getenv("FLASHBACK_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("error reading config file: %v", err)
			return nil, err
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, err
	}

	return &fileConfig{Path: path}, nil
}

type fileConfig struct {
	Path string `json:"path"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}
