package champfutbot

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/champfut/champfutbot/champfutbot/database"
	"github.com/disgoorg/snowflake/v2"
	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log    LogConfig         `toml:"log"`
	Bot    BotConfig         `toml:"bot"`
	DB     database.DBConfig `toml:"db"`
	Spaces SpacesConfig      `toml:"spaces"`
}

type BotConfig struct {
	DevGuilds    []snowflake.ID `toml:"dev_guilds"`
	Token        string         `toml:"token"`
	AdminIDs     []snowflake.ID `toml:"admin_ids"`
	LogChannelID snowflake.ID   `toml:"log_channel_id"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

// SpacesConfig holds the DigitalOcean Spaces credentials used for card
// images.
type SpacesConfig struct {
	Key      string `toml:"key"`
	Secret   string `toml:"secret"`
	Region   string `toml:"region"`
	Bucket   string `toml:"bucket"`
	CardRoot string `toml:"cardroot"`
}

// IsAdmin reports whether the user is in the configured admin list.
func (c BotConfig) IsAdmin(userID snowflake.ID) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
