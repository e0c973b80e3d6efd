package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Playlist      string `mapstructure:"playlist"`
	Output        string `mapstructure:"output"`
	Player        string `mapstructure:"player"`
	UserAgent     string `mapstructure:"user_agent"`
	ColorName     string `mapstructure:"color_name"`
	ColorGroup    string `mapstructure:"color_group"`
	ColorURL      string `mapstructure:"color_url"`
	ColorBorder   string `mapstructure:"color_border"`
	ColorCursor   string `mapstructure:"color_cursor"`
	ColorSelected string `mapstructure:"color_selected"`
	ColorDim      string `mapstructure:"color_dim"`
	ColumnGap     int    `mapstructure:"column_gap"`
	ColumnName    int    `mapstructure:"column_name"`
	ColumnGroup   int    `mapstructure:"column_group"`
	ColumnURL     int    `mapstructure:"column_url"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("playlist", "")
	viper.SetDefault("output", "print")
	viper.SetDefault("player", "")
	viper.SetDefault("user_agent", "")
	viper.SetDefault("color_name", "36")  // Cyan
	viper.SetDefault("color_group", "33") // Yellow
	viper.SetDefault("color_url", "90")   // Gray
	viper.SetDefault("color_border", "240")
	viper.SetDefault("color_cursor", "212")
	viper.SetDefault("color_selected", "236")
	viper.SetDefault("color_dim", "241")
	viper.SetDefault("column_gap", 4)   // Spaces between columns
	viper.SetDefault("column_name", 40) // Max channel-name width
	viper.SetDefault("column_group", 24)
	viper.SetDefault("column_url", 60)

	viper.SetConfigName("m3u8-parser")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "m3u8-parser"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("M3U8PARSER")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// GetPlaylist returns the configured playlist path or URL with tilde expansion
func GetPlaylist() string {
	return expandTilde(viper.GetString("playlist"))
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetOutput returns the output mode
func GetOutput() string {
	return viper.GetString("output")
}

// GetPlayer returns the configured media player command
func GetPlayer() string {
	return viper.GetString("player")
}

// GetUserAgent returns the default user agent for entries without one
func GetUserAgent() string {
	return viper.GetString("user_agent")
}

// GetColorName returns ANSI color code for channel names
func GetColorName() string {
	return viper.GetString("color_name")
}

// GetColorGroup returns ANSI color code for group titles
func GetColorGroup() string {
	return viper.GetString("color_group")
}

// GetColorURL returns ANSI color code for locator URLs
func GetColorURL() string {
	return viper.GetString("color_url")
}

// GetColorBorder returns the border color
func GetColorBorder() string {
	return viper.GetString("color_border")
}

// GetColorCursor returns the cursor color
func GetColorCursor() string {
	return viper.GetString("color_cursor")
}

// GetColorSelected returns the selection background color
func GetColorSelected() string {
	return viper.GetString("color_selected")
}

// GetColorDim returns the dimmed-text color
func GetColorDim() string {
	return viper.GetString("color_dim")
}

// GetColumnGap returns spacing between columns
func GetColumnGap() int {
	return viper.GetInt("column_gap")
}

// GetColumnName returns max channel-name column width
func GetColumnName() int {
	return viper.GetInt("column_name")
}

// GetColumnGroup returns max group column width
func GetColumnGroup() int {
	return viper.GetInt("column_group")
}

// GetColumnURL returns max URL column width
func GetColumnURL() int {
	return viper.GetInt("column_url")
}

// SetOutput sets output mode at runtime
func SetOutput(mode string) {
	viper.Set("output", mode)
	C.Output = mode
}

// SetPlaylist sets the playlist source at runtime
func SetPlaylist(source string) {
	viper.Set("playlist", source)
	C.Playlist = source
}
