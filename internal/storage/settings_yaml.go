package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"kiosk/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

const (
	minTextSize = 12
	maxTextSize = 200
)

type yamlSettings struct {
	Fullscreen *bool   `yaml:"fullscreen"`
	TextSize   float32 `yaml:"text_size"`
	LogLevel   string  `yaml:"log_level"`
}

// LoadSettings reads kiosk preferences from the user config directory.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := ResolveConfigPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// LoadSettingsFile reads kiosk preferences from configPath.
func LoadSettingsFile(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// ResolveConfigPath returns where the settings file for appName lives.
func ResolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.Fullscreen != nil {
		settings.Fullscreen = *fileData.Fullscreen
	}
	if fileData.TextSize >= minTextSize && fileData.TextSize <= maxTextSize {
		settings.TextSize = fileData.TextSize
	}
	if fileData.LogLevel != "" {
		settings.LogLevel = fileData.LogLevel
	}
}
