// Package config загружает конфигурацию генератора тестовых данных.
//
// Файл читается через viper, значения вида ${VAR:-default} раскрываются
// из переменных окружения до размаршаливания.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// envRe находит подстановки вида ${VAR:-default}.
var envRe = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvWithDefaults раскрывает переменные окружения с поддержкой
// значений по умолчанию в формате ${VAR:-default}.
func expandEnvWithDefaults(s string) string {
	return envRe.ReplaceAllStringFunc(s, func(match string) string {
		matches := envRe.FindStringSubmatch(match)
		if len(matches) < 2 {
			return match
		}

		value := os.Getenv(matches[1])
		if value == "" && len(matches) > 2 {
			return matches[2]
		}
		return value
	})
}

// InitConfig читает конфигурационный файл и возвращает экземпляр
// конфигурации произвольного типа.
func InitConfig[C any](configFile string) (*C, error) {
	v := viper.New()
	ext := strings.TrimLeft(filepath.Ext(configFile), ".")

	v.SetConfigFile(configFile)
	v.SetConfigType(ext)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig: %w", err)
	}

	// Подстановки окружения раскрываются по всем ключам; раскрытое
	// значение приводится к bool или int, если выглядит соответствующе.
	for _, k := range v.AllKeys() {
		value := v.GetString(k)
		if value == "" {
			continue
		}
		expanded := expandEnvWithDefaults(value)

		if expanded == "true" || expanded == "false" {
			boolValue, _ := strconv.ParseBool(expanded)
			v.Set(k, boolValue)
		} else if intValue, err := strconv.Atoi(expanded); err == nil {
			v.Set(k, intValue)
		} else {
			v.Set(k, expanded)
		}
	}

	cfg := new(C)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("v.Unmarshal: %w", err)
	}

	return cfg, nil
}
