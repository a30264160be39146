package config

// ConfigLogger настройки логирования
type ConfigLogger struct {
	Level string `mapstructure:"level"`
}

// ConfigProtoc настройки вызова внешнего компилятора схем
type ConfigProtoc struct {
	Path     string   `mapstructure:"path"`
	Includes []string `mapstructure:"includes"`
}

// ConfigGenerate настройки генерации по умолчанию
type ConfigGenerate struct {
	OptionsFile string `mapstructure:"options_file"`
	Format      string `mapstructure:"format"`
}

// Config основная структура конфигурации
type Config struct {
	Logger   *ConfigLogger   `mapstructure:"logger"`
	Protoc   *ConfigProtoc   `mapstructure:"protoc"`
	Generate *ConfigGenerate `mapstructure:"generate"`
}
