// protodata генерирует тестовые данные для protobuf сообщений по правилам
// валидации из опций дескрипторов.
//
// Подкоманды:
//
//	generate  синтез валидной или невалидной записи и ее кодирование
//	encode    кодирование готовой записи из JSON файла в wire формат
//	checks    эмиссия списка проверок или Go метода Validate
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"protodata-gen/internal/config"
)

var (
	configFile string
	appConfig  *config.Config
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "protodata",
		Short: "Генератор тестовых данных по правилам валидации protobuf",
		Long: `protodata читает скомпилированные дескрипторы protobuf, извлекает
правила валидации из опций полей и синтезирует данные, удовлетворяющие
или целенаправленно нарушающие эти правила.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "путь к конфигурационному файлу")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(checksCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup загружает конфигурацию и строит логгер до выполнения подкоманды.
func setup(cmd *cobra.Command, args []string) error {
	appConfig = &config.Config{}
	if configFile != "" {
		cfg, err := config.InitConfig[config.Config](configFile)
		if err != nil {
			return fmt.Errorf("config.InitConfig: %w", err)
		}
		appConfig = cfg
	}

	level := zapcore.InfoLevel
	if appConfig.Logger != nil && appConfig.Logger.Level != "" {
		if err := level.Set(appConfig.Logger.Level); err != nil {
			return fmt.Errorf("bad log level %q: %w", appConfig.Logger.Level, err)
		}
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	// Вывод данных идет в stdout, журнал уходит в stderr.
	zapCfg.OutputPaths = []string{"stderr"}

	log, err := zapCfg.Build()
	if err != nil {
		return fmt.Errorf("zap build: %w", err)
	}
	logger = log
	return nil
}
