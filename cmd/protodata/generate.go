package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"protodata-gen/internal/generator"
	"protodata-gen/internal/options"
	"protodata-gen/internal/record"
	"protodata-gen/internal/wire"
)

var (
	genMessage     string
	genSeed        int64
	genSeedSet     bool
	genInvalid     bool
	genField       string
	genRule        string
	genOptionsFile string
	genFormat      string
)

func init() {
	addSchemaFlags(generateCmd)
	generateCmd.Flags().StringVar(&genMessage, "message", "", "полное имя сообщения")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "seed воспроизводимой генерации")
	generateCmd.Flags().BoolVar(&genInvalid, "invalid", false, "нарушить одно правило вместо валидной генерации")
	generateCmd.Flags().StringVar(&genField, "field", "", "поле для нарушения (пустое значит случайный выбор)")
	generateCmd.Flags().StringVar(&genRule, "rule", "", "правило для нарушения (пустое значит случайный выбор)")
	generateCmd.Flags().StringVar(&genOptionsFile, "options", "", "файл подсказок генерации")
	generateCmd.Flags().StringVar(&genFormat, "format", "hex", "формат вывода: hex, go, debug, raw")
	generateCmd.MarkFlagRequired("message")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Синтезировать запись сообщения и закодировать ее в wire формат",
	RunE: func(cmd *cobra.Command, args []string) error {
		genSeedSet = cmd.Flags().Changed("seed")

		set, err := loadSchema()
		if err != nil {
			return err
		}
		logSchemaLoaded()

		overlay, err := loadOverlay()
		if err != nil {
			return err
		}

		gen := generator.New(set, generator.WithOverlay(overlay))

		var seed []int64
		if genSeedSet {
			seed = []int64{genSeed}
		}

		var rec *record.Record
		if genInvalid {
			var violation *generator.Violation
			rec, violation, err = gen.GenerateInvalid(genMessage, genField, genRule, seed...)
			if err != nil {
				return err
			}
			logger.Info("violated rule",
				zap.String("field", violation.Field),
				zap.String("rule", violation.Rule))
		} else {
			rec, err = gen.GenerateValid(genMessage, seed...)
			if err != nil {
				return err
			}
		}

		data, err := wire.EncodeRecord(set, genMessage, rec)
		if err != nil {
			return err
		}
		return writeOutput(data, genFormat)
	},
}

// loadOverlay читает файл подсказок: флаг важнее конфига.
func loadOverlay() (*options.Overlay, error) {
	path := genOptionsFile
	if path == "" && appConfig.Generate != nil {
		path = appConfig.Generate.OptionsFile
	}
	if path == "" {
		return nil, nil
	}
	return options.ParseFile(path)
}

// writeOutput печатает закодированные байты в выбранном формате.
func writeOutput(data []byte, format string) error {
	switch format {
	case "hex":
		fmt.Println(wire.Hex(data))
	case "go":
		fmt.Println(wire.GoLiteral(data))
	case "debug":
		fmt.Print(wire.DebugText(data))
	case "raw":
		if _, err := os.Stdout.Write(data); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return nil
}
