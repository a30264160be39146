package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"protodata-gen/internal/generator"
	"protodata-gen/internal/wire"
)

var (
	encMessage    string
	encRecordFile string
	encFormat     string
)

func init() {
	addSchemaFlags(encodeCmd)
	encodeCmd.Flags().StringVar(&encMessage, "message", "", "полное имя сообщения")
	encodeCmd.Flags().StringVar(&encRecordFile, "record", "", "JSON файл со значениями полей")
	encodeCmd.Flags().StringVar(&encFormat, "format", "hex", "формат вывода: hex, go, debug, raw")
	encodeCmd.MarkFlagRequired("message")
	encodeCmd.MarkFlagRequired("record")
}

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Закодировать готовую запись из JSON файла в wire формат",
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := loadSchema()
		if err != nil {
			return err
		}
		logSchemaLoaded()

		raw, err := os.ReadFile(encRecordFile)
		if err != nil {
			return fmt.Errorf("os.ReadFile: %w", err)
		}

		var values map[string]any
		if err := json.Unmarshal(raw, &values); err != nil {
			return fmt.Errorf("json.Unmarshal record: %w", err)
		}

		rec, err := generator.RecordFromMap(set, encMessage, values)
		if err != nil {
			return err
		}

		data, err := wire.EncodeRecord(set, encMessage, rec)
		if err != nil {
			return err
		}
		return writeOutput(data, encFormat)
	},
}
