package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"protodata-gen/internal/schema"
)

var (
	descriptorFile string
	protoFiles     []string
	includeDirs    []string
)

// addSchemaFlags регистрирует общие флаги источника схемы.
func addSchemaFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&descriptorFile, "descriptor", "", "файл FileDescriptorSet (результат protoc --descriptor_set_out)")
	cmd.Flags().StringArrayVar(&protoFiles, "proto", nil, "proto файл для компиляции внешним protoc (можно несколько)")
	cmd.Flags().StringArrayVar(&includeDirs, "include", nil, "директория импортов для protoc (можно несколько)")
}

// loadSchema строит набор дескрипторов из флагов: готовый descriptor set
// либо компиляция proto файлов внешним protoc.
func loadSchema() (*schema.Set, error) {
	switch {
	case descriptorFile != "":
		return schema.LoadFile(descriptorFile)

	case len(protoFiles) > 0:
		protocPath := ""
		includes := includeDirs
		if appConfig.Protoc != nil {
			protocPath = appConfig.Protoc.Path
			includes = append(includes, appConfig.Protoc.Includes...)
		}
		data, err := schema.Compile(protocPath, protoFiles, includes, logger)
		if err != nil {
			return nil, fmt.Errorf("schema.Compile: %w", err)
		}
		return schema.Load(data)

	default:
		return nil, fmt.Errorf("either --descriptor or --proto is required")
	}
}

// logSchemaLoaded пишет отладочную запись об источнике схемы.
func logSchemaLoaded() {
	logger.Debug("schema loaded",
		zap.String("descriptor", descriptorFile),
		zap.Strings("proto", protoFiles))
}
