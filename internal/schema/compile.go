package schema

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"
)

// Compile вызывает внешний protoc и возвращает байты FileDescriptorSet.
//
// Вызов блокирующий: функция ждет завершения процесса. Результат
// складывается во временную директорию, которая удаляется на любом пути
// выхода, включая ошибочные.
//
// protocPath задает путь к бинарнику protoc (пустая строка означает поиск
// в PATH), protoFiles перечисляет компилируемые proto файлы, includes
// задает директории для -I.
func Compile(protocPath string, protoFiles, includes []string, log *zap.Logger) ([]byte, error) {
	if len(protoFiles) == 0 {
		return nil, fmt.Errorf("no proto files given")
	}
	if protocPath == "" {
		protocPath = "protoc"
	}
	if log == nil {
		log = zap.NewNop()
	}

	tmpDir, err := os.MkdirTemp("", "protodata-descriptors-*")
	if err != nil {
		return nil, fmt.Errorf("os.MkdirTemp: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	outFile := filepath.Join(tmpDir, "descriptor_set.pb")

	args := []string{
		"--descriptor_set_out=" + outFile,
		// Опции полей содержат расширения словаря правил, поэтому импорты
		// должны попасть в выходной набор.
		"--include_imports",
	}
	for _, inc := range includes {
		args = append(args, "-I", inc)
	}
	args = append(args, protoFiles...)

	log.Debug("invoking protoc",
		zap.String("protoc", protocPath),
		zap.Strings("files", protoFiles))

	cmd := exec.Command(protocPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("protoc failed: %w: %s", err, output)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		return nil, fmt.Errorf("read descriptor set: %w", err)
	}

	log.Debug("protoc finished", zap.Int("descriptor_bytes", len(data)))
	return data, nil
}
