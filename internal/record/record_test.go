package record_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"protodata-gen/internal/record"
)

// TestRecord проверяет упорядоченную запись.
func TestRecord(t *testing.T) {
	rec := record.New()
	rec.Set("a", 1)
	rec.Set("b", 2)
	rec.Set("a", 3)

	assert.Equal(t, []string{"a", "b"}, rec.Fields(), "повторный Set не дублирует ключ")

	v, ok := rec.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	rec.Delete("a")
	assert.Equal(t, []string{"b"}, rec.Fields())
	_, ok = rec.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, rec.Len())
}
