package generator_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"protodata-gen/internal/generator"
	"protodata-gen/internal/record"
)

// TestRecordFromMap проверяет построение записи из разобранного JSON:
// порядок объявления, приведение чисел, вложенные словари.
func TestRecordFromMap(t *testing.T) {
	set := personSet(t)

	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "Ivan",
		"age": 30,
		"tags": ["a", "b"],
		"score": 0.5,
		"author": {"name": "Anna"}
	}`), &data))

	rec, err := generator.RecordFromMap(set, "testdata.Person", data)
	require.NoError(t, err)

	// Порядок следует объявлению, не словарю.
	assert.Equal(t, []string{"age", "name", "tags", "score", "author"}, rec.Fields())

	age, _ := rec.Get("age")
	assert.Equal(t, int64(30), age, "JSON число приводится к каноническому типу")

	score, _ := rec.Get("score")
	assert.Equal(t, 0.5, score)

	tags, _ := rec.Get("tags")
	assert.Equal(t, []any{"a", "b"}, tags)

	author, _ := rec.Get("author")
	sub, ok := author.(*record.Record)
	require.True(t, ok, "вложенный словарь становится записью")
	name, _ := sub.Get("name")
	assert.Equal(t, "Anna", name)
}

// TestRecordFromMap_Errors проверяет ошибки несоответствия типов.
func TestRecordFromMap_Errors(t *testing.T) {
	set := personSet(t)

	_, err := generator.RecordFromMap(set, "testdata.Person", map[string]any{"name": []any{"x"}})
	assert.Error(t, err, "список для скалярного поля")

	_, err = generator.RecordFromMap(set, "testdata.Person", map[string]any{"name": 5.0})
	assert.Error(t, err, "число для строкового поля")

	_, err = generator.RecordFromMap(set, "testdata.Person", map[string]any{"age": map[string]any{}})
	assert.Error(t, err, "объект для числового поля")

	_, err = generator.RecordFromMap(set, "testdata.NoSuch", map[string]any{})
	assert.Error(t, err)
}
