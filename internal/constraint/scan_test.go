package constraint

import (
	"reflect"
	"testing"

	"protodata-gen/internal/schema"
	"protodata-gen/internal/wire"
)

// sub оборачивает байты вложенного сообщения в length-delimited поле.
func sub(b []byte, tag int32, payload []byte) []byte {
	b = wire.AppendTag(b, tag, wire.TypeBytes)
	return wire.AppendBytes(b, payload)
}

func varint(b []byte, tag int32, v uint64) []byte {
	b = wire.AppendTag(b, tag, wire.TypeVarint)
	return wire.AppendVarint(b, v)
}

func str(b []byte, tag int32, s string) []byte {
	b = wire.AppendTag(b, tag, wire.TypeBytes)
	return wire.AppendBytes(b, []byte(s))
}

// TestScan_NumericRules проверяет разбор числового rule сообщения без
// типов словаря и канонический порядок результата.
func TestScan_NumericRules(t *testing.T) {
	// Int32Rules{lte: 150, gte: 0} внутри FieldRules{int32: ...}.
	rules := varint(nil, 3, 150) // lte
	rules = varint(rules, 5, 0)  // gte
	opts := sub(nil, extPGVRules, sub(nil, ruleNumInt32, rules))

	got := scanFieldOptions(schema.Field{Name: "age", RawOptions: opts})
	want := []Constraint{
		{"age", RuleLte, int64(150)},
		{"age", RuleGte, int64(0)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("scanFieldOptions() = %v, want %v", got, want)
	}
}

// TestScan_StringRules проверяет разбор строковых правил, включая
// структурный флаг.
func TestScan_StringRules(t *testing.T) {
	rules := varint(nil, 2, 3)       // min_len
	rules = varint(rules, 3, 20)     // max_len
	rules = str(rules, 7, "PREFIX_") // prefix
	rules = varint(rules, 12, 1)     // email
	opts := sub(nil, extBufField, sub(nil, ruleNumString, rules))

	got := scanFieldOptions(schema.Field{Name: "mail", RawOptions: opts})
	want := []Constraint{
		{"mail", RuleMinLen, uint64(3)},
		{"mail", RuleMaxLen, uint64(20)},
		{"mail", RulePrefix, "PREFIX_"},
		{"mail", RuleEmail, nil},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("scanFieldOptions() = %v, want %v", got, want)
	}
}

// TestScan_RepeatedRules проверяет правила repeated поля и раскрытие
// правил элементов.
func TestScan_RepeatedRules(t *testing.T) {
	itemRules := sub(nil, ruleNumString, varint(nil, 2, 1)) // items.string.min_len=1
	rules := varint(nil, 1, 2)                              // min_items
	rules = varint(rules, 2, 4)                             // max_items
	rules = varint(rules, 3, 1)                             // unique
	rules = sub(rules, 4, itemRules)                        // items
	opts := sub(nil, extPGVRules, sub(nil, ruleNumRepeated, rules))

	got := scanFieldOptions(schema.Field{Name: "tags", RawOptions: opts})
	want := []Constraint{
		{"tags", RuleMinItems, uint64(2)},
		{"tags", RuleMaxItems, uint64(4)},
		{"tags", RuleUnique, nil},
		{"tags", RuleMinLen, uint64(1)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("scanFieldOptions() = %v, want %v", got, want)
	}
}

// TestScan_BufRequired проверяет required прямо в FieldRules словаря
// buf.validate.
func TestScan_BufRequired(t *testing.T) {
	opts := sub(nil, extBufField, varint(nil, ruleNumBufRequired, 1))

	got := scanFieldOptions(schema.Field{Name: "owner", RawOptions: opts})
	want := []Constraint{{"owner", RuleRequired, nil}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("scanFieldOptions() = %v, want %v", got, want)
	}
}

// TestScan_UnknownSkipped проверяет пропуск неизвестных расширений и
// rule подсообщений.
func TestScan_UnknownSkipped(t *testing.T) {
	opts := varint(nil, 99999, 5)                                   // неизвестное варинт расширение
	opts = sub(opts, 88888, []byte("whatever"))                     // неизвестное байтовое расширение
	opts = sub(opts, extPGVRules, sub(nil, 99, []byte{0x08, 0x01})) // неизвестное rule подсообщение
	opts = sub(opts, extPGVRules, sub(nil, ruleNumBool, varint(nil, 1, 1)))

	got := scanFieldOptions(schema.Field{Name: "flag", RawOptions: opts})
	want := []Constraint{{"flag", RuleConst, true}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("scanFieldOptions() = %v, want %v", got, want)
	}
}

// TestScan_FailOpen проверяет контракт fail open: усеченные байты дают
// пустой список, не панику и не ошибку.
func TestScan_FailOpen(t *testing.T) {
	full := sub(nil, extPGVRules, sub(nil, ruleNumInt32, varint(nil, 5, 100)))

	for cut := 1; cut < len(full); cut++ {
		got := scanFieldOptions(schema.Field{Name: "x", RawOptions: full[:cut]})
		if got != nil {
			t.Errorf("scanFieldOptions(cut=%d) = %v, want nil", cut, got)
		}
	}
}

// TestForField_ASCIIFlag проверяет чтение собственного расширения ascii.
func TestForField_ASCIIFlag(t *testing.T) {
	opts := sub(nil, extPGVRules, sub(nil, ruleNumString, varint(nil, 2, 1)))
	opts = varint(opts, extASCII, 1)

	got := ForField(schema.Field{Name: "code", RawOptions: opts})
	want := []Constraint{
		{"code", RuleMinLen, uint64(1)},
		{"code", RuleASCII, nil},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ForField() = %v, want %v", got, want)
	}
}

// TestScan_MessageOptions проверяет разбор межполевых правил из опций
// сообщения.
func TestScan_MessageOptions(t *testing.T) {
	requires := str(nil, 1, "card_number")
	requires = str(requires, 2, "card_holder")

	mutex := str(nil, 1, "email")
	mutex = str(mutex, 1, "phone")

	atLeast := varint(nil, 1, 2)
	atLeast = str(atLeast, 2, "a")
	atLeast = str(atLeast, 2, "b")
	atLeast = str(atLeast, 2, "c")

	opts := sub(nil, extRequires, requires)
	opts = sub(opts, extMutex, mutex)
	opts = sub(opts, extAtLeast, atLeast)

	got := scanMessageOptions(opts)
	want := []MessageRule{
		{Kind: MsgRequires, Fields: []string{"card_number", "card_holder"}},
		{Kind: MsgMutex, Fields: []string{"email", "phone"}},
		{Kind: MsgAtLeast, Fields: []string{"a", "b", "c"}, N: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("scanMessageOptions() = %v, want %v", got, want)
	}
}

// TestForMessage_OneofRequired проверяет правило обязательного oneof.
func TestForMessage_OneofRequired(t *testing.T) {
	m := &schema.Message{
		Name: "testdata.Contact",
		Oneofs: []schema.Oneof{
			{
				Name:       "channel",
				Fields:     []string{"email", "phone"},
				RawOptions: varint(nil, extOneofRequired, 1),
			},
			{
				Name:   "extra",
				Fields: []string{"a", "b"},
			},
		},
	}

	got := ForMessage(m)
	want := []MessageRule{
		{Kind: MsgOneofRequired, Fields: []string{"email", "phone"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ForMessage() = %v, want %v", got, want)
	}
}
