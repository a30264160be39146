package emitter_test

import (
	"testing"

	validate "github.com/envoyproxy/protoc-gen-validate/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"

	"protodata-gen/internal/constraint"
	"protodata-gen/internal/emitter"
	"protodata-gen/internal/schema"
	"protodata-gen/internal/wire"
)

// requiresOption кодирует межполевое правило requires(a, b) в неизвестное
// расширение опций сообщения: словарь правил внешний, Go типов у него нет.
func requiresOption(a, b string) *descriptorpb.MessageOptions {
	var sub []byte
	sub = wire.AppendTag(sub, 1, wire.TypeBytes)
	sub = wire.AppendBytes(sub, []byte(a))
	sub = wire.AppendTag(sub, 2, wire.TypeBytes)
	sub = wire.AppendBytes(sub, []byte(b))

	var raw []byte
	raw = wire.AppendTag(raw, 72101, wire.TypeBytes)
	raw = wire.AppendBytes(raw, sub)

	opts := &descriptorpb.MessageOptions{}
	opts.ProtoReflect().SetUnknown(protoreflect.RawFields(raw))
	return opts
}

// requiredOneofOption кодирует флаг required в опциях oneof группы.
func requiredOneofOption() *descriptorpb.OneofOptions {
	var raw []byte
	raw = wire.AppendTag(raw, 1071, wire.TypeVarint)
	raw = wire.AppendVarint(raw, 1)

	opts := &descriptorpb.OneofOptions{}
	opts.ProtoReflect().SetUnknown(protoreflect.RawFields(raw))
	return opts
}

func pgv(rules *validate.FieldRules) *descriptorpb.FieldOptions {
	opts := &descriptorpb.FieldOptions{}
	proto.SetExtension(opts, validate.E_Rules, rules)
	return opts
}

// accountSet собирает схему с полевыми правилами, межполевым requires
// и обязательной oneof группой.
func accountSet(t *testing.T) *schema.Set {
	t.Helper()

	oneofIdx := func(i int32) *int32 { return &i }

	fd := &descriptorpb.FileDescriptorProto{
		Name:    proto.String("account.proto"),
		Package: proto.String("testdata"),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name:    proto.String("Account"),
				Options: requiresOption("mode", "limit"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{
						Name:   proto.String("age"),
						Number: proto.Int32(1),
						Type:   descriptorpb.FieldDescriptorProto_TYPE_INT32.Enum(),
						Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
						Options: pgv(&validate.FieldRules{
							Type: &validate.FieldRules_Int32{Int32: &validate.Int32Rules{
								Gte: proto.Int32(0),
								Lte: proto.Int32(150),
							}},
						}),
					},
					{
						Name:   proto.String("name"),
						Number: proto.Int32(2),
						Type:   descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum(),
						Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
						Options: pgv(&validate.FieldRules{
							Type: &validate.FieldRules_String_{String_: &validate.StringRules{
								MinLen: proto.Uint64(3),
							}},
						}),
					},
					{
						Name:   proto.String("email"),
						Number: proto.Int32(3),
						Type:   descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum(),
						Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
						Options: pgv(&validate.FieldRules{
							Type: &validate.FieldRules_String_{String_: &validate.StringRules{
								WellKnown: &validate.StringRules_Email{Email: true},
							}},
						}),
					},
					{
						Name:   proto.String("mode"),
						Number: proto.Int32(4),
						Type:   descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum(),
						Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
					},
					{
						Name:   proto.String("limit"),
						Number: proto.Int32(5),
						Type:   descriptorpb.FieldDescriptorProto_TYPE_INT32.Enum(),
						Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
					},
					{
						Name:       proto.String("phone"),
						Number:     proto.Int32(6),
						Type:       descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum(),
						Label:      descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
						OneofIndex: oneofIdx(0),
					},
					{
						Name:       proto.String("fax"),
						Number:     proto.Int32(7),
						Type:       descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum(),
						Label:      descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
						OneofIndex: oneofIdx(0),
					},
				},
				OneofDecl: []*descriptorpb.OneofDescriptorProto{
					{Name: proto.String("contact"), Options: requiredOneofOption()},
				},
			},
			{
				Name: proto.String("Plain"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{
						Name:   proto.String("note"),
						Number: proto.Int32(1),
						Type:   descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum(),
						Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
					},
				},
			},
		},
	}

	file, err := protodesc.NewFile(fd, nil)
	require.NoError(t, err)
	set, err := schema.FromDescriptor(file)
	require.NoError(t, err)
	return set
}

// TestEmit проверяет порядок проверок: полевые в порядке объявления,
// межполевые после всех полевых.
func TestEmit(t *testing.T) {
	set := accountSet(t)

	list, err := emitter.Emit(set, "testdata.Account", emitter.ModeEarlyExit, false)
	require.NoError(t, err)
	require.NotNil(t, list)

	var got []string
	for _, c := range list.Fields {
		got = append(got, c.Field+"/"+c.Rule)
	}
	assert.Equal(t, []string{
		"age/lte",
		"age/gte",
		"name/min_len",
		"email/email",
	}, got)

	require.Len(t, list.Cross, 2)
	assert.Equal(t, constraint.MsgRequires, list.Cross[0].Rule)
	assert.Equal(t, []string{"mode", "limit"}, list.Cross[0].Fields)
	assert.Equal(t, constraint.MsgOneofRequired, list.Cross[1].Rule)
	assert.Equal(t, []string{"phone", "fax"}, list.Cross[1].Fields)

	assert.Equal(t, "field age must be at most 150", list.Fields[0].Msg)
	assert.Equal(t, "field mode requires field limit", list.Cross[0].Msg)
}

// TestEmit_NoRules проверяет nil для сообщения без правил и форсирование.
func TestEmit_NoRules(t *testing.T) {
	set := accountSet(t)

	list, err := emitter.Emit(set, "testdata.Plain", emitter.ModeEarlyExit, false)
	require.NoError(t, err)
	assert.Nil(t, list)

	list, err = emitter.Emit(set, "testdata.Plain", emitter.ModeEarlyExit, true)
	require.NoError(t, err)
	require.NotNil(t, list)
	assert.Empty(t, list.Fields)
	assert.Empty(t, list.Cross)
}

// TestEmit_UnknownMessage проверяет ошибку на неизвестном сообщении.
func TestEmit_UnknownMessage(t *testing.T) {
	set := accountSet(t)

	_, err := emitter.Emit(set, "testdata.NoSuch", emitter.ModeEarlyExit, false)
	assert.Error(t, err)
}

// TestRenderGo_EarlyExit проверяет отрисованный метод в режиме раннего
// выхода по ключевым фрагментам.
func TestRenderGo_EarlyExit(t *testing.T) {
	set := accountSet(t)

	list, err := emitter.Emit(set, "testdata.Account", emitter.ModeEarlyExit, false)
	require.NoError(t, err)

	src, err := emitter.RenderGo(set, list, "model")
	require.NoError(t, err)
	code := string(src)

	assert.Contains(t, code, "// Code generated by protodata-gen. DO NOT EDIT.")
	assert.Contains(t, code, "package model")
	assert.Contains(t, code, "func (a *Account) Validate() error")
	assert.Contains(t, code, "a.Age > 150")
	assert.Contains(t, code, "a.Age < 0")
	assert.Contains(t, code, "len(a.Name) < 3")
	assert.Contains(t, code, "!isValidEmail(a.Email)")
	assert.Contains(t, code, "func isValidEmail(s string) bool")
	assert.Contains(t, code, `return fmt.Errorf("field age must be at most 150")`)

	// Межполевые проверки: requires и счетчик oneof.
	assert.Contains(t, code, `a.Mode != "" && !(a.Limit != 0)`)
	assert.Contains(t, code, "n != 1")

	assert.NotContains(t, code, "errs")
}

// TestRenderGo_Collect проверяет накопительный режим.
func TestRenderGo_Collect(t *testing.T) {
	set := accountSet(t)

	list, err := emitter.Emit(set, "testdata.Account", emitter.ModeCollect, false)
	require.NoError(t, err)

	src, err := emitter.RenderGo(set, list, "model")
	require.NoError(t, err)
	code := string(src)

	assert.Contains(t, code, "var errs []string")
	assert.Contains(t, code, `errs = append(errs, "field age must be at most 150")`)
	assert.Contains(t, code, `strings.Join(errs, "; ")`)
}

// TestRenderGo_Nil проверяет пустой результат для nil списка.
func TestRenderGo_Nil(t *testing.T) {
	set := accountSet(t)

	src, err := emitter.RenderGo(set, nil, "model")
	require.NoError(t, err)
	assert.Nil(t, src)
}
