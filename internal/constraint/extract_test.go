package constraint_test

import (
	"reflect"
	"testing"

	validatepb "buf.build/gen/go/bufbuild/protovalidate/protocolbuffers/go/buf/validate"
	validate "github.com/envoyproxy/protoc-gen-validate/validate"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/types/descriptorpb"

	"protodata-gen/internal/constraint"
	"protodata-gen/internal/schema"
)

// fieldWithOptions собирает сообщение с одним полем и заданными опциями
// и возвращает его таблицу из схемы.
func fieldWithOptions(t *testing.T, typ descriptorpb.FieldDescriptorProto_Type, label descriptorpb.FieldDescriptorProto_Label, opts *descriptorpb.FieldOptions) schema.Field {
	t.Helper()

	fd := &descriptorpb.FileDescriptorProto{
		Name:    proto.String("typed.proto"),
		Package: proto.String("testdata"),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("Holder"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{
						Name:    proto.String("value"),
						Number:  proto.Int32(1),
						Type:    typ.Enum(),
						Label:   label.Enum(),
						Options: opts,
					},
				},
			},
		},
	}

	file, err := protodesc.NewFile(fd, nil)
	if err != nil {
		t.Fatalf("protodesc.NewFile() error = %v", err)
	}
	set, err := schema.FromDescriptor(file)
	if err != nil {
		t.Fatalf("schema.FromDescriptor() error = %v", err)
	}
	m, err := set.Message("testdata.Holder")
	if err != nil {
		t.Fatalf("set.Message() error = %v", err)
	}
	return m.Fields[0]
}

// TestForField_PGVInt32 проверяет типизированный путь validate.rules:
// включаются только присутствующие подполя, порядок повторяет словарь.
func TestForField_PGVInt32(t *testing.T) {
	opts := &descriptorpb.FieldOptions{}
	proto.SetExtension(opts, validate.E_Rules, &validate.FieldRules{
		Type: &validate.FieldRules_Int32{
			Int32: &validate.Int32Rules{
				Gte: proto.Int32(0),
				Lte: proto.Int32(150),
			},
		},
	})

	f := fieldWithOptions(t,
		descriptorpb.FieldDescriptorProto_TYPE_INT32,
		descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL,
		opts)

	got := constraint.ForField(f)
	want := []constraint.Constraint{
		{Field: "value", Rule: constraint.RuleLte, Param: int64(150)},
		{Field: "value", Rule: constraint.RuleGte, Param: int64(0)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ForField() = %v, want %v", got, want)
	}
}

// TestForField_PGVString проверяет строковые правила типизированного пути.
func TestForField_PGVString(t *testing.T) {
	opts := &descriptorpb.FieldOptions{}
	proto.SetExtension(opts, validate.E_Rules, &validate.FieldRules{
		Type: &validate.FieldRules_String_{
			String_: &validate.StringRules{
				MinLen: proto.Uint64(3),
				MaxLen: proto.Uint64(20),
				Prefix: proto.String("PREFIX_"),
			},
		},
	})

	f := fieldWithOptions(t,
		descriptorpb.FieldDescriptorProto_TYPE_STRING,
		descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL,
		opts)

	got := constraint.ForField(f)
	want := []constraint.Constraint{
		{Field: "value", Rule: constraint.RuleMinLen, Param: uint64(3)},
		{Field: "value", Rule: constraint.RuleMaxLen, Param: uint64(20)},
		{Field: "value", Rule: constraint.RulePrefix, Param: "PREFIX_"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ForField() = %v, want %v", got, want)
	}
}

// TestForField_PGVRepeated проверяет раскрытие правил элементов repeated
// поля в общий список.
func TestForField_PGVRepeated(t *testing.T) {
	opts := &descriptorpb.FieldOptions{}
	proto.SetExtension(opts, validate.E_Rules, &validate.FieldRules{
		Type: &validate.FieldRules_Repeated{
			Repeated: &validate.RepeatedRules{
				MinItems: proto.Uint64(2),
				MaxItems: proto.Uint64(4),
				Unique:   proto.Bool(true),
				Items: &validate.FieldRules{
					Type: &validate.FieldRules_String_{
						String_: &validate.StringRules{MinLen: proto.Uint64(1)},
					},
				},
			},
		},
	})

	f := fieldWithOptions(t,
		descriptorpb.FieldDescriptorProto_TYPE_STRING,
		descriptorpb.FieldDescriptorProto_LABEL_REPEATED,
		opts)

	got := constraint.ForField(f)
	want := []constraint.Constraint{
		{Field: "value", Rule: constraint.RuleMinItems, Param: uint64(2)},
		{Field: "value", Rule: constraint.RuleMaxItems, Param: uint64(4)},
		{Field: "value", Rule: constraint.RuleUnique},
		{Field: "value", Rule: constraint.RuleMinLen, Param: uint64(1)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ForField() = %v, want %v", got, want)
	}
}

// TestForField_BufValidate проверяет типизированный путь словаря
// buf.validate с oneof границами.
func TestForField_BufValidate(t *testing.T) {
	opts := &descriptorpb.FieldOptions{}
	proto.SetExtension(opts, validatepb.E_Field, &validatepb.FieldRules{
		Type: &validatepb.FieldRules_Int32{
			Int32: &validatepb.Int32Rules{
				GreaterThan: &validatepb.Int32Rules_Gte{Gte: 18},
				LessThan:    &validatepb.Int32Rules_Lt{Lt: 100},
			},
		},
	})

	f := fieldWithOptions(t,
		descriptorpb.FieldDescriptorProto_TYPE_INT32,
		descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL,
		opts)

	got := constraint.ForField(f)
	want := []constraint.Constraint{
		{Field: "value", Rule: constraint.RuleLt, Param: int64(100)},
		{Field: "value", Rule: constraint.RuleGte, Param: int64(18)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ForField() = %v, want %v", got, want)
	}
}

// TestForField_NoRules проверяет пустой список на поле без опций.
func TestForField_NoRules(t *testing.T) {
	f := fieldWithOptions(t,
		descriptorpb.FieldDescriptorProto_TYPE_INT32,
		descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL,
		nil)

	if got := constraint.ForField(f); len(got) != 0 {
		t.Errorf("ForField() = %v, want empty", got)
	}
}
