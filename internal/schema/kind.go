package schema

import "google.golang.org/protobuf/reflect/protoreflect"

// Kind описывает скалярный тип поля protobuf сообщения.
// Используется вместо числовых кодов дескриптора, чтобы switch по типам
// был исчерпывающим и не содержал "проваливающихся" веток по умолчанию.
type Kind int

const (
	KindInt32 Kind = iota
	KindInt64
	KindUint32
	KindUint64
	KindSint32
	KindSint64
	KindFixed32
	KindFixed64
	KindSfixed32
	KindSfixed64
	KindFloat
	KindDouble
	KindBool
	KindString
	KindBytes
	KindEnum
	KindMessage
)

// String возвращает имя типа в нотации proto файлов (int32, sint64, ...).
func (k Kind) String() string {
	switch k {
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindUint32:
		return "uint32"
	case KindUint64:
		return "uint64"
	case KindSint32:
		return "sint32"
	case KindSint64:
		return "sint64"
	case KindFixed32:
		return "fixed32"
	case KindFixed64:
		return "fixed64"
	case KindSfixed32:
		return "sfixed32"
	case KindSfixed64:
		return "sfixed64"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindEnum:
		return "enum"
	case KindMessage:
		return "message"
	}
	return "unknown"
}

// Signed сообщает, является ли тип знаковым целым (включая zigzag и fixed варианты).
func (k Kind) Signed() bool {
	switch k {
	case KindInt32, KindInt64, KindSint32, KindSint64, KindSfixed32, KindSfixed64:
		return true
	}
	return false
}

// Unsigned сообщает, является ли тип беззнаковым целым.
func (k Kind) Unsigned() bool {
	switch k {
	case KindUint32, KindUint64, KindFixed32, KindFixed64:
		return true
	}
	return false
}

// Float сообщает, является ли тип числом с плавающей точкой.
func (k Kind) Float() bool {
	return k == KindFloat || k == KindDouble
}

// Is64Bit сообщает, занимает ли целочисленный тип 64 бита.
// Для таких типов генератор ограничивает ширину интервала выборки.
func (k Kind) Is64Bit() bool {
	switch k {
	case KindInt64, KindSint64, KindSfixed64, KindUint64, KindFixed64:
		return true
	}
	return false
}

// kindFromDescriptor переводит protoreflect.Kind во внутреннее представление.
func kindFromDescriptor(k protoreflect.Kind) Kind {
	switch k {
	case protoreflect.Int32Kind:
		return KindInt32
	case protoreflect.Int64Kind:
		return KindInt64
	case protoreflect.Uint32Kind:
		return KindUint32
	case protoreflect.Uint64Kind:
		return KindUint64
	case protoreflect.Sint32Kind:
		return KindSint32
	case protoreflect.Sint64Kind:
		return KindSint64
	case protoreflect.Fixed32Kind:
		return KindFixed32
	case protoreflect.Fixed64Kind:
		return KindFixed64
	case protoreflect.Sfixed32Kind:
		return KindSfixed32
	case protoreflect.Sfixed64Kind:
		return KindSfixed64
	case protoreflect.FloatKind:
		return KindFloat
	case protoreflect.DoubleKind:
		return KindDouble
	case protoreflect.BoolKind:
		return KindBool
	case protoreflect.StringKind:
		return KindString
	case protoreflect.BytesKind:
		return KindBytes
	case protoreflect.EnumKind:
		return KindEnum
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return KindMessage
	}
	return KindBytes
}
