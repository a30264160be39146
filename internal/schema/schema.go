// Package schema оборачивает скомпилированные дескрипторы protobuf в
// неизменяемые таблицы полей, с которыми работают экстрактор правил,
// генератор значений и кодировщик wire формата.
//
// Пакет не разбирает текстовый синтаксис proto файлов: на вход подается
// уже скомпилированный FileDescriptorSet (результат protoc
// --descriptor_set_out). Таблицы сообщений строятся лениво и кэшируются
// на время жизни Set.
package schema

import (
	"fmt"
	"os"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Field описывает одно поле сообщения. Заполняется один раз при построении
// таблицы и дальше не изменяется.
type Field struct {
	Name        string // имя поля как в proto файле
	Tag         int32  // номер поля
	Kind        Kind   // скалярный тип
	Repeated    bool   // repeated поле
	MessageType string // полное имя вложенного сообщения (пустое для скаляров)
	RawOptions  []byte // сериализованные FieldOptions, включая неизвестные расширения

	// Desc хранит исходный дескриптор для типизированного доступа
	// к расширениям опций и значениям enum.
	Desc protoreflect.FieldDescriptor
}

// Oneof описывает oneof группу сообщения.
type Oneof struct {
	Name       string
	Fields     []string // имена полей-участников
	RawOptions []byte
}

// Message является таблицей полей одного сообщения.
type Message struct {
	Name       string // полное имя (с пакетом)
	Fields     []Field
	Oneofs     []Oneof
	RawOptions []byte // сериализованные MessageOptions

	Desc protoreflect.MessageDescriptor
}

// Set хранит загруженный набор дескрипторов и кэш построенных таблиц.
type Set struct {
	files    *protoregistry.Files
	messages map[string]*Message
}

// Load разбирает сериализованный FileDescriptorSet и строит реестр типов.
// Расширения опций (validate.rules и т.п.) резолвятся через глобальный
// реестр: если пакет с типами правил слинкован в бинарник, опции будут
// доступны типизированно, иначе останутся в неизвестных полях.
func Load(data []byte) (*Set, error) {
	var fds descriptorpb.FileDescriptorSet
	if err := proto.Unmarshal(data, &fds); err != nil {
		return nil, fmt.Errorf("proto.Unmarshal descriptor set: %w", err)
	}

	files, err := protodesc.NewFiles(&fds)
	if err != nil {
		return nil, fmt.Errorf("protodesc.NewFiles: %w", err)
	}

	return &Set{
		files:    files,
		messages: make(map[string]*Message),
	}, nil
}

// LoadFile читает файл с FileDescriptorSet и вызывает Load.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}
	return Load(data)
}

// FromDescriptor строит Set поверх уже готового дескриптора файла.
// Удобно в тестах, где дескриптор собирается программно.
func FromDescriptor(fd protoreflect.FileDescriptor) (*Set, error) {
	files := new(protoregistry.Files)
	if err := files.RegisterFile(fd); err != nil {
		return nil, fmt.Errorf("files.RegisterFile: %w", err)
	}
	return &Set{
		files:    files,
		messages: make(map[string]*Message),
	}, nil
}

// Message возвращает таблицу полей сообщения по полному имени.
// Таблица строится при первом обращении и кэшируется.
func (s *Set) Message(name string) (*Message, error) {
	if m, ok := s.messages[name]; ok {
		return m, nil
	}

	desc, err := s.files.FindDescriptorByName(protoreflect.FullName(name))
	if err != nil {
		return nil, fmt.Errorf("message %q not found in descriptor set: %w", name, err)
	}
	md, ok := desc.(protoreflect.MessageDescriptor)
	if !ok {
		return nil, fmt.Errorf("descriptor %q is not a message", name)
	}

	m := buildMessage(md)
	s.messages[name] = m
	return m, nil
}

// Field находит поле сообщения по имени.
func (m *Message) Field(name string) (*Field, error) {
	for i := range m.Fields {
		if m.Fields[i].Name == name {
			return &m.Fields[i], nil
		}
	}
	return nil, fmt.Errorf("field %q not found in message %q", name, m.Name)
}

// buildMessage переводит дескриптор сообщения в неизменяемую таблицу полей.
func buildMessage(md protoreflect.MessageDescriptor) *Message {
	m := &Message{
		Name:       string(md.FullName()),
		RawOptions: marshalOptions(md.Options()),
		Desc:       md,
	}

	fields := md.Fields()
	for i := 0; i < fields.Len(); i++ {
		fd := fields.Get(i)
		f := Field{
			Name:       string(fd.Name()),
			Tag:        int32(fd.Number()),
			Kind:       kindFromDescriptor(fd.Kind()),
			Repeated:   fd.IsList(),
			RawOptions: marshalOptions(fd.Options()),
			Desc:       fd,
		}
		if f.Kind == KindMessage && fd.Message() != nil {
			f.MessageType = string(fd.Message().FullName())
		}
		m.Fields = append(m.Fields, f)
	}

	oneofs := md.Oneofs()
	for i := 0; i < oneofs.Len(); i++ {
		od := oneofs.Get(i)
		if od.IsSynthetic() {
			// Синтетические oneof от optional полей proto3 не считаются группами.
			continue
		}
		o := Oneof{
			Name:       string(od.Name()),
			RawOptions: marshalOptions(od.Options()),
		}
		ofields := od.Fields()
		for j := 0; j < ofields.Len(); j++ {
			o.Fields = append(o.Fields, string(ofields.Get(j).Name()))
		}
		m.Oneofs = append(m.Oneofs, o)
	}

	return m
}

// marshalOptions сериализует опции дескриптора обратно в байты.
// Неизвестные расширения при этом сохраняются, что позволяет резервному
// сканеру wire формата разобрать их без типов словаря правил.
func marshalOptions(opts proto.Message) []byte {
	if opts == nil {
		return nil
	}
	data, err := proto.Marshal(opts)
	if err != nil {
		return nil
	}
	return data
}
