package inference

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"seedsynth/entities"
)

const (
	fieldStructure    = "protocol_structure"
	fieldSectionName  = "section_name"
	fieldByteLength   = "byte_length"
	fieldByteSequence = "byte_sequence"
	fieldSubsection   = "subsection"
	fieldTypeList     = "protocol_type_list"
	fieldSequences    = "message_type_sequences"
	fieldSequence     = "message_type_sequence"
)

var (
	structureSchema = entities.ResponseSchema{Name: "protocol_structure", Schema: treeSchema(fieldByteLength)}
	messageSchema   = entities.ResponseSchema{Name: "protocol_message", Schema: treeSchema(fieldByteSequence)}
	typesSchema     = entities.ResponseSchema{
		Name: "protocol_types",
		Schema: object(map[string]any{
			fieldTypeList: map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		}),
	}
	sequencesSchema = entities.ResponseSchema{
		Name: "message_type_sequences",
		Schema: object(map[string]any{
			fieldSequences: map[string]any{
				"type": "array",
				"items": object(map[string]any{
					fieldSequence: map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				}),
			},
		}),
	}
)

// object - strict режим требует перечислить все поля в required и запретить лишние
func object(properties map[string]any) map[string]any {
	required := make([]string, 0, len(properties))
	for name := range properties {
		required = append(required, name)
	}
	sort.Strings(required)
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}

// treeSchema - рекурсивная схема дерева, valueField - byte_length или byte_sequence
func treeSchema(valueField string) map[string]any {
	root := object(map[string]any{
		fieldStructure: map[string]any{"$ref": "#/$defs/section"},
	})
	root["$defs"] = map[string]any{
		"section": object(map[string]any{
			fieldSectionName: map[string]any{"type": "string"},
			valueField:       map[string]any{"type": "string"},
			fieldSubsection: map[string]any{
				"type":  "array",
				"items": map[string]any{"$ref": "#/$defs/section"},
			},
		}),
	}
	return root
}

// ответы модели разбираются в указатели, чтобы отличать отсутствующее поле от пустого

type wireSection struct {
	SectionName *string        `json:"section_name"`
	ByteLength  *string        `json:"byte_length"`
	Subsection  *[]wireSection `json:"subsection"`
}

type wireBinarySection struct {
	SectionName  *string              `json:"section_name"`
	ByteSequence *string              `json:"byte_sequence"`
	Subsection   *[]wireBinarySection `json:"subsection"`
}

type structureEnvelope struct {
	ProtocolStructure *wireSection `json:"protocol_structure"`
}

type messageEnvelope struct {
	ProtocolStructure *wireBinarySection `json:"protocol_structure"`
}

type typesEnvelope struct {
	ProtocolTypeList *[]string `json:"protocol_type_list"`
}

type sequencesEnvelope struct {
	MessageTypeSequences *[]wireSequence `json:"message_type_sequences"`
}

type wireSequence struct {
	MessageTypeSequence *[]string `json:"message_type_sequence"`
}

func schemaErr(format string, args ...interface{}) error {
	return errors.Wrap(entities.ErrSchemaValidation, fmt.Sprintf(format, args...))
}

func unmarshal(content string, out interface{}) error {
	if err := sonic.UnmarshalString(content, out); err != nil {
		return schemaErr("response is not valid json: %v", err)
	}
	return nil
}

// checkSectionName - имя узла становится ключом словаря, поэтому пустое имя
// и имя, совпадающее с ключом детей, не представимы
func checkSectionName(path, name string) error {
	if strings.TrimSpace(name) == "" {
		return schemaErr("%s: empty %s", path, fieldSectionName)
	}
	if name == entities.SubsectionKey {
		return schemaErr("%s: %s %q is reserved", path, fieldSectionName, name)
	}
	return nil
}

func decodeStructure(content string) (entities.Section, error) {
	env := structureEnvelope{}
	if err := unmarshal(content, &env); err != nil {
		return entities.Section{}, err
	}
	if env.ProtocolStructure == nil {
		return entities.Section{}, schemaErr("missing %s", fieldStructure)
	}
	return env.ProtocolStructure.section(fieldStructure)
}

func (w wireSection) section(path string) (entities.Section, error) {
	if w.SectionName == nil {
		return entities.Section{}, schemaErr("%s: missing %s", path, fieldSectionName)
	}
	if err := checkSectionName(path, *w.SectionName); err != nil {
		return entities.Section{}, err
	}
	path = path + "/" + *w.SectionName
	if w.ByteLength == nil {
		return entities.Section{}, schemaErr("%s: missing %s", path, fieldByteLength)
	}
	if w.Subsection == nil {
		return entities.Section{}, schemaErr("%s: missing %s", path, fieldSubsection)
	}
	s := entities.Section{
		Name:             *w.SectionName,
		LengthDescriptor: *w.ByteLength,
	}
	for _, child := range *w.Subsection {
		decoded, err := child.section(path)
		if err != nil {
			return entities.Section{}, err
		}
		s.Children = append(s.Children, decoded)
	}
	return s, nil
}

func decodeMessage(content string) (entities.BinarySection, error) {
	env := messageEnvelope{}
	if err := unmarshal(content, &env); err != nil {
		return entities.BinarySection{}, err
	}
	if env.ProtocolStructure == nil {
		return entities.BinarySection{}, schemaErr("missing %s", fieldStructure)
	}
	return env.ProtocolStructure.binarySection(fieldStructure)
}

func (w wireBinarySection) binarySection(path string) (entities.BinarySection, error) {
	if w.SectionName == nil {
		return entities.BinarySection{}, schemaErr("%s: missing %s", path, fieldSectionName)
	}
	if err := checkSectionName(path, *w.SectionName); err != nil {
		return entities.BinarySection{}, err
	}
	path = path + "/" + *w.SectionName
	if w.ByteSequence == nil {
		return entities.BinarySection{}, schemaErr("%s: missing %s", path, fieldByteSequence)
	}
	if w.Subsection == nil {
		return entities.BinarySection{}, schemaErr("%s: missing %s", path, fieldSubsection)
	}
	b := entities.BinarySection{
		Name:         *w.SectionName,
		ByteSequence: *w.ByteSequence,
	}
	for _, child := range *w.Subsection {
		decoded, err := child.binarySection(path)
		if err != nil {
			return entities.BinarySection{}, err
		}
		b.Children = append(b.Children, decoded)
	}
	return b, nil
}

func decodeTypes(content string) ([]entities.ProtocolType, error) {
	env := typesEnvelope{}
	if err := unmarshal(content, &env); err != nil {
		return nil, err
	}
	if env.ProtocolTypeList == nil {
		return nil, schemaErr("missing %s", fieldTypeList)
	}
	types := make([]entities.ProtocolType, len(*env.ProtocolTypeList))
	for i, name := range *env.ProtocolTypeList {
		types[i] = entities.ProtocolType(name)
	}
	return types, nil
}

func decodeSequences(content string) ([]entities.TypeSequence, error) {
	env := sequencesEnvelope{}
	if err := unmarshal(content, &env); err != nil {
		return nil, err
	}
	if env.MessageTypeSequences == nil {
		return nil, schemaErr("missing %s", fieldSequences)
	}
	res := make([]entities.TypeSequence, 0, len(*env.MessageTypeSequences))
	for i, wire := range *env.MessageTypeSequences {
		if wire.MessageTypeSequence == nil {
			return nil, schemaErr("%s[%d]: missing %s", fieldSequences, i, fieldSequence)
		}
		seq := make(entities.TypeSequence, len(*wire.MessageTypeSequence))
		for j, name := range *wire.MessageTypeSequence {
			seq[j] = entities.ProtocolType(name)
		}
		res = append(res, seq)
	}
	return res, nil
}
