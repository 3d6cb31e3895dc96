package entities

import (
	"fmt"
	"strings"
)

// SubsectionKey - ключ со списком дочерних узлов в словарном представлении.
// Узел с таким именем в словарь закодировать нельзя
const SubsectionKey = "subsection"

// StructureFormatError - словарь не является корректным деревом
type StructureFormatError struct {
	// путь до узла: root/PDU Header/subsection[1]
	Path   string
	Reason string
}

func (e *StructureFormatError) Error() string {
	return fmt.Sprintf("%s: node %q: %s", ErrStructureFormat, e.Path, e.Reason)
}

func (e *StructureFormatError) Unwrap() error {
	return ErrStructureFormat
}

// EncodeSection - {имя: длина, "subsection": [...]}; subsection только если есть дети
func EncodeSection(s Section) map[string]any {
	doc := map[string]any{s.Name: s.LengthDescriptor}
	if len(s.Children) > 0 {
		subs := make([]any, len(s.Children))
		for i, child := range s.Children {
			subs[i] = EncodeSection(child)
		}
		doc[SubsectionKey] = subs
	}
	return doc
}

// EncodeBinarySection - {имя: байты, "subsection": [...]}; subsection есть всегда
func EncodeBinarySection(b BinarySection) map[string]any {
	subs := make([]any, len(b.Children))
	for i, child := range b.Children {
		subs[i] = EncodeBinarySection(child)
	}
	return map[string]any{
		b.Name:        b.ByteSequence,
		SubsectionKey: subs,
	}
}

func DecodeSection(doc map[string]any) (Section, error) {
	return decodeSection(doc, "")
}

func decodeSection(doc map[string]any, parent string) (Section, error) {
	name, value, children, path, err := splitNode(doc, parent)
	if err != nil {
		return Section{}, err
	}
	s := Section{Name: name, LengthDescriptor: value}
	for i, child := range children {
		decoded, err := decodeSection(child, fmt.Sprintf("%s/%s[%d]", path, SubsectionKey, i))
		if err != nil {
			return Section{}, err
		}
		s.Children = append(s.Children, decoded)
	}
	return s, nil
}

func DecodeBinarySection(doc map[string]any) (BinarySection, error) {
	return decodeBinarySection(doc, "")
}

func decodeBinarySection(doc map[string]any, parent string) (BinarySection, error) {
	name, value, children, path, err := splitNode(doc, parent)
	if err != nil {
		return BinarySection{}, err
	}
	b := BinarySection{Name: name, ByteSequence: value}
	for i, child := range children {
		decoded, err := decodeBinarySection(child, fmt.Sprintf("%s/%s[%d]", path, SubsectionKey, i))
		if err != nil {
			return BinarySection{}, err
		}
		b.Children = append(b.Children, decoded)
	}
	return b, nil
}

// splitNode - разбирает один узел словаря на имя, значение и детей.
// Пустой список детей возвращается как nil, чтобы лист всегда выглядел одинаково
func splitNode(doc map[string]any, parent string) (name, value string, children []map[string]any, path string, err error) {
	path = parent
	if path == "" {
		path = "<root>"
	}
	if len(doc) == 0 {
		return "", "", nil, path, &StructureFormatError{Path: path, Reason: "empty node"}
	}

	names := make([]string, 0, 1)
	for key := range doc {
		if key != SubsectionKey {
			names = append(names, key)
		}
	}
	if len(names) != 1 {
		return "", "", nil, path, &StructureFormatError{
			Path:   path,
			Reason: fmt.Sprintf("expected exactly one section name, got %d (%s)", len(names), strings.Join(names, ", ")),
		}
	}
	name = names[0]
	if strings.TrimSpace(name) == "" {
		return "", "", nil, path, &StructureFormatError{Path: path, Reason: "empty section name"}
	}
	if parent == "" {
		path = name
	} else {
		path = parent + "/" + name
	}

	value, ok := doc[name].(string)
	if !ok {
		return "", "", nil, path, &StructureFormatError{
			Path:   path,
			Reason: fmt.Sprintf("value must be a string, got %T", doc[name]),
		}
	}

	raw, exists := doc[SubsectionKey]
	if !exists || raw == nil {
		return name, value, nil, path, nil
	}
	switch subs := raw.(type) {
	case []map[string]any:
		if len(subs) > 0 {
			children = subs
		}
	case []any:
		for i, sub := range subs {
			child, ok := sub.(map[string]any)
			if !ok {
				return "", "", nil, path, &StructureFormatError{
					Path:   fmt.Sprintf("%s/%s[%d]", path, SubsectionKey, i),
					Reason: fmt.Sprintf("child must be a mapping, got %T", sub),
				}
			}
			children = append(children, child)
		}
	default:
		return "", "", nil, path, &StructureFormatError{
			Path:   path,
			Reason: fmt.Sprintf("%s must be a list, got %T", SubsectionKey, raw),
		}
	}
	return name, value, children, path, nil
}
