package entities

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

const displayIndent = 4

// Section - символьное описание части сообщения протокола:
// имя, описание длины ("4 bytes", "variable") и вложенные части
type Section struct {
	Name             string
	LengthDescriptor string
	Children         []Section
}

func (s Section) IsLeaf() bool {
	return len(s.Children) == 0
}

// Depth - глубина дерева, лист имеет глубину 1
func (s Section) Depth() int {
	depth := 0
	for _, child := range s.Children {
		depth = max(depth, child.Depth())
	}
	return depth + 1
}

// Leaves - количество листьев
func (s Section) Leaves() int {
	if s.IsLeaf() {
		return 1
	}
	count := 0
	for _, child := range s.Children {
		count += child.Leaves()
	}
	return count
}

// Display - читаемое дерево для отладки, формат ни на что не влияет
func (s Section) Display() string {
	var sb strings.Builder
	s.display(&sb, 0)
	return sb.String()
}

func (s Section) display(sb *strings.Builder, indent int) {
	fmt.Fprintf(sb, "%s|-- %s (Length: %s)\n", strings.Repeat(" ", indent), s.Name, s.LengthDescriptor)
	for _, child := range s.Children {
		child.display(sb, indent+displayIndent)
	}
}

// BinarySection - конкретное байтовое представление части сообщения.
// Значение имеет только ByteSequence листьев, у промежуточных узлов оно игнорируется
type BinarySection struct {
	Name         string
	ByteSequence string
	Children     []BinarySection
}

func (b BinarySection) IsLeaf() bool {
	return len(b.Children) == 0
}

// Flatten - байты всех листьев в порядке обхода в глубину, через пробел
func (b BinarySection) Flatten() string {
	return strings.Join(b.tokens(nil), " ")
}

func (b BinarySection) tokens(acc []string) []string {
	if b.IsLeaf() {
		return append(acc, strings.Fields(b.ByteSequence)...)
	}
	for _, child := range b.Children {
		acc = child.tokens(acc)
	}
	return acc
}

// Bytes - сообщение в том виде, в котором оно уходит в сеть
func (b BinarySection) Bytes() ([]byte, error) {
	data, err := ParseHex(b.Flatten())
	if err != nil {
		return nil, errors.WithMessagef(err, "section %q", b.Name)
	}
	return data, nil
}

func (b BinarySection) Display() string {
	var sb strings.Builder
	b.display(&sb, 0)
	return sb.String()
}

func (b BinarySection) display(sb *strings.Builder, indent int) {
	fmt.Fprintf(sb, "%s|-- %s (Byte sequence: %s)\n", strings.Repeat(" ", indent), b.Name, b.ByteSequence)
	for _, child := range b.Children {
		child.display(sb, indent+displayIndent)
	}
}
