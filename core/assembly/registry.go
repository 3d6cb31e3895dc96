package assembly

import (
	"github.com/pkg/errors"

	"seedsynth/entities"
)

// Registry - результаты по типам сообщений за один запуск.
// Наличие значения всегда явное: отсутствующий тип и пустое сообщение различаются
type Registry struct {
	order      []entities.ProtocolType
	structures map[entities.ProtocolType]entities.Section
	messages   map[entities.ProtocolType]entities.BinarySection
	encoded    map[entities.ProtocolType][]byte
}

func NewRegistry() *Registry {
	return &Registry{
		structures: make(map[entities.ProtocolType]entities.Section),
		messages:   make(map[entities.ProtocolType]entities.BinarySection),
		encoded:    make(map[entities.ProtocolType][]byte),
	}
}

func (r *Registry) remember(t entities.ProtocolType) {
	if _, ok := r.structures[t]; ok {
		return
	}
	if _, ok := r.messages[t]; ok {
		return
	}
	r.order = append(r.order, t)
}

func (r *Registry) PutStructure(t entities.ProtocolType, s entities.Section) {
	r.remember(t)
	r.structures[t] = s
}

// PutMessage - сохраняет сообщение только если оно раскладывается в корректные байты
func (r *Registry) PutMessage(t entities.ProtocolType, msg entities.BinarySection) error {
	raw, err := msg.Bytes()
	if err != nil {
		return errors.WithMessagef(err, "message of type %s", t)
	}
	r.remember(t)
	r.messages[t] = msg
	r.encoded[t] = raw
	return nil
}

func (r *Registry) Structure(t entities.ProtocolType) (entities.Section, bool) {
	s, ok := r.structures[t]
	return s, ok
}

func (r *Registry) Message(t entities.ProtocolType) (entities.BinarySection, bool) {
	msg, ok := r.messages[t]
	return msg, ok
}

// Encoded - байты проверенного сообщения типа t
func (r *Registry) Encoded(t entities.ProtocolType) ([]byte, bool) {
	raw, ok := r.encoded[t]
	return raw, ok
}

// Types - типы в порядке первого появления
func (r *Registry) Types() []entities.ProtocolType {
	res := make([]entities.ProtocolType, len(r.order))
	copy(res, r.order)
	return res
}
