package entities

import (
	"strings"
	"time"
)

// ProtocolType - имя типа сообщения, например SSH_MSG_DISCONNECT
type ProtocolType string

// TypeSequence - упорядоченный набор типов, один путь по автомату состояний протокола
type TypeSequence []ProtocolType

const (
	MinSequenceLen = 3
	MaxSequenceLen = 6
)

func (s TypeSequence) String() string {
	parts := make([]string, len(s))
	for i, t := range s {
		parts[i] = string(t)
	}
	return "[" + strings.Join(parts, " -> ") + "]"
}

// CorpusEntry - готовый сид на диске
type CorpusEntry struct {
	Index    int
	Sequence TypeSequence
	Path     string
	Size     int
	Hash     uint64
}

// Run - контекст одного запуска, создается один раз и дальше не меняется
type Run struct {
	ID        string
	Protocol  string
	InputPath string
	OutputDir string
	// директория конкретного запуска, сюда пишутся сиды и журнал
	Dir       string
	StartedAt time.Time
}
