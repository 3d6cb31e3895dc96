package assembly

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"seedsynth/entities"
	"seedsynth/infra/utils/compression"
	"seedsynth/infra/utils/logger"
	"seedsynth/infra/utils/msgpack"
)

// SnapshotFileName - снимок реестра внутри директории запуска
const SnapshotFileName = "registry.msgpack"

const (
	rawPayload        byte = 0
	compressedPayload byte = 1
)

type typeRecord struct {
	Type      string         `msgpack:"type"`
	Structure map[string]any `msgpack:"structure,omitempty"`
	Message   map[string]any `msgpack:"message,omitempty"`
}

type snapshotRecord struct {
	RunID     string         `msgpack:"run_id"`
	Protocol  string         `msgpack:"protocol"`
	CreatedAt time.Time      `msgpack:"created_at"`
	Base      map[string]any `msgpack:"base"`
	Types     []typeRecord   `msgpack:"types"`
}

// Snapshot - восстановленное состояние запуска после стадии обработки типов
type Snapshot struct {
	RunID     string
	Protocol  string
	CreatedAt time.Time
	Base      entities.Section
	Registry  *Registry
}

func SnapshotPath(run entities.Run) string {
	return filepath.Join(run.Dir, SnapshotFileName)
}

// SaveSnapshot - первый байт файла говорит, сжаты ли данные
func SaveSnapshot(path string, run entities.Run, base entities.Section, reg *Registry) error {
	started := time.Now()
	defer func() {
		snapshotDuration.Observe(time.Since(started).Seconds())
	}()

	rec := snapshotRecord{
		RunID:     run.ID,
		Protocol:  run.Protocol,
		CreatedAt: time.Now().UTC(),
		Base:      entities.EncodeSection(base),
	}
	for _, t := range reg.Types() {
		tr := typeRecord{Type: string(t)}
		if s, ok := reg.Structure(t); ok {
			tr.Structure = entities.EncodeSection(s)
		}
		if msg, ok := reg.Message(t); ok {
			tr.Message = entities.EncodeBinarySection(msg)
		}
		rec.Types = append(rec.Types, tr)
	}

	data, err := msgpack.New().Marshal(rec)
	if err != nil {
		return errors.WithMessage(err, "failed to encode registry snapshot")
	}
	payload, compressed, err := compression.Compress(data)
	if err != nil {
		return errors.Wrap(err, "failed to compress registry snapshot")
	}
	flag := rawPayload
	if compressed {
		flag = compressedPayload
	}
	if err := os.WriteFile(path, append([]byte{flag}, payload...), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write registry snapshot %s", path)
	}
	logger.Debugf("registry snapshot %s: %d types, %d bytes (compressed=%t)", path, len(rec.Types), len(payload), compressed)
	return nil
}

func LoadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, errors.Wrapf(err, "failed to read registry snapshot %s", path)
	}
	if len(data) == 0 {
		return Snapshot{}, errors.Errorf("registry snapshot %s is empty", path)
	}
	payload := data[1:]
	switch data[0] {
	case rawPayload:
	case compressedPayload:
		payload, err = compression.DeCompress(payload)
		if err != nil {
			return Snapshot{}, errors.Wrapf(err, "failed to decompress registry snapshot %s", path)
		}
	default:
		return Snapshot{}, errors.Errorf("registry snapshot %s: unknown payload flag %d", path, data[0])
	}

	rec := snapshotRecord{}
	if err := msgpack.Unmarshal(payload, &rec); err != nil {
		return Snapshot{}, errors.WithMessagef(err, "registry snapshot %s", path)
	}

	base, err := entities.DecodeSection(rec.Base)
	if err != nil {
		return Snapshot{}, errors.WithMessage(err, "snapshot base structure")
	}
	reg := NewRegistry()
	for _, tr := range rec.Types {
		t := entities.ProtocolType(tr.Type)
		if tr.Structure != nil {
			s, err := entities.DecodeSection(tr.Structure)
			if err != nil {
				return Snapshot{}, errors.WithMessagef(err, "snapshot structure of %s", t)
			}
			reg.PutStructure(t, s)
		}
		if tr.Message != nil {
			msg, err := entities.DecodeBinarySection(tr.Message)
			if err != nil {
				return Snapshot{}, errors.WithMessagef(err, "snapshot message of %s", t)
			}
			if err := reg.PutMessage(t, msg); err != nil {
				return Snapshot{}, err
			}
		}
	}
	return Snapshot{
		RunID:     rec.RunID,
		Protocol:  rec.Protocol,
		CreatedAt: rec.CreatedAt,
		Base:      base,
		Registry:  reg,
	}, nil
}
