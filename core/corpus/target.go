package corpus

import (
	"bufio"
	"hash"
	"os"

	"github.com/pkg/errors"

	"seedsynth/entities"
	"seedsynth/infra/utils/hashing"
	"seedsynth/infra/utils/logger"
)

// Target - открытый на запись файл одного сида
type Target struct {
	index  int
	path   string
	file   *os.File
	writer *bufio.Writer
	digest hash.Hash64
	size   int
	closed bool
}

func (t *Target) Path() string {
	return t.path
}

func (t *Target) Index() int {
	return t.index
}

// Append - дописывает байты одного сообщения и сразу сбрасывает их на диск
func (t *Target) Append(data []byte) error {
	if t.closed {
		return errors.Wrapf(entities.ErrOutputWrite, "%s is already closed", t.path)
	}
	if _, err := t.writer.Write(data); err != nil {
		return errors.Wrapf(entities.ErrOutputWrite, "failed to write %s: %v", t.path, err)
	}
	if err := t.writer.Flush(); err != nil {
		return errors.Wrapf(entities.ErrOutputWrite, "failed to flush %s: %v", t.path, err)
	}
	// bufio.Writer после ошибки перестает принимать данные, хешируем только записанное
	_, _ = t.digest.Write(data)
	t.size += len(data)
	return nil
}

// Discard - закрывает и удаляет файл, частично записанный сид на диске не остается
func (t *Target) Discard() error {
	if !t.closed {
		t.closed = true
		if err := t.file.Close(); err != nil {
			logger.Errorf(err, "failed to close discarded seed %s", t.path)
		}
	}
	if err := os.Remove(t.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to remove %s", t.path)
	}
	discardedSeeds.Inc()
	return nil
}

// Commit - закрывает файл и возвращает запись о готовом сиде
func (t *Target) Commit(sequence entities.TypeSequence) (entities.CorpusEntry, error) {
	if t.closed {
		return entities.CorpusEntry{}, errors.Wrapf(entities.ErrOutputWrite, "%s is already closed", t.path)
	}
	t.closed = true
	if err := t.file.Close(); err != nil {
		return entities.CorpusEntry{}, errors.Wrapf(entities.ErrOutputWrite, "failed to close %s: %v", t.path, err)
	}
	return entities.CorpusEntry{
		Index:    t.index,
		Sequence: sequence,
		Path:     t.path,
		Size:     t.size,
		Hash:     t.digest.Sum64(),
	}, nil
}

func newTarget(index int, path string) (*Target, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrapf(entities.ErrOutputWrite, "failed to create %s: %v", path, err)
	}
	return &Target{
		index:  index,
		path:   path,
		file:   f,
		writer: bufio.NewWriter(f),
		digest: hashing.New(),
	}, nil
}
