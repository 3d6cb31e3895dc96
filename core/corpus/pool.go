package corpus

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
	"github.com/pkg/errors"

	"seedsynth/entities"
	"seedsynth/infra/utils/hashing"
	"seedsynth/infra/utils/logger"
)

const (
	// за запуск получается десятки сидов, запас на несколько запусков в одну директорию
	seedCountExpected      = 10e3
	bloomFalsePositiveRate = 10e-4 // 0.1%

	seedFilePattern = "seed_%d.raw"
)

// Pool - сиды одного запуска: файлы на диске, индекс по номеру последовательности
// и bloom фильтр по содержимому для поиска повторов
type Pool struct {
	dir      string
	entries  *redblacktree.Tree
	bloom    *bloom.BloomFilter
	bloomBuf []byte
}

func New(dir string) (*Pool, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create corpus dir %s", dir)
	}
	return &Pool{
		dir:      dir,
		entries:  redblacktree.NewWith(utils.IntComparator),
		bloom:    bloom.NewWithEstimates(seedCountExpected, bloomFalsePositiveRate),
		bloomBuf: make([]byte, 8),
	}, nil
}

func (p *Pool) Dir() string {
	return p.dir
}

// SeedPath - путь к файлу сида с номером index
func (p *Pool) SeedPath(index int) string {
	return filepath.Join(p.dir, fmt.Sprintf(seedFilePattern, index))
}

// Open - создает (или перезаписывает) файл сида с номером index
func (p *Pool) Open(index int) (*Target, error) {
	return newTarget(index, p.SeedPath(index))
}

// Add - запоминает готовый сид, duplicate=true если такое содержимое уже встречалось.
// Повторы не удаляются, они остаются в корпусе
func (p *Pool) Add(entry entities.CorpusEntry) (duplicate bool) {
	key := hashing.Key(entry.Hash, p.bloomBuf)
	duplicate = p.bloom.Test(key)
	if duplicate {
		duplicateSeeds.Inc()
		logger.Infof("seed %s repeats content of an earlier seed (hash=%x)", entry.Path, entry.Hash)
	}
	p.bloom.Add(key)

	if _, exists := p.entries.Get(entry.Index); exists {
		logger.Warnf("seed %d is written twice, keeping the latest", entry.Index)
	}
	p.entries.Put(entry.Index, entry)
	savedSeeds.Inc()
	seedSize.Observe(float64(entry.Size))
	return duplicate
}

// Entries - сиды в порядке номеров
func (p *Pool) Entries() []entities.CorpusEntry {
	res := make([]entities.CorpusEntry, 0, p.entries.Size())
	it := p.entries.Iterator()
	for it.Next() {
		res = append(res, it.Value().(entities.CorpusEntry))
	}
	return res
}

func (p *Pool) Len() int {
	return p.entries.Size()
}
