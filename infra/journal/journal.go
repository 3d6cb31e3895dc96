package journal

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"seedsynth/entities"
	"seedsynth/infra/utils/logger"
)

// FileName - имя журнала внутри директории запуска
const FileName = "interactions.jsonl"

type record struct {
	Time        time.Time `json:"time"`
	RunID       string    `json:"run_id"`
	Target      string    `json:"target"`
	Step        string    `json:"step"`
	Model       string    `json:"model"`
	Temperature float64   `json:"temperature"`
	Prompt      string    `json:"prompt"`
	RawResponse string    `json:"raw_response"`
	Parsed      any       `json:"parsed_response,omitempty"`
}

// Journal - сохраняет каждое обращение к модели одной json строкой
type Journal struct {
	mu    sync.Mutex
	runID string
	path  string
	file  *os.File
}

// PathIn - путь журнала в директории запуска
func PathIn(dir string) string {
	return filepath.Join(dir, FileName)
}

func Open(run entities.Run, path string) (*Journal, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open journal %s", path)
	}
	return &Journal{
		runID: run.ID,
		path:  path,
		file:  f,
	}, nil
}

func (j *Journal) Path() string {
	return j.path
}

func (j *Journal) Log(in entities.Interaction) error {
	target := in.Target
	if target == "" {
		target = j.path
	}
	line, err := sonic.ConfigStd.Marshal(record{
		Time:        time.Now().UTC(),
		RunID:       j.runID,
		Target:      target,
		Step:        in.Step,
		Model:       in.Model,
		Temperature: in.Temperature,
		Prompt:      in.Prompt,
		RawResponse: in.RawResponse,
		Parsed:      in.Parsed,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s interaction", in.Step)
	}
	line = append(line, '\n')

	j.mu.Lock()
	defer j.mu.Unlock()
	if _, err := j.file.Write(line); err != nil {
		return errors.Wrapf(err, "failed to append %s interaction to %s", in.Step, j.path)
	}
	logger.Debugf("model %s answered %s (temperature=%.1f): %s", in.Model, in.Step, in.Temperature, in.RawResponse)
	return nil
}

func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}
