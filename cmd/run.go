package main

import (
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"seedsynth/core/assembly"
	"seedsynth/core/inference"
	"seedsynth/entities"
	"seedsynth/infra/utils/logger"
)

const (
	runTimestampLayout = "20060102T150405Z"
	runIDPrefixLen     = 8
)

// protocolDir - имя протокола как имя директории, всё кроме букв, цифр, '-' и '.' заменяется на '_'
func protocolDir(protocol string) (string, error) {
	protocol = strings.TrimSpace(protocol)
	if protocol == "" {
		return "", errors.New("protocol name is empty")
	}
	dir := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.' {
			return r
		}
		return '_'
	}, protocol)
	if strings.Trim(dir, ".") == "" {
		return "", errors.Errorf("protocol name %q cannot be used as a directory", protocol)
	}
	return dir, nil
}

// newRun - <output>/<protocol>/<UTC время>_<начало id запуска>
func newRun(protocol, input, output string, now time.Time, id uuid.UUID) (entities.Run, error) {
	dir, err := protocolDir(protocol)
	if err != nil {
		return entities.Run{}, err
	}
	runID := id.String()
	now = now.UTC()
	return entities.Run{
		ID:        runID,
		Protocol:  strings.TrimSpace(protocol),
		InputPath: input,
		OutputDir: output,
		Dir:       filepath.Join(output, dir, now.Format(runTimestampLayout)+"_"+runID[:runIDPrefixLen]),
		StartedAt: now,
	}, nil
}

func logReport(report assembly.Report, latency []inference.LatencySummary) {
	run := report.Run
	if report.Err != nil {
		logger.Errorf(report.Err, "[%s] run %s stopped at %s", run.Protocol, run.ID, report.Reached)
	}

	repaired := 0
	for _, outcome := range report.Types {
		if outcome.Err != nil {
			logger.Warnf("[%s] type %s stopped at %s: %v", run.Protocol, outcome.Type, outcome.Reached, outcome.Err)
			continue
		}
		repaired++
	}
	discarded, duplicates := 0, 0
	for _, outcome := range report.Sequences {
		switch {
		case outcome.Reached == assembly.Written && outcome.Duplicate:
			duplicates++
		case outcome.Reached != assembly.Written:
			discarded++
		}
	}
	for _, l := range latency {
		logger.Infof("model latency %s: count=%d p50=%s p95=%s max=%s", l.Step, l.Count, l.P50, l.P95, l.Max)
	}
	logger.Infof("[%s] run %s finished in %s: %d/%d types encoded, %d seeds written (%d duplicates), %d sequences discarded, output %s",
		run.Protocol, run.ID, time.Since(run.StartedAt).Round(time.Millisecond),
		repaired, len(report.Types), report.Written(), duplicates, discarded, run.Dir)
}
