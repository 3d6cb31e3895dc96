package assembly

import (
	"context"

	"github.com/pkg/errors"

	"seedsynth/core/corpus"
	"seedsynth/entities"
	"seedsynth/infra/utils/logger"
)

type stages interface {
	InferBaseStructure(ctx context.Context, run entities.Run) (entities.Section, error)
	SpecializeStructure(ctx context.Context, run entities.Run, base entities.Section, t entities.ProtocolType) (entities.Section, error)
	EnumerateTypes(ctx context.Context, run entities.Run) ([]entities.ProtocolType, error)
	EnumerateSequences(ctx context.Context, run entities.Run, types []entities.ProtocolType) ([]entities.TypeSequence, error)
	Synthesize(ctx context.Context, run entities.Run, structure entities.Section, t entities.ProtocolType) (entities.BinarySection, error)
	Repair(ctx context.Context, run entities.Run, flattened string, structure entities.Section, t entities.ProtocolType) (entities.BinarySection, error)
}

type seedPool interface {
	Open(index int) (*corpus.Target, error)
	Add(entry entities.CorpusEntry) (duplicate bool)
	Entries() []entities.CorpusEntry
}

// TypeOutcome - до какого состояния дошел тип сообщения и почему остановился
type TypeOutcome struct {
	Type    entities.ProtocolType
	Reached State
	Err     error
}

type SequenceOutcome struct {
	Index     int
	Sequence  entities.TypeSequence
	Reached   State
	Path      string
	Size      int
	Duplicate bool
	Err       error
}

type Report struct {
	Run           entities.Run
	BaseStructure entities.Section
	Types         []TypeOutcome
	Sequences     []SequenceOutcome
	Entries       []entities.CorpusEntry
	Reached       State
	// ошибка, из-за которой запуск закончился раньше
	Err error
}

// Written - сколько сидов записано на диск
func (r Report) Written() int {
	return len(r.Entries)
}

// Pipeline - последовательная сборка корпуса: структура, типы, сообщения по типам,
// последовательности, файлы сидов. Ошибка отдельного типа или последовательности
// не останавливает запуск
type Pipeline struct {
	stages stages
	pool   seedPool
}

func New(engine stages, pool seedPool) *Pipeline {
	return &Pipeline{
		stages: engine,
		pool:   pool,
	}
}

func transition(run entities.Run, from, to State, format string, args ...interface{}) {
	stateTransitions.WithLabelValues(to.String()).Inc()
	if format == "" {
		logger.Infof("[%s] %s -> %s", run.Protocol, from, to)
		return
	}
	logger.Infof("[%s] %s -> %s: "+format, append([]interface{}{run.Protocol, from, to}, args...)...)
}

func (p *Pipeline) Run(ctx context.Context, run entities.Run) Report {
	report := Report{Run: run, Reached: Start}

	base, err := p.stages.InferBaseStructure(ctx, run)
	if err != nil {
		report.Err = errors.WithMessage(err, "failed to infer base structure")
		logger.Errorf(report.Err, "[%s] nothing to process", run.Protocol)
		return report
	}
	report.BaseStructure = base
	report.Reached = StructureInferred
	transition(run, Start, StructureInferred, "\n%s", base.Display())

	enumerated, err := p.stages.EnumerateTypes(ctx, run)
	if err != nil {
		report.Err = errors.WithMessage(err, "failed to enumerate message types")
		logger.Errorf(report.Err, "[%s] nothing to process", run.Protocol)
		return report
	}
	types := uniqueTypes(run, enumerated)
	report.Reached = TypesEnumerated
	transition(run, StructureInferred, TypesEnumerated, "%d types", len(types))

	reg := NewRegistry()
	for _, t := range types {
		outcome := p.processType(ctx, run, base, t, reg)
		typesReached.WithLabelValues(outcome.Reached.String()).Inc()
		report.Types = append(report.Types, outcome)
	}

	if err := SaveSnapshot(SnapshotPath(run), run, base, reg); err != nil {
		logger.Errorf(err, "[%s] failed to save registry snapshot", run.Protocol)
	}

	sequences, err := p.stages.EnumerateSequences(ctx, run, types)
	if err != nil {
		report.Err = errors.WithMessage(err, "failed to enumerate type sequences")
		logger.Errorf(report.Err, "[%s] no seeds will be written", run.Protocol)
		return report
	}
	report.Reached = SequencesEnumerated
	transition(run, TypesEnumerated, SequencesEnumerated, "%d sequences", len(sequences))

	for i, seq := range sequences {
		outcome := p.assemble(run, i, seq, reg)
		sequencesAssembled.WithLabelValues(outcome.Reached.String()).Inc()
		report.Sequences = append(report.Sequences, outcome)
	}

	report.Entries = p.pool.Entries()
	report.Reached = Done
	transition(run, SequencesEnumerated, Done, "%d of %d seeds written", len(report.Entries), len(sequences))
	return report
}

// uniqueTypes - повторы убираются, остается первое вхождение
func uniqueTypes(run entities.Run, types []entities.ProtocolType) []entities.ProtocolType {
	seen := make(map[entities.ProtocolType]struct{}, len(types))
	res := make([]entities.ProtocolType, 0, len(types))
	for _, t := range types {
		if _, ok := seen[t]; ok {
			logger.Warnf("[%s] message type %s enumerated twice, keeping the first", run.Protocol, t)
			continue
		}
		seen[t] = struct{}{}
		res = append(res, t)
	}
	return res
}

// processType - specialize -> synthesize -> repair; ошибка пропускает только этот тип
func (p *Pipeline) processType(
	ctx context.Context,
	run entities.Run,
	base entities.Section,
	t entities.ProtocolType,
	reg *Registry,
) TypeOutcome {
	outcome := TypeOutcome{Type: t, Reached: TypesEnumerated}
	fail := func(err error, msg string) TypeOutcome {
		outcome.Err = errors.WithMessagef(err, "%s %s", msg, t)
		logger.Errorf(outcome.Err, "[%s] skipping type %s after %s", run.Protocol, t, outcome.Reached)
		return outcome
	}

	structure, err := p.stages.SpecializeStructure(ctx, run, base, t)
	if err != nil {
		return fail(err, "failed to specialize structure of")
	}
	reg.PutStructure(t, structure)
	outcome.Reached = Specialized
	transition(run, TypesEnumerated, Specialized, "%s", t)

	synthesized, err := p.stages.Synthesize(ctx, run, structure, t)
	if err != nil {
		return fail(err, "failed to synthesize")
	}
	outcome.Reached = Synthesized
	transition(run, Specialized, Synthesized, "%s", t)

	repaired, err := p.stages.Repair(ctx, run, synthesized.Flatten(), structure, t)
	if err != nil {
		return fail(err, "failed to repair")
	}
	if err := reg.PutMessage(t, repaired); err != nil {
		return fail(err, "repaired message is not valid for")
	}
	outcome.Reached = Repaired
	transition(run, Synthesized, Repaired, "%s (%s)", t, repaired.Flatten())
	return outcome
}
