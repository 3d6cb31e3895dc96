package assembly

import (
	"github.com/pkg/errors"

	"seedsynth/entities"
	"seedsynth/infra/utils/logger"
)

var errEmptySequence = errors.New("empty type sequence")

// assemble - пишет сид для одной последовательности. Если для какого-то типа нет
// проверенного сообщения, частично записанный файл удаляется
func (p *Pipeline) assemble(run entities.Run, index int, seq entities.TypeSequence, reg *Registry) SequenceOutcome {
	outcome := SequenceOutcome{Index: index, Sequence: seq, Reached: SequencesEnumerated}
	if len(seq) == 0 {
		outcome.Err = errEmptySequence
		logger.Warnf("[%s] sequence %d is empty, skipping", run.Protocol, index)
		return outcome
	}
	if len(seq) < entities.MinSequenceLen || len(seq) > entities.MaxSequenceLen {
		logger.Warnf("[%s] sequence %d %s has %d types, expected %d to %d",
			run.Protocol, index, seq, len(seq), entities.MinSequenceLen, entities.MaxSequenceLen)
	}

	target, err := p.pool.Open(index)
	if err != nil {
		outcome.Reached = Discarded
		outcome.Err = err
		logger.Errorf(err, "[%s] sequence %d discarded", run.Protocol, index)
		return outcome
	}
	outcome.Reached = Assembling
	outcome.Path = target.Path()
	transition(run, SequencesEnumerated, Assembling, "%d %s", index, seq)

	discard := func(err error) SequenceOutcome {
		outcome.Reached = Discarded
		outcome.Err = err
		if rmErr := target.Discard(); rmErr != nil {
			logger.Errorf(rmErr, "[%s] failed to remove partial seed %s", run.Protocol, target.Path())
		}
		transition(run, Assembling, Discarded, "%d %s: %v", index, seq, err)
		return outcome
	}

	for _, t := range seq {
		raw, ok := reg.Encoded(t)
		if !ok {
			return discard(errors.Wrapf(entities.ErrMissingEncoding, "type %s", t))
		}
		if err := target.Append(raw); err != nil {
			return discard(err)
		}
	}

	entry, err := target.Commit(seq)
	if err != nil {
		return discard(err)
	}
	outcome.Reached = Written
	outcome.Size = entry.Size
	outcome.Duplicate = p.pool.Add(entry)
	transition(run, Assembling, Written, "%s (%d bytes)", entry.Path, entry.Size)
	return outcome
}
