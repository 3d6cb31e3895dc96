package assembly

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"seedsynth/core/assembly/mocks"
	"seedsynth/core/corpus"
	"seedsynth/entities"
)

var baseStructure = entities.Section{
	Name:             "Message",
	LengthDescriptor: "variable",
	Children: []entities.Section{
		{Name: "Type", LengthDescriptor: "1 byte"},
		{Name: "Body", LengthDescriptor: "variable"},
	},
}

func structureOf(t entities.ProtocolType) entities.Section {
	s := baseStructure
	s.Name = string(t)
	return s
}

func messageOf(t entities.ProtocolType, typeByte, body string) entities.BinarySection {
	return entities.BinarySection{
		Name: string(t),
		Children: []entities.BinarySection{
			{Name: "Type", ByteSequence: typeByte},
			{Name: "Body", ByteSequence: body},
		},
	}
}

func newRun(t *testing.T) entities.Run {
	return entities.Run{ID: "run-1", Protocol: "TEST", Dir: t.TempDir()}
}

func newPipeline(t *testing.T, run entities.Run) (*Pipeline, *mocks.Stages, *corpus.Pool) {
	st := mocks.NewStages(t)
	pool, err := corpus.New(run.Dir)
	require.NoError(t, err)
	return New(st, pool), st, pool
}

// expectType - полный успешный проход типа через specialize/synthesize/repair
func expectType(st *mocks.Stages, run entities.Run, t entities.ProtocolType, msg entities.BinarySection) {
	structure := structureOf(t)
	st.On("SpecializeStructure", mock.Anything, run, baseStructure, t).Once().Return(structure, nil)
	st.On("Synthesize", mock.Anything, run, structure, t).Once().Return(msg, nil)
	st.On("Repair", mock.Anything, run, msg.Flatten(), structure, t).Once().Return(msg, nil)
}

func TestPipelineRun(t *testing.T) {
	run := newRun(t)
	pipeline, st, _ := newPipeline(t, run)

	st.On("InferBaseStructure", mock.Anything, run).Once().Return(baseStructure, nil)
	st.On("EnumerateTypes", mock.Anything, run).Once().
		Return([]entities.ProtocolType{"A", "B", "C", "A"}, nil)
	expectType(st, run, "A", messageOf("A", "01", "02"))
	expectType(st, run, "B", messageOf("B", "03", "04 05"))
	st.On("SpecializeStructure", mock.Anything, run, baseStructure, entities.ProtocolType("C")).
		Once().Return(structureOf("C"), nil)
	st.On("Synthesize", mock.Anything, run, structureOf("C"), entities.ProtocolType("C")).
		Once().Return(entities.BinarySection{}, errors.Wrap(entities.ErrCollaboratorTimeout, "synthesis"))
	st.On("EnumerateSequences", mock.Anything, run, []entities.ProtocolType{"A", "B", "C"}).Once().
		Return([]entities.TypeSequence{
			{"A", "C"},
			{"A", "B"},
			{"B", "A"},
			{},
			{"A", "Z"},
			{"A", "B"},
		}, nil)

	report := pipeline.Run(context.Background(), run)
	require.NoError(t, report.Err)
	assert.Equal(t, Done, report.Reached)
	assert.Equal(t, baseStructure, report.BaseStructure)

	t.Run("types", func(t *testing.T) {
		require.Len(t, report.Types, 3)
		assert.Equal(t, TypeOutcome{Type: "A", Reached: Repaired}, report.Types[0])
		assert.Equal(t, TypeOutcome{Type: "B", Reached: Repaired}, report.Types[1])
		assert.Equal(t, entities.ProtocolType("C"), report.Types[2].Type)
		assert.Equal(t, Specialized, report.Types[2].Reached)
		assert.True(t, errors.Is(report.Types[2].Err, entities.ErrCollaboratorTimeout))
	})

	t.Run("written seeds are concatenations", func(t *testing.T) {
		ab, err := os.ReadFile(filepath.Join(run.Dir, "seed_1.raw"))
		require.NoError(t, err)
		assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05}, ab)

		ba, err := os.ReadFile(filepath.Join(run.Dir, "seed_2.raw"))
		require.NoError(t, err)
		assert.Equal(t, []byte{0x03, 0x04, 0x05, 0x01, 0x02}, ba)
	})

	t.Run("discard on gap", func(t *testing.T) {
		for _, index := range []int{0, 4} {
			outcome := report.Sequences[index]
			assert.Equal(t, Discarded, outcome.Reached)
			assert.True(t, errors.Is(outcome.Err, entities.ErrMissingEncoding))
			_, err := os.Stat(filepath.Join(run.Dir, filepath.Base(outcome.Path)))
			assert.True(t, os.IsNotExist(err), "partial seed %d must be removed", index)
		}
	})

	t.Run("empty sequence creates no file", func(t *testing.T) {
		outcome := report.Sequences[3]
		assert.Equal(t, SequencesEnumerated, outcome.Reached)
		assert.ErrorIs(t, outcome.Err, errEmptySequence)
		_, err := os.Stat(filepath.Join(run.Dir, "seed_3.raw"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("duplicate content is kept", func(t *testing.T) {
		outcome := report.Sequences[5]
		assert.Equal(t, Written, outcome.Reached)
		assert.True(t, outcome.Duplicate)
		assert.False(t, report.Sequences[1].Duplicate)
		require.Len(t, report.Entries, 3)
		assert.Equal(t, report.Entries[0].Hash, report.Entries[2].Hash)
	})

	t.Run("every written seed has all its types encoded", func(t *testing.T) {
		snapshot, err := LoadSnapshot(SnapshotPath(run))
		require.NoError(t, err)
		for _, entry := range report.Entries {
			size := 0
			for _, typ := range entry.Sequence {
				raw, ok := snapshot.Registry.Encoded(typ)
				require.True(t, ok, "type %s", typ)
				size += len(raw)
			}
			assert.Equal(t, size, entry.Size)
		}
	})
}

func TestPipelineEarlyExit(t *testing.T) {
	t.Run("base structure", func(t *testing.T) {
		run := newRun(t)
		pipeline, st, _ := newPipeline(t, run)
		st.On("InferBaseStructure", mock.Anything, run).Once().
			Return(entities.Section{}, errors.Wrap(entities.ErrSchemaValidation, "missing byte_length"))

		report := pipeline.Run(context.Background(), run)
		assert.Equal(t, Start, report.Reached)
		assert.True(t, errors.Is(report.Err, entities.ErrSchemaValidation))
		assert.Empty(t, report.Types)
		assert.Empty(t, report.Sequences)
	})

	t.Run("types", func(t *testing.T) {
		run := newRun(t)
		pipeline, st, _ := newPipeline(t, run)
		st.On("InferBaseStructure", mock.Anything, run).Once().Return(baseStructure, nil)
		st.On("EnumerateTypes", mock.Anything, run).Once().
			Return(nil, errors.Wrap(entities.ErrCollaboratorTimeout, "types"))

		report := pipeline.Run(context.Background(), run)
		assert.Equal(t, StructureInferred, report.Reached)
		assert.True(t, errors.Is(report.Err, entities.ErrCollaboratorTimeout))
	})

	t.Run("sequences", func(t *testing.T) {
		run := newRun(t)
		pipeline, st, _ := newPipeline(t, run)
		st.On("InferBaseStructure", mock.Anything, run).Once().Return(baseStructure, nil)
		st.On("EnumerateTypes", mock.Anything, run).Once().Return([]entities.ProtocolType{"A"}, nil)
		expectType(st, run, "A", messageOf("A", "01", "02"))
		st.On("EnumerateSequences", mock.Anything, run, []entities.ProtocolType{"A"}).Once().
			Return(nil, errors.Wrap(entities.ErrSchemaValidation, "sequences"))

		report := pipeline.Run(context.Background(), run)
		assert.Equal(t, TypesEnumerated, report.Reached)
		assert.True(t, errors.Is(report.Err, entities.ErrSchemaValidation))
		require.Len(t, report.Types, 1)
		assert.Equal(t, Repaired, report.Types[0].Reached)
		assert.Empty(t, report.Entries)

		// реестр успели сохранить до ошибки
		_, err := os.Stat(SnapshotPath(run))
		assert.NoError(t, err)
	})
}

func TestPipelineMalformedRepair(t *testing.T) {
	run := newRun(t)
	pipeline, st, _ := newPipeline(t, run)

	structure := structureOf("A")
	synthesized := messageOf("A", "01", "02")
	st.On("InferBaseStructure", mock.Anything, run).Once().Return(baseStructure, nil)
	st.On("EnumerateTypes", mock.Anything, run).Once().Return([]entities.ProtocolType{"A", "B"}, nil)
	st.On("SpecializeStructure", mock.Anything, run, baseStructure, entities.ProtocolType("A")).Once().Return(structure, nil)
	st.On("Synthesize", mock.Anything, run, structure, entities.ProtocolType("A")).Once().Return(synthesized, nil)
	st.On("Repair", mock.Anything, run, "01 02", structure, entities.ProtocolType("A")).Once().
		Return(messageOf("A", "01", "zz 2"), nil)
	expectType(st, run, "B", messageOf("B", "03", "04 05"))
	st.On("EnumerateSequences", mock.Anything, run, mock.Anything).Once().
		Return([]entities.TypeSequence{{"B", "A", "B"}, {"B", "B", "B"}}, nil)

	report := pipeline.Run(context.Background(), run)
	require.NoError(t, report.Err)

	assert.Equal(t, Synthesized, report.Types[0].Reached)
	assert.True(t, errors.Is(report.Types[0].Err, entities.ErrMalformedHex))

	// синтезированное, но не исправленное сообщение в сид не попадает
	assert.Equal(t, Discarded, report.Sequences[0].Reached)
	assert.True(t, errors.Is(report.Sequences[0].Err, entities.ErrMissingEncoding))
	assert.Equal(t, Written, report.Sequences[1].Reached)
	assert.Equal(t, 9, report.Sequences[1].Size)
}

func TestPipelineOutputFailure(t *testing.T) {
	run := newRun(t)
	run.Dir = filepath.Join(run.Dir, "seeds")
	pipeline, st, _ := newPipeline(t, run)
	require.NoError(t, os.RemoveAll(run.Dir))

	st.On("InferBaseStructure", mock.Anything, run).Once().Return(baseStructure, nil)
	st.On("EnumerateTypes", mock.Anything, run).Once().Return([]entities.ProtocolType{"A"}, nil)
	expectType(st, run, "A", messageOf("A", "01", "02"))
	st.On("EnumerateSequences", mock.Anything, run, mock.Anything).Once().
		Return([]entities.TypeSequence{{"A", "A", "A"}}, nil)

	report := pipeline.Run(context.Background(), run)
	require.NoError(t, report.Err)
	assert.Equal(t, Done, report.Reached)
	require.Len(t, report.Sequences, 1)
	assert.Equal(t, Discarded, report.Sequences[0].Reached)
	assert.True(t, errors.Is(report.Sequences[0].Err, entities.ErrOutputWrite))
	assert.Empty(t, report.Entries)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "STRUCTURE_INFERRED", StructureInferred.String())
	assert.Equal(t, "DISCARDED", Discarded.String())
	assert.Equal(t, "UNKNOWN", State(200).String())
}

func TestPipelineTypeFailureSkipsLaterStages(t *testing.T) {
	run := newRun(t)
	pipeline, st, _ := newPipeline(t, run)

	st.On("InferBaseStructure", mock.Anything, run).Once().Return(baseStructure, nil)
	st.On("EnumerateTypes", mock.Anything, run).Once().
		Return([]entities.ProtocolType{"A", "B", "C"}, nil)

	// A: уточнение структуры не удалось, генерации и исправления быть не должно
	st.On("SpecializeStructure", mock.Anything, run, baseStructure, entities.ProtocolType("A")).
		Once().Return(entities.Section{}, errors.Wrap(entities.ErrSchemaValidation, "missing byte_length"))

	// B: модель не ответила на исправление
	structureB := structureOf("B")
	synthesizedB := messageOf("B", "03", "04 05")
	st.On("SpecializeStructure", mock.Anything, run, baseStructure, entities.ProtocolType("B")).
		Once().Return(structureB, nil)
	st.On("Synthesize", mock.Anything, run, structureB, entities.ProtocolType("B")).
		Once().Return(synthesizedB, nil)
	st.On("Repair", mock.Anything, run, "03 04 05", structureB, entities.ProtocolType("B")).
		Once().Return(entities.BinarySection{}, errors.Wrap(entities.ErrCollaboratorTimeout, "repair"))

	expectType(st, run, "C", messageOf("C", "06", "07"))
	st.On("EnumerateSequences", mock.Anything, run, []entities.ProtocolType{"A", "B", "C"}).Once().
		Return([]entities.TypeSequence{{"C", "C", "C"}, {"B", "C", "C"}}, nil)

	report := pipeline.Run(context.Background(), run)
	require.NoError(t, report.Err)
	require.Len(t, report.Types, 3)

	assert.Equal(t, TypesEnumerated, report.Types[0].Reached)
	assert.True(t, errors.Is(report.Types[0].Err, entities.ErrSchemaValidation))

	assert.Equal(t, Synthesized, report.Types[1].Reached)
	assert.True(t, errors.Is(report.Types[1].Err, entities.ErrCollaboratorTimeout))

	assert.Equal(t, TypeOutcome{Type: "C", Reached: Repaired}, report.Types[2])

	// синтезированное сообщение B без исправления в сид не попадает
	assert.Equal(t, Written, report.Sequences[0].Reached)
	assert.Equal(t, Discarded, report.Sequences[1].Reached)
	assert.True(t, errors.Is(report.Sequences[1].Err, entities.ErrMissingEncoding))
}
