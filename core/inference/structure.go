package inference

import (
	"context"

	"seedsynth/entities"
	"seedsynth/infra/utils/logger"
)

// InferBaseStructure - общая для всех типов сообщений структура протокола
func (e *Engine) InferBaseStructure(ctx context.Context, run entities.Run) (entities.Section, error) {
	var structure entities.Section
	err := e.ask(ctx, stepStructure, e.stages.Structure,
		helpfulSystemPrompt, structurePrompt(run.Protocol), structureSchema,
		func(content string) (any, error) {
			s, err := decodeStructure(content)
			if err != nil {
				return nil, err
			}
			structure = s
			return entities.EncodeSection(s), nil
		})
	if err != nil {
		return entities.Section{}, err
	}
	logger.Debugf("%s base structure: depth %d, %d leaves", run.Protocol, structure.Depth(), structure.Leaves())
	return structure, nil
}

// SpecializeStructure - структура конкретного типа сообщения на основе базовой
func (e *Engine) SpecializeStructure(
	ctx context.Context,
	run entities.Run,
	base entities.Section,
	t entities.ProtocolType,
) (entities.Section, error) {
	var structure entities.Section
	err := e.ask(ctx, stepSpecialize, e.stages.Specialize,
		helpfulSystemPrompt, specializePrompt(run.Protocol, base, t), structureSchema,
		func(content string) (any, error) {
			s, err := decodeStructure(content)
			if err != nil {
				return nil, err
			}
			structure = s
			return entities.EncodeSection(s), nil
		})
	if err != nil {
		return entities.Section{}, err
	}
	return structure, nil
}
