package inference

import (
	"context"

	"seedsynth/entities"
)

// EnumerateTypes - типы клиентских запросов в порядке, который вернула модель
func (e *Engine) EnumerateTypes(ctx context.Context, run entities.Run) ([]entities.ProtocolType, error) {
	var types []entities.ProtocolType
	err := e.ask(ctx, stepTypes, e.stages.Types,
		helpfulSystemPrompt, typesPrompt(run.Protocol), typesSchema,
		func(content string) (any, error) {
			res, err := decodeTypes(content)
			if err != nil {
				return nil, err
			}
			types = res
			return res, nil
		})
	if err != nil {
		return nil, err
	}
	return types, nil
}

// EnumerateSequences - последовательности типов для покрытия состояний протокола.
// Соответствие автомату состояний не проверяется
func (e *Engine) EnumerateSequences(
	ctx context.Context,
	run entities.Run,
	types []entities.ProtocolType,
) ([]entities.TypeSequence, error) {
	var sequences []entities.TypeSequence
	err := e.ask(ctx, stepSequences, e.stages.Sequences,
		helpfulSystemPrompt, sequencesPrompt(run.Protocol, types), sequencesSchema,
		func(content string) (any, error) {
			res, err := decodeSequences(content)
			if err != nil {
				return nil, err
			}
			sequences = res
			return res, nil
		})
	if err != nil {
		return nil, err
	}
	return sequences, nil
}
