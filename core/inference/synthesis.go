package inference

import (
	"context"

	"seedsynth/entities"
	"seedsynth/infra/config"
)

// Synthesize - сообщение заданного типа по его структуре
func (e *Engine) Synthesize(
	ctx context.Context,
	run entities.Run,
	structure entities.Section,
	t entities.ProtocolType,
) (entities.BinarySection, error) {
	return e.message(ctx, stepSynthesis, e.stages.Synthesis,
		synthesisSystemPrompt, synthesisPrompt(run.Protocol, structure, t))
}

// Repair - приводит сгенерированное сообщение в соответствие со структурой.
// flattened - байты сообщения в виде "01 00 ff"
func (e *Engine) Repair(
	ctx context.Context,
	run entities.Run,
	flattened string,
	structure entities.Section,
	t entities.ProtocolType,
) (entities.BinarySection, error) {
	return e.message(ctx, stepRepair, e.stages.Repair,
		repairSystemPrompt, repairPrompt(run.Protocol, flattened, structure, t))
}

func (e *Engine) message(
	ctx context.Context,
	step string,
	call config.Call,
	systemPrompt, userPrompt string,
) (entities.BinarySection, error) {
	var msg entities.BinarySection
	err := e.ask(ctx, step, call, systemPrompt, userPrompt, messageSchema,
		func(content string) (any, error) {
			res, err := decodeMessage(content)
			if err != nil {
				return nil, err
			}
			msg = res
			return entities.EncodeBinarySection(res), nil
		})
	if err != nil {
		return entities.BinarySection{}, err
	}
	return msg, nil
}
