package inference

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"seedsynth/entities"
	"seedsynth/infra/config"
	"seedsynth/infra/utils/logger"
)

const (
	stepStructure  = "structure"
	stepSpecialize = "specialize"
	stepTypes      = "types"
	stepSequences  = "sequences"
	stepSynthesis  = "synthesis"
	stepRepair     = "repair"
)

type modelClnt interface {
	// Complete - один запрос к модели с таймаутом из запроса
	Complete(ctx context.Context, req entities.ModelRequest) (entities.ModelResponse, error)
}

type resultLogger interface {
	Log(in entities.Interaction) error
}

// Engine - все обращения к модели: вывод структуры, перечисление типов и
// последовательностей, генерация и исправление сообщений
type Engine struct {
	model   modelClnt
	journal resultLogger
	stages  config.Stages
	latency *latencyTracker
}

func New(model modelClnt, journal resultLogger, stages config.Stages) *Engine {
	return &Engine{
		model:   model,
		journal: journal,
		stages:  stages,
		latency: newLatencyTracker(),
	}
}

// decodeFunc - разбирает ответ модели и возвращает то, что попадет в журнал
type decodeFunc func(content string) (any, error)

func (e *Engine) ask(
	ctx context.Context,
	step string,
	call config.Call,
	systemPrompt, userPrompt string,
	schema entities.ResponseSchema,
	decode decodeFunc,
) error {
	req := entities.ModelRequest{
		Name:         step,
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		Temperature:  call.Temperature,
		Schema:       schema,
		Timeout:      time.Duration(call.Timeout),
	}

	started := time.Now()
	resp, err := e.model.Complete(ctx, req)
	e.latency.observe(step, time.Since(started))
	if err != nil {
		modelCallsTotal.WithLabelValues(step, callResult(err)).Inc()
		return errors.WithMessagef(err, "%s call failed", step)
	}

	parsed, decodeErr := decode(resp.Content)
	modelCallsTotal.WithLabelValues(step, callResult(decodeErr)).Inc()

	if logErr := e.journal.Log(entities.Interaction{
		Step:        step,
		Model:       resp.Model,
		Temperature: call.Temperature,
		Prompt:      userPrompt,
		RawResponse: resp.Content,
		Parsed:      parsed,
	}); logErr != nil {
		logger.Errorf(logErr, "failed to journal %s interaction", step)
	}

	if decodeErr != nil {
		return errors.WithMessagef(decodeErr, "%s response rejected", step)
	}
	return nil
}

func callResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, entities.ErrCollaboratorTimeout):
		return "timeout"
	case errors.Is(err, entities.ErrSchemaValidation):
		return "schema"
	}
	return "error"
}

// Latency - квантили времени ответа модели по шагам
func (e *Engine) Latency() []LatencySummary {
	return e.latency.summary()
}
