package entities

import "time"

// ResponseSchema - json schema, которой должен соответствовать ответ модели
type ResponseSchema struct {
	Name   string
	Schema map[string]any
}

type ModelRequest struct {
	// имя шага, используется в логах и метриках
	Name         string
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	Schema       ResponseSchema
	Timeout      time.Duration
}

type ModelResponse struct {
	Model   string
	Content string
}

// Interaction - запись для журнала обращений к модели
type Interaction struct {
	Target      string
	Step        string
	Model       string
	Temperature float64
	Prompt      string
	RawResponse string
	Parsed      any
}
