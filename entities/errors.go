package entities

import "github.com/pkg/errors"

// виды ошибок, которые видит оркестрация; проверяются через errors.Is
var (
	// ErrCollaboratorTimeout - модель не ответила за отведенное время
	ErrCollaboratorTimeout = errors.New("collaborator timeout")
	// ErrSchemaValidation - ответ модели не соответствует ожидаемой схеме
	ErrSchemaValidation = errors.New("schema validation failure")
	// ErrMissingEncoding - в последовательности есть тип без проверенного байтового представления
	ErrMissingEncoding = errors.New("missing encoding")
	// ErrOutputWrite - не удалось записать сид на диск
	ErrOutputWrite = errors.New("output write failure")

	ErrStructureFormat = errors.New("structure format error")
	ErrMalformedHex    = errors.New("malformed hex byte sequence")
)
