package handler

import (
	"errors"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// errorBody documents the error envelope rendered by the API error handler.
type errorBody struct {
	Success bool     `json:"success" example:"false"`
	Errors  []string `json:"errors" example:"Não autorizado"`
}

func errorsIsAny(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

func isValidation(err error) bool {
	var ve *domain.ValidationError
	return errors.As(err, &ve)
}
