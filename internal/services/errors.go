package services

import (
	"errors"
	"net/http"

	"github.com/senyabanana/brief-responses-frontend/internal/models"
)

// translateAPIError приводит ошибку внешнего API к ответу пользователю.
func translateAPIError(err error, action string) error {
	if err == nil {
		return nil
	}
	var errorResponse *models.ErrorResponse
	if errors.As(err, &errorResponse) {
		return err
	}
	var apiErr *models.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusNotFound:
			return models.NotFound().Wrap(err)
		case apiErr.IsServerError():
			return models.Unavailable(action).Wrap(err)
		}
	}
	return models.NewErrorResponse(http.StatusInternalServerError, action).Wrap(err)
}

// IneligibleError - поставщик не может работать с брифом.
type IneligibleError struct {
	Verdict EligibilityVerdict
}

func (e *IneligibleError) Error() string {
	return "supplier is not eligible for brief: " + string(e.Verdict.Reason)
}
