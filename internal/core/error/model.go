package errx

import (
	"context"
	"errors"
	"net/http"
)

// PlanTimeoutMessage is shown when a plan did not finish within its deadline.
const PlanTimeoutMessage = "travel plan generation timed out"

// WrapModel maps language model failures to the unified error type.
func WrapModel(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return New(err, http.StatusGatewayTimeout, PlanTimeoutMessage)
	}
	return New(err, http.StatusBadGateway, ModelErrorMessage)
}
