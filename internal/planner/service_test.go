package planner

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travel-planner-agent/server/internal/agent/model"
	errx "github.com/travel-planner-agent/server/internal/core/error"
)

type fakeRunner struct {
	calls []model.PlanInput
	out   string
	err   error
	wait  bool
}

func (f *fakeRunner) Invoke(ctx context.Context, in model.PlanInput) (string, error) {
	f.calls = append(f.calls, in)
	if f.wait {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.out, f.err
}

func TestPlanRejectsBlankRequest(t *testing.T) {
	r := &fakeRunner{}
	_, err := NewService(r, 0).Plan(context.Background(), "   \n")
	require.ErrorIs(t, err, errx.ErrEmptyRequest)
	assert.Equal(t, http.StatusBadRequest, errx.StatusOf(err))
	assert.Empty(t, r.calls)
}

func TestPlanRejectsMissingCity(t *testing.T) {
	r := &fakeRunner{}
	_, err := NewService(r, 0).Plan(context.Background(), "I want a holiday")
	require.ErrorIs(t, err, errx.ErrCityNotFound)
	assert.Equal(t, http.StatusUnprocessableEntity, errx.StatusOf(err))
	assert.Equal(t, errx.CityNotFoundMessage, errx.MessageOf(err))
	assert.Empty(t, r.calls)
}

func TestPlanPassesCityAndRequest(t *testing.T) {
	r := &fakeRunner{out: "# Plan"}
	text := "Plan a 3-day trip to Paris in May"

	p, err := NewService(r, time.Minute).Plan(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, &Plan{City: "Paris in May", Markdown: "# Plan"}, p)
	require.Len(t, r.calls, 1)
	assert.Equal(t, model.PlanInput{City: "Paris in May", Request: text}, r.calls[0])
}

func TestPlanWrapsModelFailure(t *testing.T) {
	cause := errors.New("quota exceeded")
	_, err := NewService(&fakeRunner{err: cause}, 0).Plan(context.Background(), "Trip to London")
	require.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusBadGateway, errx.StatusOf(err))
	assert.Equal(t, errx.ModelErrorMessage, errx.MessageOf(err))
}

func TestPlanTimeout(t *testing.T) {
	_, err := NewService(&fakeRunner{wait: true}, 10*time.Millisecond).Plan(context.Background(), "Trip to London")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, http.StatusGatewayTimeout, errx.StatusOf(err))
}
