package scheduler

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopJob struct{}

func (noopJob) Run() error   { return nil }
func (noopJob) Name() string { return "noop" }

func TestAddJobAcceptsDescriptorSchedules(t *testing.T) {
	s := New(zerolog.Nop())
	defer s.Stop()

	require.NoError(t, s.AddJob("@every 15m", noopJob{}))
	require.NoError(t, s.AddJob("0 */5 * * * *", noopJob{}))
}

func TestAddJobRejectsMalformedSchedule(t *testing.T) {
	s := New(zerolog.Nop())
	defer s.Stop()

	assert.Error(t, s.AddJob("every now and then", noopJob{}))
}
