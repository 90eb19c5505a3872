package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/duelcore/resolver/pipeline"
)

func appendStage(name string) pipeline.Stage {
	return pipeline.StageFunc{
		StageName: name,
		Fn: func(_ context.Context, value any) (any, error) {
			return append(value.([]string), name), nil
		},
	}
}

func TestSequentialRunsStagesInOrder(t *testing.T) {
	p := pipeline.Sequential("turn",
		appendStage("snapshot"),
		appendStage("classify"),
		appendStage("apply"),
	)

	out, err := p.Run(context.Background(), []string(nil))
	require.NoError(t, err)
	require.Equal(t, []string{"snapshot", "classify", "apply"}, out)
}

func TestStageErrorAbortsPipeline(t *testing.T) {
	boom := errors.New("invariant broken")
	ran := false

	p := pipeline.Sequential("turn",
		appendStage("snapshot"),
		pipeline.StageFunc{StageName: "explode", Fn: func(_ context.Context, value any) (any, error) {
			return value, boom
		}},
		pipeline.StageFunc{StageName: "never", Fn: func(_ context.Context, value any) (any, error) {
			ran = true
			return value, nil
		}},
	)

	out, err := p.Run(context.Background(), []string(nil))
	require.ErrorIs(t, err, boom)
	require.Equal(t, []string{"snapshot"}, out, "the failing stage's value is still returned")
	require.False(t, ran, "stages after a failure must not run")
}

func TestStageFuncName(t *testing.T) {
	s := pipeline.StageFunc{StageName: "cleanup"}
	require.Equal(t, "cleanup", s.Name())
}
