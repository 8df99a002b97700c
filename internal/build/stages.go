package build

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/snippetdoc/internal/logfields"
	"git.home.luguber.info/inful/snippetdoc/internal/metrics"
	"git.home.luguber.info/inful/snippetdoc/internal/render"
)

// StageName identifies one build stage.
type StageName string

const (
	StageRender      StageName = "render"
	StageWritePage   StageName = "write_page"
	StageWriteStyles StageName = "write_styles"
	StageBundle      StageName = "bundle"
)

// StageTiming records how one stage went.
type StageTiming struct {
	Name     StageName
	Duration time.Duration
	Result   metrics.ResultLabel
}

// state is threaded through the stages of one run.
type state struct {
	result *render.Result
	report *Report
}

type stageDef struct {
	name StageName
	fn   func(context.Context, *state) error
	skip func() bool
}

// runStages executes stages in order, recording timing and stopping on the first error.
func runStages(ctx context.Context, logger *slog.Logger, rec metrics.Recorder, st *state, stages []stageDef) error {
	for _, sd := range stages {
		if sd.skip != nil && sd.skip() {
			logger.Debug("Skipping stage", logfields.Stage(string(sd.name)))
			st.report.Stages = append(st.report.Stages, StageTiming{Name: sd.name, Result: metrics.ResultSkipped})
			rec.IncStageResult(string(sd.name), metrics.ResultSkipped)
			continue
		}

		t0 := time.Now()
		err := sd.fn(ctx, st)
		dur := time.Since(t0)

		result := metrics.ResultSuccess
		if err != nil {
			result = metrics.ResultFailed
		}
		st.report.Stages = append(st.report.Stages, StageTiming{Name: sd.name, Duration: dur, Result: result})
		rec.ObserveStageDuration(string(sd.name), dur)
		rec.IncStageResult(string(sd.name), result)

		if err != nil {
			logger.Error("Stage failed", logfields.Stage(string(sd.name)), logfields.Duration(dur), logfields.Error(err))
			return err
		}
		logger.Debug("Stage complete", logfields.Stage(string(sd.name)), logfields.Duration(dur))
	}
	return nil
}
