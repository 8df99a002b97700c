package build

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"

	"git.home.luguber.info/inful/snippetdoc/internal/bundle"
	"git.home.luguber.info/inful/snippetdoc/internal/config"
	"git.home.luguber.info/inful/snippetdoc/internal/example"
	ferrors "git.home.luguber.info/inful/snippetdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/snippetdoc/internal/highlight"
	"git.home.luguber.info/inful/snippetdoc/internal/logfields"
	"git.home.luguber.info/inful/snippetdoc/internal/metrics"
	"git.home.luguber.info/inful/snippetdoc/internal/render"
)

// Report summarizes one build.
type Report struct {
	BuildID       string
	Template      string
	PagePath      string
	StylesPath    string // empty when no stylesheet was written
	BundlePath    string // empty when bundling was skipped
	Examples      []string
	ScriptCount   int // accumulator entries including the header
	BundlerOutput string
	Stages        []StageTiming
	Duration      time.Duration
}

// Builder wires the renderer, highlighter and bundler for one configuration.
type Builder struct {
	cfg         *config.Config
	highlighter *highlight.Chroma
	renderer    *render.Renderer
	bundler     bundle.Bundler
	recorder    metrics.Recorder
}

// New builds the pipeline for cfg. Templates are read from
// cfg.Template.Dir and examples from cfg.Examples.Dir.
func New(cfg *config.Config) (*Builder, error) {
	h, err := highlight.NewChroma(cfg.HighlightOptions())
	if err != nil {
		return nil, err
	}
	loader := example.NewLoader(os.DirFS(cfg.Examples.Dir), cfg.Markers())

	return &Builder{
		cfg:         cfg,
		highlighter: h,
		renderer:    render.NewRenderer(os.DirFS(cfg.Template.Dir), loader, h),
		bundler:     bundle.NewBinaryBundler(cfg.Bundle.Command, cfg.Bundle.Args, cfg.Bundle.OutputFlag),
		recorder:    metrics.NoopRecorder{},
	}, nil
}

// WithBundler replaces the external bundler, e.g. with a NoopBundler in tests.
func (b *Builder) WithBundler(bd bundle.Bundler) *Builder {
	if bd != nil {
		b.bundler = bd
	}
	return b
}

// WithRecorder injects a metrics recorder.
func (b *Builder) WithRecorder(r metrics.Recorder) *Builder {
	if r != nil {
		b.recorder = r
	}
	return b
}

// Run executes the build once.
func (b *Builder) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{
		BuildID:  uuid.NewString(),
		Template: filepath.Join(b.cfg.Template.Dir, b.cfg.Template.Name),
	}
	logger := slog.Default().With(logfields.BuildID(report.BuildID))
	logger.Info("Starting build",
		logfields.Template(report.Template),
		slog.String("examples_dir", b.cfg.Examples.Dir))

	st := &state{report: report}
	stages := []stageDef{
		{name: StageRender, fn: b.stageRender},
		{name: StageWritePage, fn: b.stageWritePage},
		{name: StageWriteStyles, fn: b.stageWriteStyles, skip: func() bool { return b.cfg.Output.Styles == "" }},
		{name: StageBundle, fn: b.stageBundle, skip: func() bool { return b.cfg.Bundle.Skip }},
	}

	err := runStages(ctx, logger, b.recorder, st, stages)
	report.Duration = time.Since(start)
	b.recorder.ObserveBuildDuration(report.Duration)
	if err != nil {
		b.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		return report, err
	}
	b.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)

	logger.Info("Build complete",
		logfields.Count(len(report.Examples)),
		logfields.Path(report.PagePath),
		logfields.Duration(report.Duration))
	return report, nil
}

func (b *Builder) stageRender(_ context.Context, st *state) error {
	res, err := b.renderer.Render(b.cfg.Template.Name, b.cfg.Bundle.Header, b.cfg.Template.Data)
	if err != nil {
		return err
	}
	st.result = res
	st.report.Examples = res.Examples()
	st.report.ScriptCount = res.Scripts.Len()
	b.recorder.AddExamples(len(res.Fragments))
	return nil
}

func (b *Builder) stageWritePage(_ context.Context, st *state) error {
	if err := writeFile(b.cfg.Output.Page, st.result.Page); err != nil {
		return err
	}
	st.report.PagePath = b.cfg.Output.Page
	return nil
}

func (b *Builder) stageWriteStyles(_ context.Context, st *state) error {
	var css bytes.Buffer
	if err := b.highlighter.WriteCSS(&css); err != nil {
		return err
	}
	if err := writeFile(b.cfg.Output.Styles, css.String()); err != nil {
		return err
	}
	st.report.StylesPath = b.cfg.Output.Styles
	return nil
}

func (b *Builder) stageBundle(ctx context.Context, st *state) error {
	entry, cleanup, err := bundle.WriteEntry(b.cfg.Bundle.EntryDir, st.result.Scripts)
	if err != nil {
		return err
	}
	defer cleanup()

	out, err := b.bundler.Bundle(ctx, entry, b.cfg.Output.Bundle)
	st.report.BundlerOutput = out.Combined
	if err != nil {
		return err
	}
	st.report.BundlePath = b.cfg.Output.Bundle
	return nil
}

// writeFile atomically replaces path with content, creating parent directories.
func writeFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "create output directory").
				Fatal().
				WithContext("path", dir).
				Build()
		}
	}
	_, statErr := os.Stat(path)
	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "write output file").
			Fatal().
			WithContext("path", path).
			Build()
	}
	// atomic keeps the mode of a replaced file; new files start out 0600.
	if os.IsNotExist(statErr) {
		if err := os.Chmod(path, 0o644); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "chmod output file").
				Fatal().
				WithContext("path", path).
				Build()
		}
	}
	return nil
}
