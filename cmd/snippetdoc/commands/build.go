package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/snippetdoc/internal/build"
	"git.home.luguber.info/inful/snippetdoc/internal/config"
	"git.home.luguber.info/inful/snippetdoc/internal/logfields"
	"git.home.luguber.info/inful/snippetdoc/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	SkipBundle  bool   `name:"skip-bundle" help:"Render and write the page without running the bundler"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics to this textfile (overrides metrics.textfile)"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if b.SkipBundle {
		cfg.Bundle.Skip = true
	}
	if b.MetricsFile != "" {
		cfg.Metrics.Textfile = b.MetricsFile
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	_, err = RunBuild(ctx, g.out(), cfg)
	return err
}

// RunBuild runs one build and relays the bundler's output to out.
func RunBuild(ctx context.Context, out io.Writer, cfg *config.Config) (*build.Report, error) {
	builder, err := build.New(cfg)
	if err != nil {
		return nil, err
	}

	var promRec *metrics.PrometheusRecorder
	if cfg.Metrics.Textfile != "" {
		promRec = metrics.NewPrometheusRecorder(prom.NewRegistry())
		builder.WithRecorder(promRec)
	}

	report, err := builder.Run(ctx)
	if report != nil && report.BundlerOutput != "" {
		_, _ = io.WriteString(out, report.BundlerOutput)
		if !strings.HasSuffix(report.BundlerOutput, "\n") {
			_, _ = io.WriteString(out, "\n")
		}
	}

	if promRec != nil {
		if werr := promRec.WriteTextfile(cfg.Metrics.Textfile); werr != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Path(cfg.Metrics.Textfile), logfields.Error(werr))
		}
	}
	if err != nil {
		return report, err
	}

	_, _ = fmt.Fprintf(out, "Wrote %s (%d examples)\n", report.PagePath, len(report.Examples))
	if report.BundlePath != "" {
		_, _ = fmt.Fprintf(out, "Bundled %s\n", report.BundlePath)
	}
	return report, nil
}
