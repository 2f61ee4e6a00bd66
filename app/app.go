package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	log "github.com/sirupsen/logrus"

	"github.com/AnkushinDaniil/multiplane/entity"
	"github.com/AnkushinDaniil/multiplane/entity/settings"
)

type App struct {
	Output   string
	Settings *settings.Settings
}

func New(output string, s *settings.Settings) *App {
	return &App{
		Output:   output,
		Settings: s,
	}
}

// Run renders the emitter layout chart into a.Output.
func (a *App) Run(ctx context.Context) error {
	appTime := time.Now()
	defer func() {
		log.WithField("time", time.Since(appTime)).Debug("App finished")
	}()

	f, err := os.Create(a.Output)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if err := a.Render(ctx, f); err != nil {
		return err
	}
	log.WithField("output", a.Output).Info("Chart saved")
	return nil
}

// Render writes the emitter layout chart as HTML to w.
func (a *App) Render(ctx context.Context, w io.Writer) error {
	log.WithFields(log.Fields{
		"variant": a.Settings.Variant(),
		"custom":  a.Settings.Custom(),
		"planes":  a.Settings.Planes(),
		"nx":      a.Settings.NX(),
		"ny":      a.Settings.NY(),
		"x_size":  a.Settings.XSize(),
		"y_size":  a.Settings.YSize(),
	}).Debug("Rendering layout")

	if err := ctx.Err(); err != nil {
		return err
	}

	layout, err := entity.NewLayout(a.Settings)
	if err != nil {
		return fmt.Errorf("failed to build layout: %w", err)
	}

	scatter := a.createChart(layout)
	log.Info("Chart created")

	renderTime := time.Now()
	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	log.WithField("time", time.Since(renderTime)).Debug("Chart rendered")
	return nil
}

func (a *App) createChart(layout *entity.Layout) *charts.Scatter {
	startTime := time.Now()
	defer func() {
		log.WithFields(log.Fields{
			"time":   time.Since(startTime),
			"planes": layout.Planes(),
		}).Debug("Creating chart")
	}()
	scatter := charts.NewScatter()

	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: "#ffffff",
			Width:           "100%",
			Height:          "600px",
			PageTitle:       "Multiplane simulation emitter layout",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Emitter layout",
			Subtitle: fmt.Sprintf("mapping variant %s, %d nm pixels", a.Settings.Variant(), int(a.Settings.PixelSize())),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithLegendOpts(opts.Legend{
			Orient:       "horizontal",
			Show:         opts.Bool(true),
			SelectedMode: "multiple",
			Type:         "scroll",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "item",
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: opts.Bool(true),
			Top:  "0%",
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  opts.Bool(true),
					Type:  "png",
					Name:  "layout",
					Title: "Save as image",
				},
				Restore: &opts.ToolBoxFeatureRestore{
					Show:  opts.Bool(true),
					Title: "refresh",
				},
			},
		}),
		// AXIS
		charts.WithXAxisOpts(opts.XAxis{
			Name: "x, px",
			Type: "value",
			Min:  0,
			Max:  a.Settings.XSize(),
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "y, px",
			Type: "value",
			Min:  0,
			Max:  a.Settings.YSize(),
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
	)

	for plane := range layout.Planes() {
		scatter.AddSeries(layout.Name(plane), layout.Data(plane))
	}
	return scatter
}
