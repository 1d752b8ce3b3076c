// Package render draws per-cluster word clouds and top-word histograms as
// PNG files. Rendering is a side output: callers log its failures and carry on.
package render

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"path/filepath"
	"regexp"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/dtnitsch/tweetstats/pkg/analytics"
	"github.com/dtnitsch/tweetstats/pkg/mapreduce"
	"github.com/dtnitsch/tweetstats/pkg/storage"
)

// Emitter turns cluster statistics into image files.
type Emitter interface {
	WordCloud(label string, tf analytics.TermFrequency, path string) error
	Histogram(label string, top []analytics.WordCount, path string) error
}

// PlotEmitter renders with gonum/plot.
type PlotEmitter struct {
	// CloudWords caps the number of words drawn in a word cloud.
	CloudWords int
	Width      vg.Length
	Height     vg.Length
}

// NewPlotEmitter returns an emitter with the default canvas size.
func NewPlotEmitter() *PlotEmitter {
	return &PlotEmitter{
		CloudWords: 100,
		Width:      8 * vg.Inch,
		Height:     5 * vg.Inch,
	}
}

var palette = []color.RGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 140, G: 86, B: 75, A: 255},
}

const (
	minFontSize = 8.0
	maxFontSize = 48.0
	goldenAngle = 2.399963229728653
)

// WordCloud draws the most frequent words of tf on a sunflower spiral, the
// most frequent at the center, with font size proportional to frequency.
func (e *PlotEmitter) WordCloud(label string, tf analytics.TermFrequency, path string) error {
	top := analytics.TopN(tf, e.CloudWords)
	if len(top) == 0 {
		return fmt.Errorf("cluster %s has no words", label)
	}

	xys := make(plotter.XYs, len(top))
	words := make([]string, len(top))
	for i, wc := range top {
		r := math.Sqrt(float64(i))
		theta := float64(i) * goldenAngle
		xys[i] = plotter.XY{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
		words[i] = wc.Word
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: words})
	if err != nil {
		return fmt.Errorf("failed to build word cloud labels: %w", err)
	}

	maxCount := float64(top[0].Count)
	for i, wc := range top {
		size := minFontSize + (maxFontSize-minFontSize)*float64(wc.Count)/maxCount
		labels.TextStyle[i].Font.Size = vg.Points(size)
		labels.TextStyle[i].Color = palette[i%len(palette)]
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Cluster %s", label)
	p.HideAxes()
	p.Add(labels)

	// Pad the data range so large labels at the rim stay on the canvas.
	rim := math.Sqrt(float64(len(top))) + 1
	p.X.Min, p.X.Max = -rim, rim
	p.Y.Min, p.Y.Max = -rim, rim

	return save(p, e.Width, e.Height, path)
}

// Histogram draws a bar chart of top (already ranked) word counts.
func (e *PlotEmitter) Histogram(label string, top []analytics.WordCount, path string) error {
	if len(top) == 0 {
		return fmt.Errorf("cluster %s has no words", label)
	}

	values := make(plotter.Values, len(top))
	names := make([]string, len(top))
	for i, wc := range top {
		values[i] = float64(wc.Count)
		names[i] = wc.Word
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Top %d Words - Cluster %s", len(top), label)
	p.X.Label.Text = "Words"
	p.Y.Label.Text = "Frequency"

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return fmt.Errorf("failed to build bar chart: %w", err)
	}
	bars.Color = palette[0]
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)

	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	return save(p, e.Width, e.Height, path)
}

func save(p *plot.Plot, w, h vg.Length, path string) error {
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("failed to save plot %s: %w", path, err)
	}
	return nil
}

// Dirs names the output directories of RenderClusters.
type Dirs struct {
	WordClouds string
	Histograms string
}

// Output lists what RenderClusters produced.
type Output struct {
	Files  []string `json:"files" yaml:"files"`
	Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

var unsafeLabelChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// fileLabel makes a cluster label usable inside a single file name.
// Separators and other unsafe characters become '_'.
func fileLabel(label string) string {
	return unsafeLabelChars.ReplaceAllString(label, "_")
}

// WordCloudPath returns the word cloud file for a cluster. The file always
// lands directly in dir, whatever the label contains.
func WordCloudPath(dir, label string) string {
	return filepath.Join(dir, fmt.Sprintf("cluster_%s.png", fileLabel(label)))
}

// HistogramPath returns the histogram file for a cluster.
func HistogramPath(dir, label string) string {
	return filepath.Join(dir, fmt.Sprintf("histogram_cluster%s.png", fileLabel(label)))
}

// RenderClusters writes one word cloud and one histogram of the topCount
// words per cluster, in label order. Clusters without words are skipped.
// Failures are logged and collected; they never stop the remaining clusters.
func RenderClusters(e Emitter, table mapreduce.ClusterTable, dirs Dirs, topCount int, logger *slog.Logger) Output {
	if logger == nil {
		logger = slog.Default()
	}
	s := &storage.Storage{}
	var out Output

	fail := func(msg string, err error, args ...any) {
		logger.Warn(msg, append(args, "error", err)...)
		out.Errors = append(out.Errors, err.Error())
	}

	for _, dir := range []string{dirs.WordClouds, dirs.Histograms} {
		if err := s.EnsureDir(dir); err != nil {
			fail("failed to create render directory", err, "dir", dir)
			return out
		}
	}

	for _, label := range table.Labels() {
		tf := table[label]
		if len(tf) == 0 {
			logger.Info("Skipping cluster without words", "cluster", label)
			continue
		}

		logger.Info("Generating word cloud for cluster", "cluster", label)
		cloudPath := WordCloudPath(dirs.WordClouds, label)
		if err := e.WordCloud(label, tf, cloudPath); err != nil {
			fail("failed to render word cloud", err, "cluster", label)
		} else {
			out.Files = append(out.Files, cloudPath)
		}

		logger.Info("Generating histogram for cluster", "cluster", label)
		histPath := HistogramPath(dirs.Histograms, label)
		if err := e.Histogram(label, analytics.TopN(tf, topCount), histPath); err != nil {
			fail("failed to render histogram", err, "cluster", label)
		} else {
			out.Files = append(out.Files, histPath)
		}
	}

	return out
}
