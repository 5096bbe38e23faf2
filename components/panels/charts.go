package panels

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/goliatone/go-dashboard-shell/components/shell"
	"github.com/patrickmn/go-cache"
)

const (
	defaultChartHeight = "360px"
	defaultChartTTL    = 5 * time.Minute
)

// ChartKind selects the chart renderer.
type ChartKind string

const (
	ChartLine  ChartKind = "line"
	ChartBar   ChartKind = "bar"
	ChartPie   ChartKind = "pie"
	ChartGauge ChartKind = "gauge"
)

// Series is one legend entry of a chart.
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// ChartSpec describes a chart independent of the rendering library.
type ChartSpec struct {
	Kind     ChartKind `json:"kind"`
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle,omitempty"`
	Labels   []string  `json:"labels,omitempty"`
	Series   []Series  `json:"series"`
}

// ChartCache memoizes rendered chart HTML per owning section.
type ChartCache struct {
	items *cache.Cache
}

// NewChartCache builds a cache whose entries expire after ttl.
func NewChartCache(ttl time.Duration) *ChartCache {
	if ttl <= 0 {
		ttl = defaultChartTTL
	}
	return &ChartCache{items: cache.New(ttl, ttl*2)}
}

// GetOrRender returns a cached entry or renders and stores a new one.
func (c *ChartCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if cached, ok := c.items.Get(key); ok {
		return cached.(string), nil
	}
	html, err := render()
	if err != nil {
		return "", err
	}
	c.items.SetDefault(key, html)
	return html, nil
}

// Release drops every chart whose key starts with prefix and reports how
// many were dropped.
func (c *ChartCache) Release(prefix string) int {
	released := 0
	for key := range c.items.Items() {
		if strings.HasPrefix(key, prefix) {
			c.items.Delete(key)
			released++
		}
	}
	return released
}

// Len reports the number of cached charts, including expired ones not yet
// cleaned up.
func (c *ChartCache) Len() int {
	return c.items.ItemCount()
}

// Charts renders ChartSpecs to self-contained go-echarts HTML.
type Charts struct {
	cache      *ChartCache
	assetsHost string
	height     string
}

// ChartsOption customizes Charts.
type ChartsOption func(*Charts)

// WithChartCache injects the render cache.
func WithChartCache(cache *ChartCache) ChartsOption {
	return func(c *Charts) {
		if cache != nil {
			c.cache = cache
		}
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) ChartsOption {
	return func(c *Charts) {
		c.assetsHost = host
	}
}

// WithChartHeight sets the chart height.
func WithChartHeight(height string) ChartsOption {
	return func(c *Charts) {
		if height != "" {
			c.height = height
		}
	}
}

// NewCharts builds a chart renderer.
func NewCharts(opts ...ChartsOption) *Charts {
	c := &Charts{
		cache:  NewChartCache(defaultChartTTL),
		height: defaultChartHeight,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cache exposes the render cache.
func (c *Charts) Cache() *ChartCache {
	return c.cache
}

// Render renders spec for owner with the given echarts theme.
func (c *Charts) Render(owner shell.SectionID, name string, spec ChartSpec, theme string) (string, error) {
	if theme == "" {
		theme = types.ThemeWesteros
	}
	key := fmt.Sprintf("%s/%s/%s/%s", owner, name, theme, specHash(spec))
	return c.cache.GetOrRender(key, func() (string, error) {
		return c.render(spec, theme)
	})
}

// Release drops every chart rendered for owner.
func (c *Charts) Release(owner shell.SectionID) int {
	return c.cache.Release(string(owner) + "/")
}

func (c *Charts) render(spec ChartSpec, theme string) (string, error) {
	if len(spec.Series) == 0 {
		return "", fmt.Errorf("panels: chart %q has no series", spec.Title)
	}
	global := c.globalOptions(spec, theme)
	switch spec.Kind {
	case ChartLine:
		line := charts.NewLine()
		line.SetGlobalOptions(global...)
		line.SetXAxis(spec.Labels)
		for _, s := range spec.Series {
			line.AddSeries(s.Name, toLineData(spec.Labels, s.Values))
		}
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		return renderChart(line)
	case ChartBar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(global...)
		bar.SetXAxis(spec.Labels)
		for _, s := range spec.Series {
			bar.AddSeries(s.Name, toBarData(spec.Labels, s.Values))
		}
		return renderChart(bar)
	case ChartPie:
		pie := charts.NewPie()
		pie.SetGlobalOptions(global...)
		for _, s := range spec.Series {
			pie.AddSeries(s.Name, toPieData(spec.Labels, s.Values))
		}
		return renderChart(pie)
	case ChartGauge:
		gauge := charts.NewGauge()
		gauge.SetGlobalOptions(global...)
		for _, s := range spec.Series {
			if len(s.Values) == 0 {
				continue
			}
			gauge.AddSeries(s.Name, []opts.GaugeData{{Name: s.Name, Value: s.Values[0]}})
		}
		return renderChart(gauge)
	default:
		return "", fmt.Errorf("panels: unsupported chart kind %q", spec.Kind)
	}
}

func (c *Charts) globalOptions(spec ChartSpec, theme string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  theme,
		Width:  "100%",
		Height: c.height,
	}
	if c.assetsHost != "" {
		initOpts.AssetsHost = c.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: spec.Title, Subtitle: spec.Subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func labelAt(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return fmt.Sprintf("#%d", i+1)
}

func toLineData(labels []string, values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		data[i] = opts.LineData{Name: labelAt(labels, i), Value: v}
	}
	return data
}

func toBarData(labels []string, values []float64) []opts.BarData {
	data := make([]opts.BarData, len(values))
	for i, v := range values {
		data[i] = opts.BarData{Name: labelAt(labels, i), Value: v}
	}
	return data
}

func toPieData(labels []string, values []float64) []opts.PieData {
	data := make([]opts.PieData, len(values))
	for i, v := range values {
		data[i] = opts.PieData{Name: labelAt(labels, i), Value: v}
	}
	return data
}

func specHash(spec ChartSpec) string {
	b, err := json.Marshal(spec)
	if err != nil {
		return "invalid"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
