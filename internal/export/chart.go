package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/piwi3910/LayerFit/internal/engine"
)

// RenderRankingChart writes an HTML bar chart of how many solutions use each
// layer shape. Only the first top entries are drawn; top <= 0 draws all.
func RenderRankingChart(w io.Writer, ranking []engine.RankedLayer, top int) error {
	if len(ranking) == 0 {
		return errors.New("no ranked layers to chart")
	}
	if top > 0 && top < len(ranking) {
		ranking = ranking[:top]
	}

	names := make([]string, len(ranking))
	items := make([]opts.BarData, len(ranking))
	for i, r := range ranking {
		names[i] = r.Combination.String()
		items[i] = opts.BarData{Name: r.Key, Value: r.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Layer ranking"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Layer usage",
			Subtitle: fmt.Sprintf("%d layer shapes, least used first", len(ranking)),
		}),
	)
	bar.SetXAxis(names).AddSeries("Solutions", items)
	return bar.Render(w)
}
