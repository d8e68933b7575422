// Package chart converts simulated series into the dataset records consumed
// by the chart renderer.
package chart

import (
	"strconv"

	"github.com/iwvelando/compound-growth/pkg/series"
)

// Dataset is one plotted line.
type Dataset struct {
	Label     string    `json:"label"`
	Data      []float64 `json:"data"`
	Stroke    string    `json:"stroke"`
	FillColor string    `json:"fillColor,omitempty"`
	Dashed    bool      `json:"dashed,omitempty"`
}

// Channel names used to look up dataset styles.
const (
	ChannelSimple        = "simple"
	ChannelCompound      = "compound"
	ChannelTotal         = "total"
	ChannelContributions = "contributions"
	ChannelInterest      = "interest"
	ChannelEarly         = "early"
	ChannelLate          = "late"
)

func newDataset(channel string, data []float64) Dataset {
	style := StyleFor(channel)
	return Dataset{
		Label:     style.Label,
		Data:      data,
		Stroke:    style.Stroke,
		FillColor: style.FillColor,
		Dashed:    style.Dashed,
	}
}

// Labels returns the x-axis labels for a series of the given length.
func Labels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = "Year " + strconv.Itoa(i)
	}
	return labels
}

// GrowthDatasets splits a growth series into simple and compound lines.
func GrowthDatasets(points []series.GrowthPoint) []Dataset {
	simple := make([]float64, len(points))
	compound := make([]float64, len(points))
	for i, p := range points {
		simple[i] = p.Simple
		compound[i] = p.Compound
	}
	return []Dataset{
		newDataset(ChannelSimple, simple),
		newDataset(ChannelCompound, compound),
	}
}

// ContributionDatasets splits a contribution series into total,
// contributions and interest lines.
func ContributionDatasets(points []series.ContributionPoint) []Dataset {
	total := make([]float64, len(points))
	contributions := make([]float64, len(points))
	interest := make([]float64, len(points))
	for i, p := range points {
		total[i] = p.Total
		contributions[i] = p.Contributions
		interest[i] = p.Interest
	}
	return []Dataset{
		newDataset(ChannelTotal, total),
		newDataset(ChannelContributions, contributions),
		newDataset(ChannelInterest, interest),
	}
}

// TimingDatasets splits a timing series into early and late lines.
func TimingDatasets(points []series.TimingPoint) []Dataset {
	early := make([]float64, len(points))
	late := make([]float64, len(points))
	for i, p := range points {
		early[i] = p.Early
		late[i] = p.Late
	}
	return []Dataset{
		newDataset(ChannelEarly, early),
		newDataset(ChannelLate, late),
	}
}
