package chart

import "sync"

// Style is the presentation applied to a channel's dataset.
type Style struct {
	Label     string
	Stroke    string
	FillColor string
	Dashed    bool
}

var (
	registerOnce sync.Once
	styles       map[string]Style
)

// EnsureRegistered installs the default channel styles. It is safe to call
// from any number of goroutines; registration happens exactly once.
func EnsureRegistered() {
	registerOnce.Do(func() {
		styles = map[string]Style{
			ChannelSimple:        {Label: "Simple interest", Stroke: "#94a3b8", Dashed: true},
			ChannelCompound:      {Label: "Compound interest", Stroke: "#10b981", FillColor: "rgba(16, 185, 129, 0.15)"},
			ChannelTotal:         {Label: "Total balance", Stroke: "#6366f1", FillColor: "rgba(99, 102, 241, 0.15)"},
			ChannelContributions: {Label: "Contributions", Stroke: "#f59e0b", Dashed: true},
			ChannelInterest:      {Label: "Interest earned", Stroke: "#10b981"},
			ChannelEarly:         {Label: "Early start", Stroke: "#10b981", FillColor: "rgba(16, 185, 129, 0.15)"},
			ChannelLate:          {Label: "Late start", Stroke: "#ef4444", Dashed: true},
		}
	})
}

// StyleFor returns the registered style for a channel. Unknown channels get
// a neutral style labelled with the channel name.
func StyleFor(channel string) Style {
	EnsureRegistered()
	if style, ok := styles[channel]; ok {
		return style
	}
	return Style{Label: channel, Stroke: "#64748b"}
}
