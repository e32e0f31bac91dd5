package services

// Plotly is the default qualitative palette used for site and booster colours.
var Plotly = []string{
	"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
	"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

// Light24 colours the Success/Failure split of a single site.
var Light24 = []string{
	"#FD3216", "#00FE35", "#6A76FC", "#FED4C4", "#FE00CE", "#0DF9FF",
	"#F6F926", "#FF9616", "#479B55", "#EEA6FB", "#DC587D", "#D626FF",
	"#6E899C", "#00B5F7", "#B68E00", "#C9FBE5", "#FF0092", "#22FFA7",
	"#E3EE9E", "#86CE00", "#BC7196", "#7E7DCD", "#FC6955", "#E48F72",
}

func paletteColor(palette []string, i int) string {
	return palette[i%len(palette)]
}
