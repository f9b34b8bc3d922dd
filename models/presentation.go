package models

// Chart kinds emitted by the chart generator.
const (
	ChartBar        = "bar"
	ChartPie        = "pie"
	ChartLine       = "line"
	ChartHorizontal = "horizontal"
	ChartStacked    = "stacked"
	ChartArea       = "area"
)

// Section is a slide in the final presentation, either narrative text or a
// chart. The concrete types below are the only implementations.
type Section interface {
	isSection()
}

// NarrativeSection is a titled list of text bullets produced by the
// narrative collaborator.
type NarrativeSection struct {
	SectionTitle string   `json:"sectionTitle"`
	Points       []string `json:"points"`
}

func (NarrativeSection) isSection() {}

// ChartSection is a renderer-agnostic chart description. ChartData's shape
// depends on ChartType: ChartPoint for bar/pie/horizontal, MonthPoint for
// line/area, StackedGroup for stacked.
type ChartSection struct {
	SectionTitle string      `json:"sectionTitle"`
	IsChartSlide bool        `json:"isChartSlide"`
	ChartType    string      `json:"chartType"`
	ChartData    interface{} `json:"chartData"`
}

func (ChartSection) isSection() {}

// ChartPoint is one category/value pair; Color is omitted for horizontal
// bars.
type ChartPoint struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	Color    string  `json:"color,omitempty"`
}

// MonthPoint is one calendar-month bucket on a trend chart.
type MonthPoint struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

// StackedSegment is one named slice inside a stacked category.
type StackedSegment struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// StackedGroup is one category with its named segment values.
type StackedGroup struct {
	Category string           `json:"category"`
	Segments []StackedSegment `json:"segments"`
}

// Presentation is the assembled output document.
type Presentation struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}
