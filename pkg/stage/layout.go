package stage

// Spacing holds the gaps, in lines or columns, between stage regions.
type Spacing struct {
	TitleAboveImage    int `json:"titleAboveImage"`
	CaptionBelowImage  int `json:"captionBelowImage"`
	SidebarFromImage   int `json:"sidebarFromImage"`
	FooterBelowCaption int `json:"footerBelowCaption"`
}

// Layout is a named stage geometry.
type Layout struct {
	Name       string  `json:"name"`
	ImageWidth int     `json:"imageWidth"`
	Spacing    Spacing `json:"spacing"`
}

// Presets lists the built-in layouts.
var Presets = []Layout{
	{Name: "poster", ImageWidth: 40, Spacing: Spacing{2, 2, 4, 3}},
	{Name: "card", ImageWidth: 30, Spacing: Spacing{1, 1, 2, 2}},
	{Name: "banner", ImageWidth: 80, Spacing: Spacing{1, 1, 3, 2}},
	{Name: "postcard", ImageWidth: 35, Spacing: Spacing{2, 2, 3, 2}},
}

// PresetNames returns the names of all presets.
func PresetNames() []string {
	names := make([]string, len(Presets))
	for i, p := range Presets {
		names[i] = p.Name
	}
	return names
}

// PresetByName looks up a preset.
func PresetByName(name string) (Layout, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Layout{}, false
}
