package config

// ColorScheme holds the hex colors used by CLI output and the board
type ColorScheme struct {
	Preset  string `yaml:"preset,omitempty"`
	Accent  string `yaml:"accent,omitempty"`
	Title   string `yaml:"title,omitempty"`
	Subtle  string `yaml:"subtle,omitempty"`
	Normal  string `yaml:"normal,omitempty"`
	Success string `yaml:"success,omitempty"`
	Warning string `yaml:"warning,omitempty"`
	ErrorFg string `yaml:"error_fg,omitempty"`
}

// DefaultColorScheme returns the default color scheme (purple theme)
func DefaultColorScheme() ColorScheme {
	return ColorScheme{
		Preset:  "default",
		Accent:  "#874BFD",
		Title:   "#D75FD7",
		Subtle:  "#585858",
		Normal:  "#D0D0D0",
		Success: "#5FD75F",
		Warning: "#FFAF00",
		ErrorFg: "#FF5F5F",
	}
}

// MonochromeColorScheme returns a black and white color scheme
func MonochromeColorScheme() ColorScheme {
	return ColorScheme{
		Preset:  "monochrome",
		Accent:  "#FFFFFF",
		Title:   "#FFFFFF",
		Subtle:  "#808080",
		Normal:  "#D0D0D0",
		Success: "#FFFFFF",
		Warning: "#D0D0D0",
		ErrorFg: "#FFFFFF",
	}
}

// ApplyDefaults fills empty colors from the preset named by Preset
func (c *ColorScheme) ApplyDefaults() {
	base := DefaultColorScheme()
	if c.Preset == "monochrome" {
		base = MonochromeColorScheme()
	}
	if c.Preset == "" {
		c.Preset = base.Preset
	}
	c.MergeFrom(base)
}

// MergeFrom copies every color from other that is still empty in c
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&c.Accent, other.Accent)
	fill(&c.Title, other.Title)
	fill(&c.Subtle, other.Subtle)
	fill(&c.Normal, other.Normal)
	fill(&c.Success, other.Success)
	fill(&c.Warning, other.Warning)
	fill(&c.ErrorFg, other.ErrorFg)
}
