package theme

var tokyoNight = Theme{
	Name:                "tokyonight",
	Primary:             ac("#2e7de9", "#82aaff"),
	Accent:              ac("#0db9d7", "#7dcfff"),
	Error:               ac("#f52a65", "#ff757f"),
	Warning:             ac("#b15c00", "#ff966c"),
	Success:             ac("#587539", "#c3e88d"),
	Partial:             ac("#8c6c3e", "#ffc777"),
	Text:                ac("#3760bf", "#c8d3f5"),
	TextMuted:           ac("#848cb5", "#636da6"),
	Background:          ac("#e1e2e7", "#222436"),
	BackgroundSecondary: ac("#c8c9ce", "#2f334d"),
	BorderNormal:        ac("#a8aecb", "#3b4261"),
	BorderFocused:       ac("#2e7de9", "#82aaff"),
}

var dracula = Theme{
	Name:                "dracula",
	Primary:             ac("#7c3aed", "#bd93f9"),
	Accent:              ac("#0e7490", "#8be9fd"),
	Error:               ac("#dc2626", "#ff5555"),
	Warning:             ac("#c2410c", "#ffb86c"),
	Success:             ac("#15803d", "#50fa7b"),
	Partial:             ac("#a16207", "#f1fa8c"),
	Text:                ac("#282a36", "#f8f8f2"),
	TextMuted:           ac("#6b7280", "#6272a4"),
	Background:          ac("#f8f8f2", "#282a36"),
	BackgroundSecondary: ac("#e5e7eb", "#44475a"),
	BorderNormal:        ac("#d1d5db", "#44475a"),
	BorderFocused:       ac("#7c3aed", "#bd93f9"),
}

var nord = Theme{
	Name:                "nord",
	Primary:             ac("#5e81ac", "#88c0d0"),
	Accent:              ac("#5e81ac", "#81a1c1"),
	Error:               ac("#bf616a", "#bf616a"),
	Warning:             ac("#d08770", "#d08770"),
	Success:             ac("#a3be8c", "#a3be8c"),
	Partial:             ac("#ebcb8b", "#ebcb8b"),
	Text:                ac("#2e3440", "#eceff4"),
	TextMuted:           ac("#4c566a", "#616e88"),
	Background:          ac("#eceff4", "#2e3440"),
	BackgroundSecondary: ac("#e5e9f0", "#3b4252"),
	BorderNormal:        ac("#d8dee9", "#434c5e"),
	BorderFocused:       ac("#5e81ac", "#88c0d0"),
}

var solarized = Theme{
	Name:                "solarized",
	Primary:             ac("#268bd2", "#268bd2"),
	Accent:              ac("#2aa198", "#2aa198"),
	Error:               ac("#dc322f", "#dc322f"),
	Warning:             ac("#cb4b16", "#cb4b16"),
	Success:             ac("#859900", "#859900"),
	Partial:             ac("#b58900", "#b58900"),
	Text:                ac("#657b83", "#839496"),
	TextMuted:           ac("#93a1a1", "#586e75"),
	Background:          ac("#fdf6e3", "#002b36"),
	BackgroundSecondary: ac("#eee8d5", "#073642"),
	BorderNormal:        ac("#eee8d5", "#073642"),
	BorderFocused:       ac("#268bd2", "#268bd2"),
}

var gruvbox = Theme{
	Name:                "gruvbox",
	Primary:             ac("#076678", "#83a598"),
	Accent:              ac("#427b58", "#8ec07c"),
	Error:               ac("#9d0006", "#fb4934"),
	Warning:             ac("#af3a03", "#fe8019"),
	Success:             ac("#79740e", "#b8bb26"),
	Partial:             ac("#b57614", "#fabd2f"),
	Text:                ac("#3c3836", "#ebdbb2"),
	TextMuted:           ac("#7c6f64", "#928374"),
	Background:          ac("#fbf1c7", "#282828"),
	BackgroundSecondary: ac("#ebdbb2", "#3c3836"),
	BorderNormal:        ac("#d5c4a1", "#504945"),
	BorderFocused:       ac("#076678", "#83a598"),
}

func init() {
	// first registration is the default
	for _, t := range []Theme{tokyoNight, dracula, nord, solarized, gruvbox} {
		Register(t)
	}
}
