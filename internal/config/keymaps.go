package config

// KeyMappings defines the configurable key bindings of the board
type KeyMappings struct {
	NextProject string `yaml:"next_project"`
	PrevProject string `yaml:"prev_project"`
	Refresh     string `yaml:"refresh"`
	Quit        string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		NextProject: "j",
		PrevProject: "k",
		Refresh:     "r",
		Quit:        "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	if k.NextProject == "" {
		k.NextProject = defaults.NextProject
	}
	if k.PrevProject == "" {
		k.PrevProject = defaults.PrevProject
	}
	if k.Refresh == "" {
		k.Refresh = defaults.Refresh
	}
	if k.Quit == "" {
		k.Quit = defaults.Quit
	}
}
