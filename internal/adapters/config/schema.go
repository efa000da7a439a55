package config

// Configfile represents the structure of the symres.yaml configuration file.
// Pointer fields distinguish an absent key from its zero value.
type Configfile struct {
	CacheDir         string `yaml:"cache_dir"`
	DefaultServer    string `yaml:"default_server"`
	PrefsFile        string `yaml:"prefs_file"`
	TrustAll         *bool  `yaml:"trust_all"`
	TrustedPrincipal *bool  `yaml:"trusted_principal"`
	Workers          *int   `yaml:"workers"`
	PromptTimeout    string `yaml:"prompt_timeout"`
	HTTPTimeout      string `yaml:"http_timeout"`
}
