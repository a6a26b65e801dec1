package reactive

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the handful of knobs a host embedding a System might want
// to set from a file rather than call-site options.
type Config struct {
	DevMode             bool `yaml:"devMode"`
	WarnOnReadonlyWrite bool `yaml:"warnOnReadonlyWrite"`
	MaxEffectDepth      int  `yaml:"maxEffectDepth"`
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{WarnOnReadonlyWrite: true, MaxEffectDepth: 1000}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyTo pushes DevMode onto sys; it is the only field applied.
// WarnOnReadonlyWrite is not read: readonly-write warnings follow
// DevMode alone. MaxEffectDepth is advisory bookkeeping for hosts that
// want to guard against the unbounded mutual recursion spec §5
// explicitly leaves undetected; the core itself does not enforce it.
func (c *Config) ApplyTo(sys *System) {
	sys.SetDevMode(c.DevMode)
}
