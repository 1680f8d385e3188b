package config

// StoreConfig locates the flat-file account store.
type StoreConfig struct {
	Path string `yaml:"path"`
}
