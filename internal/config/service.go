package config

type ServiceConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
	ClientURL   string `yaml:"client_url"`

	StripeSecretKey string `yaml:"stripe_secret_key"`

	// Fixed defaults applied when creating connected accounts.
	DefaultCountry  string `yaml:"default_country"`
	DefaultCurrency string `yaml:"default_currency"`

	// ApplicationFeeBps is the platform fee in basis points taken on
	// pay-user charges. Zero disables the fee.
	ApplicationFeeBps int64 `yaml:"application_fee_bps"`
}
