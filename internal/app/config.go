package app

import (
	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/lanchonete/internal/domain/pricing"
)

// Config holds the application configuration, loadable from environment
// variables (LANCHONETE_ prefix), flags, or YAML config files.
type Config struct {
	Discount DiscountConfig
}

// DiscountConfig controls the threshold discount applied at checkout.
type DiscountConfig struct {
	Threshold int64  `default:"5000" usage:"Subtotal in cents at or above which the discount applies"`
	Rate      string `default:"0.10" usage:"Fraction of the subtotal taken off once the threshold is reached"`
}

// Policy converts the configuration into a validated pricing policy.
func (c DiscountConfig) Policy() (pricing.Policy, error) {
	rate, err := decimal.NewFromString(c.Rate)
	if err != nil {
		return pricing.Policy{}, errors.Wrapf(err, "parse discount rate %q", c.Rate)
	}
	p := pricing.Policy{
		ThresholdCents: c.Threshold,
		Rate:           rate,
	}
	if err := p.Validate(); err != nil {
		return pricing.Policy{}, err
	}
	return p, nil
}

// LoadConfig loads configuration from environment variables, YAML config
// files and the given command-line arguments. Flags are skipped when args is nil.
func LoadConfig(args []string) (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "LANCHONETE",
		SkipFlags: args == nil,
		Args:      args,
		Files:     []string{"lanchonete.yaml", "/etc/lanchonete/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if _, err := cfg.Discount.Policy(); err != nil {
		return nil, errors.Wrap(err, "discount")
	}
	return &cfg, nil
}
