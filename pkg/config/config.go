package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is passed to envconfig; every variable below already carries
// it explicitly so the prefix itself stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Ledger persistence policies. `shared` appends every order to one
// vendas.csv; `per-order` writes one timestamped file per finalized
// order, matching the two source-system variants.
const (
	LedgerPolicyShared   = "shared"
	LedgerPolicyPerOrder = "per-order"
)

type Config struct {
	App     AppConfig
	Catalog CatalogConfig
	Ledger  LedgerConfig
	Cart    CartConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Ledger.validatePolicy(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FORNECEDOR_APP_ENV" default:"dev"`
	Port         string `envconfig:"FORNECEDOR_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"FORNECEDOR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FORNECEDOR_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type CatalogConfig struct {
	Path string `envconfig:"FORNECEDOR_CATALOG_PATH" default:"database/produtos/produtos_completos_formatado.csv"`
}

type LedgerConfig struct {
	Dir        string `envconfig:"FORNECEDOR_LEDGER_DIR" default:"database/vendas"`
	SharedFile string `envconfig:"FORNECEDOR_LEDGER_SHARED_FILE" default:"vendas.csv"`
	Policy     string `envconfig:"FORNECEDOR_LEDGER_POLICY" default:"per-order"`
}

// PerOrder reports whether every finalized order gets its own file.
func (l LedgerConfig) PerOrder() bool {
	return strings.EqualFold(strings.TrimSpace(l.Policy), LedgerPolicyPerOrder)
}

func (l *LedgerConfig) validatePolicy() error {
	policy := strings.ToLower(strings.TrimSpace(l.Policy))
	switch policy {
	case LedgerPolicyShared, LedgerPolicyPerOrder:
		l.Policy = policy
		return nil
	default:
		return fmt.Errorf("FORNECEDOR_LEDGER_POLICY must be %q or %q, got %q", LedgerPolicyShared, LedgerPolicyPerOrder, l.Policy)
	}
}

type CartConfig struct {
	// EnforceStock rejects quantities above the catalog stock. The
	// source variants disagree on this, so it stays configurable.
	EnforceStock bool `envconfig:"FORNECEDOR_CART_ENFORCE_STOCK" default:"true"`
	// AllowRemoval enables the flagged-removal endpoint; one source
	// variant shipped without the removal UI.
	AllowRemoval bool `envconfig:"FORNECEDOR_CART_ALLOW_REMOVAL" default:"true"`
}
