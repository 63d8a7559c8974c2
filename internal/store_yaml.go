package internal

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// yamlAmount round-trips a decimal as a plain YAML number instead of a quoted string
type yamlAmount decimal.Decimal

func (a yamlAmount) MarshalYAML() (interface{}, error) {
	d := decimal.Decimal(a)
	tag := "!!float"
	if d.IsInteger() {
		tag = "!!int"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: d.String()}, nil
}

func (a *yamlAmount) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", node.Line)
	}
	d, err := decimal.NewFromString(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %q is not a number", node.Line, node.Value)
	}
	*a = yamlAmount(d)
	return nil
}

type yamlMonth struct {
	Income   map[string]yamlAmount `yaml:"income"`
	Expenses map[string]yamlAmount `yaml:"expenses"`
	Limits   map[string]yamlAmount `yaml:"limits"`
}

// YAMLFileStorage keeps the ledger in a YAML file with the same layout as the JSON backend
type YAMLFileStorage struct {
	Path string
}

func NewYAMLFileStorage(path string) *YAMLFileStorage {
	return &YAMLFileStorage{Path: path}
}

func (s *YAMLFileStorage) Load() (*Ledger, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return initEmptyStore(s, s.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrStoreUnreadable, s.Path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return NewLedger(), nil
	}

	var doc map[string]yamlMonth
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrStoreUnreadable, s.Path, err)
	}

	months := make(map[string]storedMonth, len(doc))
	for key, m := range doc {
		months[key] = storedMonth{
			Income:   decodeYAMLAmounts(m.Income),
			Expenses: decodeYAMLAmounts(m.Expenses),
			Limits:   decodeYAMLAmounts(m.Limits),
		}
	}

	ledger, err := buildLedger(months)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", s.Path, err)
	}
	slog.Debug("ledger loaded", "backend", "yaml", "path", s.Path, "months", len(ledger.Months))
	return ledger, nil
}

func (s *YAMLFileStorage) Save(ledger *Ledger) error {
	doc := make(map[string]yamlMonth, len(ledger.Months))
	for key, r := range ledger.Months {
		doc[key.String()] = yamlMonth{
			Income:   encodeYAMLAmounts(r.Income),
			Expenses: encodeYAMLAmounts(r.Expenses),
			Limits:   encodeYAMLAmounts(r.Limits),
		}
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling ledger: %w", err)
	}
	if err := writeStoreFile(s.Path, data); err != nil {
		return err
	}
	slog.Debug("ledger saved", "backend", "yaml", "path", s.Path, "months", len(ledger.Months))
	return nil
}

func decodeYAMLAmounts(in map[string]yamlAmount) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(in))
	for category, a := range in {
		out[category] = decimal.Decimal(a)
	}
	return out
}

func encodeYAMLAmounts(in Amounts) map[string]yamlAmount {
	out := make(map[string]yamlAmount, len(in))
	for category, d := range in {
		out[category] = yamlAmount(d)
	}
	return out
}
