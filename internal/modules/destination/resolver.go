package destination

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Resolver is an immutable city → destination id table.
type Resolver struct {
	table map[string]string
}

// NewResolver copies DefaultTable and layers overrides on top. Override keys
// are lower-cased; an empty id removes the city.
func NewResolver(overrides map[string]string) *Resolver {
	table := make(map[string]string, len(DefaultTable)+len(overrides))
	for k, v := range DefaultTable {
		table[k] = v
	}
	for k, v := range overrides {
		key := strings.ToLower(strings.TrimSpace(k))
		if v == "" {
			delete(table, key)
			continue
		}
		table[key] = v
	}
	return &Resolver{table: table}
}

// Resolve looks city up by exact, case-insensitive name.
func (r *Resolver) Resolve(city string) (string, bool) {
	id, ok := r.table[strings.ToLower(city)]
	return id, ok
}

// Len reports the number of supported cities.
func (r *Resolver) Len() int {
	return len(r.table)
}

// LoadFile reads a YAML or JSON file with a top-level "destinations" map.
func LoadFile(path string) (map[string]string, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read destinations file: %w", err)
	}
	if !v.IsSet("destinations") {
		return nil, fmt.Errorf("%w: %s has no destinations key", ErrInvalidTable, path)
	}
	return v.GetStringMapString("destinations"), nil
}
