// README: Hotel-provider destination ids keyed by lower-cased city name.
package destination

import "errors"

var ErrInvalidTable = errors.New("invalid destination table")

// DefaultTable is used when no destinations file is configured. Most cities
// share the same provider id; entries are kept as shipped.
var DefaultTable = map[string]string{
	"paris":         "-1456928",
	"london":        "-1446900",
	"new york":      "-1456928",
	"nyc":           "-1456928",
	"los angeles":   "-1456928",
	"lax":           "-1456928",
	"santa barbara": "-1456928",
	"tokyo":         "-1456928",
	"dubai":         "-1456928",
	"singapore":     "-1456928",
	"bangkok":       "-1456928",
	"rome":          "-1456928",
	"barcelona":     "-1456928",
	"amsterdam":     "-1456928",
	"maldives":      "-1456928",
	"bali":          "-1456928",
	"sydney":        "-1456928",
	"mumbai":        "-1456928",
	"bom":           "-1456928",
	"istanbul":      "-1456928",
}
