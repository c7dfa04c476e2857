package debug

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/watchman-go/watchman/dump"
	"github.com/watchman-go/watchman/ir"
)

// Logf writes a diagnostic line to stderr. Arguments of type *ir.Node are
// rendered with dump; maps and slices render as indented JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Node:
			args[i] = dump.MustString(x)
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
