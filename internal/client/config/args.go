package config

import (
	"flag"
	"io"
	"strings"
)

// filterArgs keeps only the allowed flags and their values, so each parsing
// stage can ignore flags owned by the other. Both "-f value" and "-f=value"
// forms are recognised. Switches never take a separate value.
func filterArgs(args []string, allowed []string, switches ...string) []string {
	known := make(map[string]bool, len(allowed)+len(switches))
	for _, f := range allowed {
		known[f] = true
	}
	for _, f := range switches {
		known[f] = false
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, keep := known[name]; keep {
				out = append(out, arg)
			}
			continue
		}

		takesValue, keep := known[arg]
		if !keep {
			continue
		}
		out = append(out, arg)
		if takesValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// configPath returns the value of -c or -config, or "".
func configPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(filterArgs(args, []string{"-c", "-config", "--c", "--config"}))

	return path
}
