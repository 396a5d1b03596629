// ABOUTME: Typed accessors for validated tool argument maps
// ABOUTME: JSON numbers arrive as float64; these helpers hide the conversions

package tools

// stringArg returns the string value for key, or "" when absent or not a
// string.
func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// boolArg returns the bool value for key, defaulting to false.
func boolArg(args map[string]any, key string) bool {
	v, _ := args[key].(bool)
	return v
}

// intArg returns the integer value for key and whether it was present.
// Zero is a legitimate value (screen coordinates), so presence matters.
func intArg(args map[string]any, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

// intArgOr returns the integer value for key or the fallback.
func intArgOr(args map[string]any, key string, fallback int) int {
	if v, ok := intArg(args, key); ok {
		return v
	}
	return fallback
}

// stringSliceArg returns the string-array value for key. Non-string
// elements are skipped; the schema has already rejected them.
func stringSliceArg(args map[string]any, key string) []string {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// hasArg reports whether key was provided at all.
func hasArg(args map[string]any, key string) bool {
	_, ok := args[key]
	return ok
}
