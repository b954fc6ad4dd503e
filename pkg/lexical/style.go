package lexical

import (
	"sort"
	"strings"
)

// StyleMap represents parsed inline CSS from a text node.
type StyleMap map[string]string

// styleWhitelist holds the properties that survive into rendered output.
var styleWhitelist = map[string]bool{
	"color":            true,
	"background-color": true,
	"text-transform":   true,
	"font-size":        true,
}

// ParseStyle parses a CSS declaration list, keeping only whitelisted properties.
// Example: "color: #F97316; background-color: #BFDBFE;"
func ParseStyle(styleStr string) StyleMap {
	styles := make(StyleMap)
	if styleStr == "" {
		return styles
	}

	for _, part := range strings.Split(styleStr, ";") {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			continue
		}
		k := strings.ToLower(strings.TrimSpace(kv[0]))
		v := strings.TrimSpace(kv[1])
		if k == "" || v == "" || !styleWhitelist[k] || !safeStyleValue(v) {
			continue
		}
		styles[k] = v
	}
	return styles
}

// CSS renders the map as a declaration list with keys sorted.
func (s StyleMap) CSS() string {
	if len(s) == 0 {
		return ""
	}
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+s[k])
	}
	return strings.Join(parts, "; ")
}

// safeStyleValue rejects values that could escape the declaration or load resources.
func safeStyleValue(v string) bool {
	lower := strings.ToLower(v)
	if strings.ContainsAny(v, "<>\"'{};\\") {
		return false
	}
	return !strings.Contains(lower, "url(") && !strings.Contains(lower, "expression(")
}
