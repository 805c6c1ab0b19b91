package model

// Prefixes are the vendor prefixes every prefixable property is written
// with, in output order.
var Prefixes = []string{"", "-moz-", "-webkit-", "-o-", "-ms-"}

var prefixable = map[string]bool{
	"animation":                  true,
	"appearance":                 true,
	"border-radius":              true,
	"box":                        true,
	"box-align":                  true,
	"box-shadow":                 true,
	"background-size":            true,
	"column-width":               true,
	"column-gap":                 true,
	"column-count":               true,
	"column-span":                true,
	"filter":                     true,
	"transition":                 true,
	"transition-property":        true,
	"transition-duration":        true,
	"transition-timing-function": true,
	"transform":                  true,
	"transform-origin":           true,
	"transform-style":            true,
	"perspective":                true,
	"perspective-origin":         true,
	"box-sizing":                 true,
	"backface-visibility":        true,
	"image-rendering":            true,
	"user-select":                true,
	"white-space-collapsing":     true,
}

var prefixOverrides = map[string]string{
	"-ms-box":       "-ms-flexbox",
	"-ms-box-align": "-ms-flex-align",
}

// Properties whose values name other properties, rewritten per prefix.
var prefixedValues = map[string]bool{
	"transition":          true,
	"transition-property": true,
}

var colorProperties = map[string]bool{
	"background":       true,
	"background-color": true,
	"border-color":     true,
	"color":            true,
	"outline-color":    true,
}

// Properties that may legitimately repeat within a rule.
var allowDuplicates = map[string]bool{
	"cursor":           true,
	"color":            true,
	"background-color": true,
}

// IsPrefixable reports whether name is written once per vendor prefix.
func IsPrefixable(name string) bool { return prefixable[name] }

// PrefixedName returns name with prefix applied.
func PrefixedName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	full := prefix + name
	if o, ok := prefixOverrides[full]; ok {
		return o
	}
	return full
}

// IsColorProperty reports whether bare words in the value of name are
// looked up as color names.
func IsColorProperty(name string) bool { return colorProperties[name] }

// AllowsDuplicates reports whether name may appear more than once in a
// rule.
func AllowsDuplicates(name string) bool { return allowDuplicates[name] }
