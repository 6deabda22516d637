package rule

import (
	_ "embed"
	"text/template"
)

// defaultRulesTemplate is written when the rules file does not exist yet.
//
//go:embed default.rules.tmpl
var defaultRulesTemplate string

var defaultRules = template.Must(template.New("rules").Parse(defaultRulesTemplate))

// DefaultPattern is the placeholder pattern in a freshly created rules file.
const DefaultPattern = "steampowered"
