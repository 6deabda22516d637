package rule

// yamlRulesFile is the YAML form of a rules file:
//
//	patterns:
//	  - steampowered
//	  - "# not a comment when quoted"
//
// Entries are filtered exactly like lines of the plain-text form.
type yamlRulesFile struct {
	Name     string   `yaml:"name,omitempty"`
	Patterns []string `yaml:"patterns"`
}
