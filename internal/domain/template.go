package domain

// Template is a palette entry: the static definition a new Block is copied from.
type Template struct {
	Kind        BlockKind `json:"kind"`
	Category    Category  `json:"category"`
	Label       string    `json:"label"`
	Defaults    Config    `json:"defaultConfig"`
	AllowedKeys []string  `json:"allowedKeys"`
}

// Allows reports whether key is one of the template's option names.
func (t Template) Allows(key string) bool {
	for _, k := range t.AllowedKeys {
		if k == key {
			return true
		}
	}
	return false
}
