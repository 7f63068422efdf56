package render

import "gopkg.in/yaml.v3"

type yamlRenderer struct{}

func (r *yamlRenderer) Render(l *Listing) ([]byte, error) {
	return yaml.Marshal(l)
}
