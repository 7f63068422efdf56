package render

import "encoding/json"

type jsonRenderer struct{}

func (r *jsonRenderer) Render(l *Listing) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}
