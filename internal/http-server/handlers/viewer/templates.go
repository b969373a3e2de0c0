package viewer

import (
	"RecoViewer/entity"
	"embed"
	"encoding/json"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates(handler Core) *template.Template {
	return template.Must(template.New("").
		Funcs(template.FuncMap{
			"imageURL":   handler.ImageURL,
			"productURL": handler.ProductURL,
			"orNA": func(v entity.Value) string {
				return v.Or(entity.Placeholder)
			},
			"prettyJSON": prettyJSON,
		}).ParseFS(templateFS, "templates/*.html"))
}

func prettyJSON(v interface{}) string {
	if raw, ok := v.(json.RawMessage); ok {
		var decoded interface{}
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return string(raw)
		}
		v = decoded
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}
