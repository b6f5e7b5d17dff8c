package export

import (
	"encoding/json"
	"os"
	"time"

	"mug-studio/internal/analytics"
	"mug-studio/internal/layout"
	"mug-studio/internal/versions"
)

// VersionMeta is the exported shape of one named version; snapshots
// themselves are not exported.
type VersionMeta struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// LayoutMeta records the layout constants the design was made against.
type LayoutMeta struct {
	Spec  string       `json:"spec"`
	Zones layout.Zones `json:"zones"`
}

// Document is the full JSON export: the serialized scene, layout
// metadata, analytics, and the version list.
type Document struct {
	ExportedAt time.Time         `json:"exported_at"`
	Layout     LayoutMeta        `json:"layout"`
	Design     json.RawMessage   `json:"design"`
	Analytics  analytics.Summary `json:"analytics"`
	Versions   []VersionMeta     `json:"versions"`
}

// BuildDocument assembles the export document.
func BuildDocument(design []byte, spec layout.Spec, zones layout.Zones, summary analytics.Summary, vers []*versions.Version) Document {
	doc := Document{
		ExportedAt: time.Now(),
		Layout: LayoutMeta{
			Spec:  spec.Name(),
			Zones: zones,
		},
		Design:    json.RawMessage(design),
		Analytics: summary,
	}
	for _, v := range vers {
		doc.Versions = append(doc.Versions, VersionMeta{
			ID:        v.ID,
			Name:      v.Name,
			CreatedAt: v.CreatedAt,
		})
	}
	return doc
}

// WriteJSON writes the document to path, indented.
func WriteJSON(path string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
