package render

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gaurav-prasanna/worldometer/core"
)

// JSONRenderer writes a document as JSON. Each row becomes an object keyed
// by column name.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

type jsonTable struct {
	Name    string           `json:"name"`
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

type jsonDocument struct {
	Topic     string      `json:"topic"`
	URL       string      `json:"url"`
	FetchedAt time.Time   `json:"fetched_at"`
	Tables    []jsonTable `json:"tables"`
}

func (r *JSONRenderer) Render(doc core.Document) ([]byte, error) {
	out := jsonDocument{
		Topic:     doc.Topic,
		URL:       doc.URL,
		FetchedAt: doc.FetchedAt,
		Tables:    make([]jsonTable, 0, len(doc.Tables)),
	}
	for _, t := range doc.Tables {
		jt := jsonTable{Name: t.Name, Columns: t.Columns, Rows: make([]map[string]any, 0, len(t.Rows))}
		for _, row := range t.Rows {
			obj := make(map[string]any, len(t.Columns))
			for i, col := range t.Columns {
				if i < len(row) {
					obj[col] = row[i]
				}
			}
			jt.Rows = append(jt.Rows, obj)
		}
		out.Tables = append(out.Tables, jt)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
