package exportsvc

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/trezcool/mindbloom/core/wellness"
)

type jsonExporter struct{}

func (jsonExporter) Format() Format { return FormatJSON }

func (jsonExporter) Write(w io.Writer, rows []wellness.Row) error {
	if rows == nil {
		rows = []wellness.Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func (jsonExporter) Read(r io.Reader) ([]wellness.Row, error) {
	var rows []wellness.Row
	if err := json.NewDecoder(r).Decode(&rows); err != nil && err != io.EOF {
		return nil, err
	}
	return rows, nil
}

type yamlExporter struct{}

func (yamlExporter) Format() Format { return FormatYAML }

func (yamlExporter) Write(w io.Writer, rows []wellness.Row) error {
	if rows == nil {
		rows = []wellness.Row{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return err
	}
	return enc.Close()
}

func (yamlExporter) Read(r io.Reader) ([]wellness.Row, error) {
	var rows []wellness.Row
	if err := yaml.NewDecoder(r).Decode(&rows); err != nil && err != io.EOF {
		return nil, err
	}
	return rows, nil
}
