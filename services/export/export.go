package exportsvc

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/mindbloom/core/wellness"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	ErrNothingToExport = errors.New("no entries to export")
	ErrUnknownFormat   = errors.New("unknown export format")
	ErrHeaderMismatch  = errors.New("file columns do not match the export columns")
)

// Exporter writes rows to, and reads them back from, one file format.
type Exporter interface {
	Format() Format
	Write(w io.Writer, rows []wellness.Row) error
	Read(r io.Reader) ([]wellness.Row, error)
}

func New(format Format) (Exporter, error) {
	switch format {
	case FormatCSV:
		return csvExporter{}, nil
	case FormatJSON:
		return jsonExporter{}, nil
	case FormatYAML:
		return yamlExporter{}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

// ParseFormat accepts a format name, ignoring case. "yml" is an alias of yaml.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
	}
}

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.Wrapf(ErrUnknownFormat, "no extension in %q", path)
	}
	return ParseFormat(ext)
}

func Write(w io.Writer, format Format, rows []wellness.Row) error {
	exp, err := New(format)
	if err != nil {
		return err
	}
	return exp.Write(w, rows)
}

// SaveFile writes rows to path, replacing the file atomically. With appendMode the rows already in
// the file are kept ahead of the new ones. An empty format is inferred from the path.
// It returns the number of rows the file holds.
func SaveFile(path string, format Format, rows []wellness.Row, appendMode bool) (int, error) {
	if len(rows) == 0 {
		return 0, ErrNothingToExport
	}
	exp, err := exporterFor(path, format)
	if err != nil {
		return 0, err
	}

	if appendMode {
		existing, err := readFile(path, exp)
		if err != nil {
			return 0, err
		}
		rows = append(existing, rows...)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return 0, errors.Wrap(err, "creating export file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }() // no-op once renamed

	if err = exp.Write(tmp, rows); err != nil {
		_ = tmp.Close()
		return 0, errors.Wrapf(err, "writing %s", exp.Format())
	}
	if err = tmp.Close(); err != nil {
		return 0, errors.Wrap(err, "closing export file")
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return 0, errors.Wrap(err, "saving export file")
	}
	return len(rows), nil
}

// ReadFile reads back rows saved by SaveFile. A missing file holds no rows.
func ReadFile(path string, format Format) ([]wellness.Row, error) {
	exp, err := exporterFor(path, format)
	if err != nil {
		return nil, err
	}
	return readFile(path, exp)
}

func exporterFor(path string, format Format) (Exporter, error) {
	if format == "" {
		var err error
		if format, err = FormatFromPath(path); err != nil {
			return nil, err
		}
	}
	return New(format)
}

func readFile(path string, exp Exporter) ([]wellness.Row, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "opening export file")
	}
	defer func() { _ = f.Close() }()

	rows, err := exp.Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return rows, nil
}
