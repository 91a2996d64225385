package exportsvc

import (
	"encoding/csv"
	"io"
	"slices"
	"strconv"

	"github.com/pkg/errors"

	"github.com/trezcool/mindbloom/core/wellness"
)

type csvExporter struct{}

func (csvExporter) Format() Format { return FormatCSV }

func (csvExporter) Write(w io.Writer, rows []wellness.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(wellness.Columns); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row.Values()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (csvExporter) Read(r io.Reader) ([]wellness.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(wellness.Columns)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	if !slices.Equal(header, wellness.Columns) {
		return nil, ErrHeaderMismatch
	}

	var rows []wellness.Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		} else if err != nil {
			return nil, err
		}
		minutes, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			line, _ := cr.FieldPos(3)
			return nil, errors.Wrapf(err, "line %d: ScreenTime", line)
		}
		rows = append(rows, wellness.Row{
			Name:       rec[0],
			Wellness:   rec[1],
			MeTime:     rec[2],
			ScreenTime: minutes,
			Status:     rec[4],
			Notes:      rec[5],
			Date:       rec[6],
		})
	}
}
