package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// CSVFormatter writes the projection as one row per age.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(result *domain.CalculationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"age", "phase", "net_worth"}); err != nil {
		return nil, err
	}
	for _, point := range result.Projection {
		row := []string{
			strconv.Itoa(point.Age),
			Phase(point.Age, result.EffectiveRetirementAge),
			point.NetWorth.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
