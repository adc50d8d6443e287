// Package scenariofile reads and writes scenario models as yaml or csv,
// so analysts can keep their own category weights next to a position.
package scenariofile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"recallvantage/internal/domain"
	"strings"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

const (
	Format_YAML = "yaml"
	Format_CSV  = "csv"
)

type categoryRow struct {
	Name         string  `yaml:"name" csv:"name"`
	Weight       float64 `yaml:"weight" csv:"weight"`
	ImpactMean   float64 `yaml:"impact_mean" csv:"impact_mean"`
	ImpactStddev float64 `yaml:"impact_stddev" csv:"impact_stddev"`
	Baseline     bool    `yaml:"baseline,omitempty" csv:"baseline"`
}

type modelFile struct {
	Name       string        `yaml:"name"`
	Categories []categoryRow `yaml:"categories"`
}

func (r categoryRow) toDomain() domain.ScenarioCategory {
	return domain.ScenarioCategory{
		Name:   strings.TrimSpace(r.Name),
		Weight: r.Weight,
		Impact: domain.ImpactDistribution{
			Mean:   r.ImpactMean,
			Stddev: r.ImpactStddev,
		},
		Baseline: r.Baseline,
	}
}

func rowsFromDomain(m domain.ScenarioModel) []categoryRow {
	out := []categoryRow{}
	for _, c := range m.Categories {
		out = append(out, categoryRow{
			Name:         c.Name,
			Weight:       c.Weight,
			ImpactMean:   c.Impact.Mean,
			ImpactStddev: c.Impact.Stddev,
			Baseline:     c.Baseline,
		})
	}
	return out
}

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return Format_YAML, nil
	case ".csv":
		return Format_CSV, nil
	}
	return "", fmt.Errorf("unsupported scenario file extension '%s', expected .yaml, .yml or .csv", filepath.Ext(path))
}

// Load parses and validates the model at path. csv files carry no name,
// the file name without extension is used
func Load(path string) (*domain.ScenarioModel, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario file: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(f, format, name)
}

// Parse reads a model in the given format. defaultName is used when the
// input does not name the model
func Parse(r io.Reader, format string, defaultName string) (*domain.ScenarioModel, error) {
	var (
		name string
		rows []categoryRow
	)

	switch format {
	case Format_YAML:
		file := modelFile{}
		decoder := yaml.NewDecoder(r)
		decoder.KnownFields(true)
		if err := decoder.Decode(&file); err != nil {
			return nil, fmt.Errorf("failed to parse scenario yaml: %w", err)
		}
		name = file.Name
		rows = file.Categories
	case Format_CSV:
		if err := gocsv.Unmarshal(r, &rows); err != nil {
			return nil, fmt.Errorf("failed to parse scenario csv: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown scenario file format '%s'", format)
	}

	if strings.TrimSpace(name) == "" {
		name = defaultName
	}
	categories := []domain.ScenarioCategory{}
	for _, row := range rows {
		categories = append(categories, row.toDomain())
	}

	return domain.NewScenarioModel(name, categories)
}

func Encode(w io.Writer, m domain.ScenarioModel, format string) error {
	switch format {
	case Format_YAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(modelFile{Name: m.Name, Categories: rowsFromDomain(m)}); err != nil {
			return fmt.Errorf("failed to encode scenario yaml: %w", err)
		}
		return encoder.Close()
	case Format_CSV:
		rows := rowsFromDomain(m)
		if err := gocsv.Marshal(&rows, w); err != nil {
			return fmt.Errorf("failed to encode scenario csv: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown scenario file format '%s'", format)
}

func EncodeToString(m domain.ScenarioModel, format string) (string, error) {
	buf := &bytes.Buffer{}
	if err := Encode(buf, m, format); err != nil {
		return "", err
	}
	return buf.String(), nil
}
