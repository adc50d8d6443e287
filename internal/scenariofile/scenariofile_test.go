package scenariofile

import (
	"errors"
	"os"
	"path/filepath"
	"recallvantage/internal/domain"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const binaryYaml = `
name: my-binary
categories:
  - name: Recall
    weight: 0.9
    impact_mean: -0.15
    impact_stddev: 0.05
  - name: No Event
    weight: 0.1
    impact_mean: 0
    impact_stddev: 0.02
    baseline: true
`

const binaryCsv = `name,weight,impact_mean,impact_stddev,baseline
Recall,0.9,-0.15,0.05,false
No Event,0.1,0,0.02,true
`

func expectedBinary(name string) domain.ScenarioModel {
	m := domain.TwoOutcomeRecallScenarioModel()
	m.Name = name
	return m
}

func TestParse(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		m, err := Parse(strings.NewReader(binaryYaml), Format_YAML, "fallback")
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(expectedBinary("my-binary"), *m))
	})

	t.Run("csv uses default name", func(t *testing.T) {
		m, err := Parse(strings.NewReader(binaryCsv), Format_CSV, "fallback")
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(expectedBinary("fallback"), *m))
	})

	t.Run("unknown yaml field", func(t *testing.T) {
		_, err := Parse(strings.NewReader("name: x\ncategories:\n  - name: a\n    wieght: 1\n"), Format_YAML, "")
		require.ErrorContains(t, err, "failed to parse scenario yaml")
	})

	t.Run("weights are validated", func(t *testing.T) {
		bad := strings.Replace(binaryCsv, "Recall,0.9", "Recall,0.4", 1)
		_, err := Parse(strings.NewReader(bad), Format_CSV, "bad")
		var invalidErr domain.InvalidParameterError
		require.True(t, errors.As(err, &invalidErr))
		require.Equal(t, "model.weights", invalidErr.Field)
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "binary.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(binaryYaml), 0o600))
	m, err := Load(yamlPath)
	require.NoError(t, err)
	require.Equal(t, "my-binary", m.Name)

	csvPath := filepath.Join(dir, "ev-battery.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(binaryCsv), 0o600))
	m, err = Load(csvPath)
	require.NoError(t, err)
	require.Equal(t, "ev-battery", m.Name)

	_, err = Load(filepath.Join(dir, "model.json"))
	require.ErrorContains(t, err, "unsupported scenario file extension")
}

func TestEncode(t *testing.T) {
	preset := domain.DefaultRecallScenarioModel()
	for _, format := range []string{Format_YAML, Format_CSV} {
		t.Run(format, func(t *testing.T) {
			out, err := EncodeToString(preset, format)
			require.NoError(t, err)

			m, err := Parse(strings.NewReader(out), format, preset.Name)
			require.NoError(t, err)
			require.Equal(t, "", cmp.Diff(preset, *m))
		})
	}
}
