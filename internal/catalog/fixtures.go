package catalog

import (
	_ "embed"
	"fmt"

	"github.com/JulesNsenda/kamelkross/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

type fixtureFile struct {
	Columns []string   `yaml:"columns"`
	Rows    [][]string `yaml:"rows"`
}

// Fixtures returns the built-in demo catalog. The rows go through the same
// Decoder as a live feed so both paths produce identical product shapes.
func Fixtures() []domain.Product {
	products, err := decodeFixtures(fixturesYAML)
	if err != nil {
		// fixtures.yaml is compiled in; a decode failure is a build defect.
		panic(err)
	}
	return products
}

func decodeFixtures(data []byte) ([]domain.Product, error) {
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode fixtures: %w", err)
	}
	rows := make([][]string, 0, len(f.Rows)+1)
	rows = append(rows, f.Columns)
	rows = append(rows, f.Rows...)
	products, _ := Decoder{}.Decode(rows)
	return products, nil
}
