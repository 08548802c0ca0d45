package main

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

// fixture is the on-disk form read by every file-based command. JSON fixtures
// parse too since YAML is a superset.
type fixture struct {
	Tables     models.ReferenceTables      `yaml:"reference"`
	Schedule   []models.Event              `yaml:"schedule"`
	Candidates []models.GeneratedTimetable `yaml:"candidates"`
}

func loadFixture(path string) (*fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var f fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode fixture %s: %w", path, err)
	}
	return &f, nil
}

// Reference lets a fixture stand in for the reference repository.
func (f *fixture) Reference(context.Context) (*models.ReferenceData, error) {
	return models.NewReferenceData(f.Tables), nil
}
