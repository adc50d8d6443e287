package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"recallvantage/internal/db/models/postgres/public/model"
	"recallvantage/internal/db/models/postgres/public/table"
	"recallvantage/internal/domain"
	"time"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

type ScenarioModelRepository interface {
	// Upsert replaces the categories of an existing model with the same
	// name
	Upsert(m domain.ScenarioModel) error
	Get(name string) (*domain.ScenarioModel, error)
	List() ([]domain.ScenarioModel, error)
}

type scenarioModelRepositoryHandler struct {
	Db *sql.DB
}

func NewScenarioModelRepository(db *sql.DB) ScenarioModelRepository {
	return scenarioModelRepositoryHandler{Db: db}
}

func (h scenarioModelRepositoryHandler) Upsert(m domain.ScenarioModel) error {
	categoriesJson, err := json.Marshal(m.Categories)
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}
	now := time.Now().UTC()

	t := table.ScenarioModel
	query := t.
		INSERT(t.MutableColumns).
		MODEL(model.ScenarioModel{
			Name:           m.Name,
			CategoriesJSON: string(categoriesJson),
			CreatedAt:      now,
			ModifiedAt:     now,
		}).
		ON_CONFLICT(t.Name).
		DO_UPDATE(postgres.SET(
			t.CategoriesJSON.SET(t.EXCLUDED.CategoriesJSON),
			t.ModifiedAt.SET(t.EXCLUDED.ModifiedAt),
		))

	_, err = query.Exec(h.Db)
	if err != nil {
		return fmt.Errorf("failed to upsert scenario model %s: %w", m.Name, err)
	}

	return nil
}

// Get returns nil if no model has that name
func (h scenarioModelRepositoryHandler) Get(name string) (*domain.ScenarioModel, error) {
	query := table.ScenarioModel.
		SELECT(table.ScenarioModel.AllColumns).
		WHERE(table.ScenarioModel.Name.EQ(postgres.String(name)))

	result := model.ScenarioModel{}
	err := query.Query(h.Db, &result)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get scenario model %s: %w", name, err)
	}

	out, err := scenarioModelFromRow(result)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (h scenarioModelRepositoryHandler) List() ([]domain.ScenarioModel, error) {
	query := table.ScenarioModel.
		SELECT(table.ScenarioModel.AllColumns).
		ORDER_BY(table.ScenarioModel.Name.ASC())

	results := []model.ScenarioModel{}
	err := query.Query(h.Db, &results)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("failed to list scenario models: %w", err)
	}

	out := []domain.ScenarioModel{}
	for _, r := range results {
		m, err := scenarioModelFromRow(r)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}

	return out, nil
}

func scenarioModelFromRow(r model.ScenarioModel) (*domain.ScenarioModel, error) {
	categories := []domain.ScenarioCategory{}
	if err := json.Unmarshal([]byte(r.CategoriesJSON), &categories); err != nil {
		return nil, fmt.Errorf("failed to unmarshal categories for scenario model %s: %w", r.Name, err)
	}
	return &domain.ScenarioModel{
		Name:       r.Name,
		Categories: categories,
	}, nil
}
