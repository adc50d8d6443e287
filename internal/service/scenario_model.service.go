package service

import (
	"fmt"
	"recallvantage/internal/domain"
	"recallvantage/internal/repository"
	"strings"
)

// ScenarioModelService merges the built in presets with models saved to
// the ledger db. presets always win on a name clash
type ScenarioModelService interface {
	List() ([]domain.ScenarioModel, error)
	Get(name string) (*domain.ScenarioModel, error)
	Save(m domain.ScenarioModel) (*domain.ScenarioModel, error)
}

type scenarioModelServiceHandler struct {
	// nil when no db is configured, only presets are served then
	ScenarioModelRepository repository.ScenarioModelRepository
}

func NewScenarioModelService(scenarioModelRepository repository.ScenarioModelRepository) ScenarioModelService {
	return scenarioModelServiceHandler{
		ScenarioModelRepository: scenarioModelRepository,
	}
}

func presetByName(name string) (*domain.ScenarioModel, bool) {
	for _, m := range domain.PresetScenarioModels() {
		if strings.EqualFold(m.Name, name) {
			return &m, true
		}
	}
	return nil, false
}

func (h scenarioModelServiceHandler) List() ([]domain.ScenarioModel, error) {
	out := domain.PresetScenarioModels()
	if h.ScenarioModelRepository == nil {
		return out, nil
	}

	saved, err := h.ScenarioModelRepository.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list saved scenario models: %w", err)
	}
	for _, m := range saved {
		if _, ok := presetByName(m.Name); ok {
			continue
		}
		out = append(out, m)
	}

	return out, nil
}

func (h scenarioModelServiceHandler) Get(name string) (*domain.ScenarioModel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = domain.DefaultScenarioModelName
	}
	if m, ok := presetByName(name); ok {
		return m, nil
	}
	if h.ScenarioModelRepository == nil {
		return nil, fmt.Errorf("scenario model %s: %w", name, domain.ErrNotFound)
	}

	m, err := h.ScenarioModelRepository.Get(name)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("scenario model %s: %w", name, domain.ErrNotFound)
	}

	return m, nil
}

func (h scenarioModelServiceHandler) Save(m domain.ScenarioModel) (*domain.ScenarioModel, error) {
	validated, err := domain.NewScenarioModel(m.Name, m.Categories)
	if err != nil {
		return nil, err
	}
	if validated.Name == "" {
		return nil, domain.NewInvalidParameterError("model.name", "must not be empty")
	}
	if _, ok := presetByName(validated.Name); ok {
		return nil, domain.NewInvalidParameterError("model.name", "'%s' is a built in preset", validated.Name)
	}
	if h.ScenarioModelRepository == nil {
		return nil, fmt.Errorf("failed to save scenario model %s: no database configured", validated.Name)
	}

	if err := h.ScenarioModelRepository.Upsert(*validated); err != nil {
		return nil, err
	}

	return validated, nil
}
