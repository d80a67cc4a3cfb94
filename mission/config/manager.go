package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

var (
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrInvalidScenario  = errors.New("invalid scenario")
)

// Extensions lists the scenario formats in lookup order
var Extensions = []string{".yaml", ".yml", ".json", ".txt"}

// ScenarioInfo summarises a scenario for listings
type ScenarioInfo struct {
	Filename    string `json:"filename"`
	ScenarioID  string `json:"scenario_id"` // identifier to pass to LoadScenario
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MaxX        int    `json:"max_x"`
	MaxY        int    `json:"max_y"`
	Rovers      int    `json:"rovers"`
}

// Manager handles scenario loading and caching
type Manager struct {
	scenarioDir string
	scenarios   map[string]*Scenario
	mu          sync.RWMutex
}

// NewManager creates a new scenario manager rooted at scenarioDir
func NewManager(scenarioDir string) (*Manager, error) {
	info, err := os.Stat(scenarioDir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("scenario directory does not exist: %s", scenarioDir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat scenario directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scenario path is not a directory: %s", scenarioDir)
	}

	return &Manager{
		scenarioDir: scenarioDir,
		scenarios:   make(map[string]*Scenario),
	}, nil
}

// Dir returns the directory scenarios are read from
func (m *Manager) Dir() string {
	return m.scenarioDir
}

// LoadScenario loads a scenario by id. A bare id resolves through Extensions
// in order; a file name with an extension loads exactly that file.
func (m *Manager) LoadScenario(name string) (*Scenario, error) {
	id := scenarioID(name)
	if id == "" || strings.ContainsAny(id, `/\`) || strings.HasPrefix(id, ".") {
		return nil, fmt.Errorf("%w: %q", ErrScenarioNotFound, id)
	}

	// bare ids and explicit file names are cached separately
	var ext string
	if id != name {
		ext = filepath.Ext(name)
	}
	key := id + ext

	m.mu.RLock()
	// Check cache first
	if scenario, exists := m.scenarios[key]; exists {
		m.mu.RUnlock()
		return scenario, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if scenario, exists := m.scenarios[key]; exists {
		return scenario, nil
	}

	path, err := m.findFile(id, ext)
	if err != nil {
		return nil, err
	}

	scenario, err := LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidScenario, filepath.Base(path), err)
	}

	m.scenarios[key] = scenario
	return scenario, nil
}

// ListScenarios returns every loadable scenario ordered by id. Files that fail
// to load are skipped.
func (m *Manager) ListScenarios() ([]*ScenarioInfo, error) {
	entries, err := os.ReadDir(m.scenarioDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario directory: %w", err)
	}

	var infos []*ScenarioInfo
	seen := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsDir() || !isScenarioFile(entry.Name()) {
			continue
		}

		id := scenarioID(entry.Name())
		if seen[id] {
			continue
		}

		scenario, err := m.LoadScenario(id)
		if err != nil {
			continue
		}
		seen[id] = true

		infos = append(infos, &ScenarioInfo{
			Filename:    entry.Name(),
			ScenarioID:  id,
			Name:        scenario.Name,
			Description: scenario.Description,
			MaxX:        scenario.Plateau.MaxX,
			MaxY:        scenario.Plateau.MaxY,
			Rovers:      len(scenario.Rovers),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ScenarioID < infos[j].ScenarioID
	})
	return infos, nil
}

// Files returns the paths of all scenario files, including ones that fail to load
func (m *Manager) Files() ([]string, error) {
	entries, err := os.ReadDir(m.scenarioDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && isScenarioFile(entry.Name()) {
			files = append(files, filepath.Join(m.scenarioDir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// SaveScenario writes a scenario to disk. The name may carry an extension to
// choose the format; YAML is used otherwise.
func (m *Manager) SaveScenario(name string, scenario *Scenario) error {
	if err := scenario.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	ext := filepath.Ext(name)
	if !isScenarioFile(name) {
		ext = ".yaml"
	}
	id := scenarioID(name)

	data, err := Encode(ext, scenario)
	if err != nil {
		return fmt.Errorf("failed to encode scenario: %w", err)
	}

	path := filepath.Join(m.scenarioDir, id+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write scenario file: %w", err)
	}

	m.mu.Lock()
	delete(m.scenarios, id)
	m.scenarios[id+ext] = scenario
	m.mu.Unlock()

	return nil
}

// RefreshCache drops every cached scenario so the next load rereads disk
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scenarios = make(map[string]*Scenario)
}

// findFile resolves an id to a file. With ext set only that file is tried;
// otherwise the first existing file in Extensions order wins.
func (m *Manager) findFile(id, ext string) (string, error) {
	if ext != "" {
		path := filepath.Join(m.scenarioDir, id+ext)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: %s%s", ErrScenarioNotFound, id, ext)
		}
		return path, nil
	}
	for _, ext := range Extensions {
		path := filepath.Join(m.scenarioDir, id+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrScenarioNotFound, id)
}

func isScenarioFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, known := range Extensions {
		if ext == known {
			return true
		}
	}
	return false
}

func scenarioID(name string) string {
	if isScenarioFile(name) {
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}
