// Package config loads the crew configuration documents and the process
// settings.
package config

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mfateev/project-planner/internal/instructions"
	"github.com/mfateev/project-planner/internal/models"
)

//go:embed defaults/*.yaml
var defaultFiles embed.FS

// Paths reported in errors for the embedded documents.
const (
	DefaultAgentsPath = "defaults/agents.yaml"
	DefaultTasksPath  = "defaults/tasks.yaml"
)

// AgentConfig is one entry of the agents document.
type AgentConfig struct {
	Role      string `yaml:"role"`
	Goal      string `yaml:"goal"`
	Backstory string `yaml:"backstory"`
	Verbose   bool   `yaml:"verbose,omitempty"`
}

// TaskConfig is one entry of the tasks document. Agent is optional; when set
// it must name the role the step is bound to.
type TaskConfig struct {
	Description    string `yaml:"description"`
	ExpectedOutput string `yaml:"expected_output"`
	Agent          string `yaml:"agent,omitempty"`
}

// CrewConfig holds both documents.
type CrewConfig struct {
	Agents map[string]AgentConfig
	Tasks  map[string]TaskConfig
}

// LoadCrewConfig loads the agents and tasks documents. An empty path selects
// the embedded default document.
func LoadCrewConfig(agentsPath, tasksPath string) (*CrewConfig, error) {
	agents, err := LoadAgents(agentsPath)
	if err != nil {
		return nil, err
	}
	tasks, err := LoadTasks(tasksPath)
	if err != nil {
		return nil, err
	}
	return &CrewConfig{Agents: agents, Tasks: tasks}, nil
}

// LoadAgents reads and validates an agents document.
func LoadAgents(path string) (map[string]AgentConfig, error) {
	path, data, err := readDocument(path, DefaultAgentsPath)
	if err != nil {
		return nil, err
	}
	agents, err := decodeStrict[AgentConfig](path, data)
	if err != nil {
		return nil, err
	}
	for _, name := range sortedKeys(agents) {
		a := agents[name]
		if err := requireFields(map[string]string{"role": a.Role, "goal": a.Goal, "backstory": a.Backstory}); err != nil {
			return nil, &models.ConfigError{Path: path, Key: name, Err: err}
		}
		if err := checkPlaceholders(a.Role, a.Goal, a.Backstory); err != nil {
			return nil, &models.ConfigError{Path: path, Key: name, Err: err}
		}
	}
	return agents, nil
}

// LoadTasks reads and validates a tasks document.
func LoadTasks(path string) (map[string]TaskConfig, error) {
	path, data, err := readDocument(path, DefaultTasksPath)
	if err != nil {
		return nil, err
	}
	tasks, err := decodeStrict[TaskConfig](path, data)
	if err != nil {
		return nil, err
	}
	for _, name := range sortedKeys(tasks) {
		t := tasks[name]
		if err := requireFields(map[string]string{"description": t.Description, "expected_output": t.ExpectedOutput}); err != nil {
			return nil, &models.ConfigError{Path: path, Key: name, Err: err}
		}
		if err := checkPlaceholders(t.Description, t.ExpectedOutput); err != nil {
			return nil, &models.ConfigError{Path: path, Key: name, Err: err}
		}
	}
	return tasks, nil
}

func readDocument(path, defaultPath string) (string, []byte, error) {
	if path == "" {
		data, err := defaultFiles.ReadFile(defaultPath)
		if err != nil {
			return defaultPath, nil, &models.ConfigError{Path: defaultPath, Err: err}
		}
		return defaultPath, data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return path, nil, &models.ConfigError{Path: path, Err: fmt.Errorf("read file: %w", err)}
	}
	return path, data, nil
}

// decodeStrict decodes a name -> T mapping, rejecting unknown keys.
func decodeStrict[T any](path string, data []byte) (map[string]T, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var out map[string]T
	if err := dec.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &models.ConfigError{Path: path, Err: errors.New("document is empty")}
		}
		return nil, &models.ConfigError{Path: path, Err: fmt.Errorf("unmarshal: %w", err)}
	}
	if len(out) == 0 {
		return nil, &models.ConfigError{Path: path, Err: errors.New("document has no entries")}
	}
	return out, nil
}

func requireFields(fields map[string]string) error {
	var missing []string
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("missing required field(s): %s", strings.Join(missing, ", "))
}

// checkPlaceholders rejects {variables} no pipeline input provides.
func checkPlaceholders(texts ...string) error {
	known := make(map[string]bool)
	for _, v := range models.KnownVariables() {
		known[v] = true
	}
	for _, text := range texts {
		for _, name := range instructions.Placeholders(text) {
			if !known[name] {
				return fmt.Errorf("unknown template variable {%s} (known: %s)",
					name, strings.Join(models.KnownVariables(), ", "))
			}
		}
	}
	return nil
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
