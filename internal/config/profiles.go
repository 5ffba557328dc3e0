package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrProfileNotFound = errors.New("profile not found")

// AgentProfile customises how a sub-agent runs.
type AgentProfile struct {
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	SystemPrompt string `yaml:"system_prompt"`
	// Model overrides the configured default model.
	Model string `yaml:"model,omitempty"`
}

// ProfileStore keeps one YAML file per profile in Dir.
type ProfileStore struct {
	Dir string
}

// DefaultProfileStore uses <config dir>/agents.
func DefaultProfileStore() ProfileStore {
	return ProfileStore{Dir: filepath.Join(Dir(), "agents")}
}

func (s ProfileStore) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid profile name %q", name)
	}
	return filepath.Join(s.Dir, name+".yaml"), nil
}

func (s ProfileStore) Load(name string) (*AgentProfile, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
		}
		return nil, err
	}

	var p AgentProfile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("profile %q: %w", name, err)
	}
	if p.Name == "" {
		p.Name = name
	}
	return &p, nil
}

func (s ProfileStore) Save(p AgentProfile) error {
	path, err := s.path(p.Name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// List returns the sorted profile names. A missing directory means no
// profiles.
func (s ProfileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".yaml" {
			names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s ProfileStore) Delete(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %q", ErrProfileNotFound, name)
		}
		return err
	}
	return nil
}
