// Package curriculum loads the authored topic catalog from the filesystem
// and assembles it into a prerequisite graph.
package curriculum

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/pathwise/backend/internal/graph"
)

// Loader loads and caches curriculum topics from a directory tree of YAML
// files. Each file holds a single topic document.
type Loader struct {
	rootDir string
	topics  map[string]Topic
	mu      sync.RWMutex
}

// NewLoader creates a loader and loads all topics under rootDir.
func NewLoader(rootDir string) (*Loader, error) {
	l := &Loader{
		rootDir: rootDir,
		topics:  make(map[string]Topic),
	}

	if err := l.loadAll(); err != nil {
		return nil, fmt.Errorf("loading curriculum: %w", err)
	}

	slog.Info("curriculum loaded", "topics", len(l.topics))
	return l, nil
}

// GetTopic returns a topic by ID.
func (l *Loader) GetTopic(id string) (Topic, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.topics[id]
	return t, ok
}

// AllTopics returns all loaded topics.
func (l *Loader) AllTopics() []Topic {
	l.mu.RLock()
	defer l.mu.RUnlock()
	topics := make([]Topic, 0, len(l.topics))
	for _, t := range l.topics {
		topics = append(topics, t)
	}
	return topics
}

// BuildGraph assembles the loaded catalog into a prerequisite DAG.
// Topics are registered first, then every prerequisite edge; a
// prerequisite referencing an unknown topic or closing a cycle fails the
// build with the underlying graph error.
func (l *Loader) BuildGraph() (*graph.DAG, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	g := graph.New()
	for _, t := range l.topics {
		err := g.AddTopic(graph.Topic{
			ID:               t.ID,
			Name:             t.Name,
			Difficulty:       graph.Difficulty(t.Difficulty),
			Category:         t.Category,
			EstimatedMinutes: t.EstimatedMinutes,
		})
		if err != nil {
			return nil, fmt.Errorf("registering topic %s: %w", t.ID, err)
		}
	}

	for _, t := range l.topics {
		for _, prereq := range t.Prerequisites {
			if err := g.AddEdge(prereq, t.ID); err != nil {
				return nil, fmt.Errorf("wiring prerequisite %s of %s: %w", prereq, t.ID, err)
			}
		}
	}

	return g, nil
}

func (l *Loader) loadAll() error {
	return filepath.Walk(l.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
			return nil
		}
		return l.loadTopic(path)
	})
}

func (l *Loader) loadTopic(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var topic Topic
	if err := yaml.Unmarshal(data, &topic); err != nil {
		slog.Warn("skipping invalid topic YAML", "path", path, "error", err)
		return nil
	}

	if topic.ID == "" {
		return nil // Not a topic file
	}
	if !graph.Difficulty(topic.Difficulty).Valid() {
		return fmt.Errorf("topic %s in %s: invalid difficulty %q", topic.ID, path, topic.Difficulty)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.topics[topic.ID]; exists {
		return fmt.Errorf("duplicate topic id %s in %s", topic.ID, path)
	}
	l.topics[topic.ID] = topic

	return nil
}
