package sidecar

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// ConfigLoader handles loading and watching the configuration file
type ConfigLoader struct {
	path     string
	watcher  *fsnotify.Watcher
	current  *Config
	mu       sync.RWMutex
	onChange func(*Config)
	logger   *slog.Logger
	close    chan struct{}
	once     sync.Once
}

// NewConfigLoader creates a new ConfigLoader
func NewConfigLoader(path string, logger *slog.Logger) (*ConfigLoader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ConfigLoader{
		path:   absPath,
		logger: logger,
		close:  make(chan struct{}),
	}, nil
}

// Load reads the configuration file, expands environment variables, applies
// defaults and validates the result. The current config is replaced only on
// success.
func (cl *ConfigLoader) Load() (*Config, error) {
	data, err := os.ReadFile(cl.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := ParseConfig(data)
	if err != nil {
		return nil, err
	}

	cl.mu.Lock()
	cl.current = config
	cl.mu.Unlock()

	return config, nil
}

// ParseConfig decodes YAML over DefaultConfig after expanding ${VAR} references
func ParseConfig(data []byte) (*Config, error) {
	expanded := []byte(os.ExpandEnv(string(data)))

	config := DefaultConfig()
	if err := yaml.Unmarshal(expanded, config); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// Watch starts monitoring the config file for changes.
// onChange is called with each valid new configuration; invalid edits are
// logged and the previous configuration is retained.
func (cl *ConfigLoader) Watch(onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	cl.watcher = watcher
	cl.onChange = onChange

	// Editors replace files atomically, so watch the directory.
	dir := filepath.Dir(cl.path)
	if err := cl.watcher.Add(dir); err != nil {
		cl.watcher.Close()
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	go cl.watchLoop()

	return nil
}

func (cl *ConfigLoader) watchLoop() {
	for {
		select {
		case <-cl.close:
			return
		case event, ok := <-cl.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cl.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			newConfig, err := cl.Load()
			if err != nil {
				cl.logger.Warn("Ignoring invalid configuration change", "path", cl.path, "error", err)
				continue
			}
			cl.logger.Info("Configuration reloaded", "path", cl.path)
			if cl.onChange != nil {
				cl.onChange(newConfig)
			}

		case err, ok := <-cl.watcher.Errors:
			if !ok {
				return
			}
			cl.logger.Warn("Config watcher error", "error", err)
		}
	}
}

// Current returns the current configuration
func (cl *ConfigLoader) Current() *Config {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return cl.current
}

// Close stops the watcher
func (cl *ConfigLoader) Close() error {
	cl.once.Do(func() { close(cl.close) })
	if cl.watcher != nil {
		return cl.watcher.Close()
	}
	return nil
}
