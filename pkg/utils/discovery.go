package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/simforge/fea-sim/pkg/dispatch"
	"github.com/simforge/fea-sim/pkg/logger"
)

// RoutineInfo contains the metadata of one discovered test type routine.
type RoutineInfo struct {
	Path   string
	Config dispatch.RoutineConfig
}

// DiscoverRoutines finds all testtype.yaml files under the cmd directory.
func DiscoverRoutines() ([]RoutineInfo, error) {
	rootDir, err := findProjectRoot()
	if err != nil {
		return nil, err
	}

	var routines []RoutineInfo
	err = filepath.Walk(filepath.Join(rootDir, "cmd"), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Name() == "testtype.yaml" {
			routineInfo, err := loadRoutineConfig(path)
			if err != nil {
				logger.Warnf("Failed to load %s: %v", path, err)
				return nil
			}
			routines = append(routines, *routineInfo)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan for test type routines: %w", err)
	}

	return routines, nil
}

// FindRoutineInfo returns the metadata for one test type.
func FindRoutineInfo(testType string) (*RoutineInfo, error) {
	routines, err := DiscoverRoutines()
	if err != nil {
		return nil, err
	}
	for i := range routines {
		if routines[i].Config.TestType == testType {
			return &routines[i], nil
		}
	}
	return nil, fmt.Errorf("no metadata found for test type %s", testType)
}

func loadRoutineConfig(path string) (*RoutineInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read routine metadata: %w", err)
	}

	var config dispatch.RoutineConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse routine metadata: %w", err)
	}

	return &RoutineInfo{
		Path:   filepath.Dir(path),
		Config: config,
	}, nil
}

// findProjectRoot walks up from the working directory until go.mod is found.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find project root (no go.mod found)")
		}
		dir = parent
	}
}
