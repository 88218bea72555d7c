package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

// TestLoadLevelConfig 测试关卡配置文件加载
func TestLoadLevelConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		// 创建临时测试文件
		tempDir := t.TempDir()
		testFile := filepath.Join(tempDir, "level-1.yaml")

		validYAML := `id: 1
name: "Test Level"
duration: 60.0
targets:
  - { x: 1.0, y: 2.0, z: -3.0 }
  - { x: -1.0, y: 0.5, z: -4.0 }
`
		if err := os.WriteFile(testFile, []byte(validYAML), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		config, err := LoadLevelConfig(testFile)
		if err != nil {
			t.Fatalf("LoadLevelConfig() failed: %v", err)
		}

		if config.ID != 1 {
			t.Errorf("Expected ID 1, got %d", config.ID)
		}
		if config.Name != "Test Level" {
			t.Errorf("Expected Name 'Test Level', got '%s'", config.Name)
		}
		if config.Duration != 60.0 {
			t.Errorf("Expected Duration 60, got %v", config.Duration)
		}
		if config.TargetCount() != 2 {
			t.Fatalf("Expected 2 targets, got %d", config.TargetCount())
		}
		if config.Targets[0].X != 1.0 || config.Targets[0].Y != 2.0 || config.Targets[0].Z != -3.0 {
			t.Errorf("Target 0 mismatch: %+v", config.Targets[0])
		}
		// 默认值
		if config.TargetHealth != DefaultTargetHealth {
			t.Errorf("Expected default TargetHealth %d, got %d", DefaultTargetHealth, config.TargetHealth)
		}
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := LoadLevelConfig("nonexistent-file.yaml")
		if err == nil {
			t.Error("Expected error for nonexistent file, got nil")
		}
	})

	t.Run("invalid YAML", func(t *testing.T) {
		tempDir := t.TempDir()
		testFile := filepath.Join(tempDir, "invalid.yaml")

		invalidYAML := `id: 1
targets: [this is not a vector
`
		if err := os.WriteFile(testFile, []byte(invalidYAML), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		if _, err := LoadLevelConfig(testFile); err == nil {
			t.Error("Expected error for invalid YAML, got nil")
		}
	})
}

// TestLevelConfigValidation 测试关卡配置验证逻辑
func TestLevelConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{"合法配置", "id: 2\nduration: 10\ntargets: [{x: 0, y: 1, z: -2}]\n", false},
		{"缺少ID", "duration: 10\ntargets: [{x: 0, y: 1, z: -2}]\n", true},
		{"时长为零", "id: 1\nduration: 0\ntargets: [{x: 0, y: 1, z: -2}]\n", true},
		{"时长为负", "id: 1\nduration: -5\ntargets: [{x: 0, y: 1, z: -2}]\n", true},
		{"没有靶子", "id: 1\nduration: 10\ntargets: []\n", true},
		{"生命值为负", "id: 1\nduration: 10\ntargetHealth: -1\ntargets: [{x: 0, y: 1, z: -2}]\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseLevelConfig([]byte(tt.yaml), tt.name)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseLevelConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestApplyDefaultsName 测试未配置名称时的默认名称
func TestApplyDefaultsName(t *testing.T) {
	cfg, err := parseLevelConfig([]byte("id: 4\nduration: 10\ntargets: [{x: 0, y: 1, z: -2}]\n"), "test")
	if err != nil {
		t.Fatalf("parseLevelConfig() failed: %v", err)
	}
	if cfg.Name != "Level 4" {
		t.Errorf("default Name = %q, want %q", cfg.Name, "Level 4")
	}
}

func levelFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fsys
}

// TestLoadLevelCatalog 测试关卡目录加载
func TestLoadLevelCatalog(t *testing.T) {
	t.Run("contiguous levels", func(t *testing.T) {
		fsys := levelFS(map[string]string{
			"levels/level-1.yaml": "id: 1\nduration: 60\ntargets: [{x: 0, y: 1, z: -2}, {x: 1, y: 1, z: -2}]\n",
			"levels/level-2.yaml": "id: 2\nduration: 45\ntargets: [{x: 0, y: 1, z: -3}]\n",
			"levels/readme.txt":   "ignored",
		})

		catalog, err := LoadLevelCatalog(fsys, "levels")
		if err != nil {
			t.Fatalf("LoadLevelCatalog() failed: %v", err)
		}
		if catalog.Count() != 2 {
			t.Fatalf("Count() = %d, want 2", catalog.Count())
		}

		lvl, err := catalog.Lookup(2)
		if err != nil {
			t.Fatalf("Lookup(2) failed: %v", err)
		}
		if lvl.Duration != 45 || lvl.TargetCount() != 1 {
			t.Errorf("Lookup(2) = %+v", lvl)
		}
	})

	t.Run("gap in ids fails fast", func(t *testing.T) {
		fsys := levelFS(map[string]string{
			"levels/level-1.yaml": "id: 1\nduration: 60\ntargets: [{x: 0, y: 1, z: -2}]\n",
			"levels/level-3.yaml": "id: 3\nduration: 45\ntargets: [{x: 0, y: 1, z: -3}]\n",
		})
		if _, err := LoadLevelCatalog(fsys, "levels"); err == nil {
			t.Error("Expected error for non-contiguous ids, got nil")
		}
	})

	t.Run("invalid level fails fast", func(t *testing.T) {
		fsys := levelFS(map[string]string{
			"levels/level-1.yaml": "id: 1\nduration: 0\ntargets: [{x: 0, y: 1, z: -2}]\n",
		})
		if _, err := LoadLevelCatalog(fsys, "levels"); err == nil {
			t.Error("Expected error for invalid level, got nil")
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		if _, err := LoadLevelCatalog(fstest.MapFS{}, "levels"); err == nil {
			t.Error("Expected error for empty catalog, got nil")
		}
	})
}

// TestLevelCatalogLookup 测试越界查找
func TestLevelCatalogLookup(t *testing.T) {
	catalog, err := NewLevelCatalog([]*LevelConfig{
		{ID: 2, Duration: 1, TargetHealth: 1, Targets: nil},
		{ID: 1, Duration: 1, TargetHealth: 1, Targets: nil},
	})
	if err != nil {
		t.Fatalf("NewLevelCatalog() failed: %v", err)
	}

	if lvl := catalog.MustLookup(1); lvl.ID != 1 {
		t.Errorf("MustLookup(1).ID = %d, want 1 (catalog should be sorted)", lvl.ID)
	}

	for _, id := range []int{0, 3, -1} {
		_, err := catalog.Lookup(id)
		if !errors.Is(err, ErrLevelNotFound) {
			t.Errorf("Lookup(%d) error = %v, want ErrLevelNotFound", id, err)
		}
		if catalog.HasLevel(id) {
			t.Errorf("HasLevel(%d) = true", id)
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("MustLookup(99) should panic")
		}
	}()
	catalog.MustLookup(99)
}

// TestShippedLevels 验证随游戏发布的关卡数据
func TestShippedLevels(t *testing.T) {
	catalog, err := LoadLevelCatalogDir(filepath.Join("..", "..", "data", "levels"))
	if err != nil {
		t.Fatalf("shipped levels failed to load: %v", err)
	}
	if catalog.Count() != 5 {
		t.Errorf("Count() = %d, want 5", catalog.Count())
	}
	if lvl := catalog.MustLookup(1); lvl.Duration != 60 {
		t.Errorf("level 1 duration = %v, want 60", lvl.Duration)
	}
	if lvl := catalog.MustLookup(3); lvl.TargetCount() != 1 {
		t.Errorf("level 3 target count = %d, want 1", lvl.TargetCount())
	}
	// 靶子生命值一律为 1
	for id := 1; id <= catalog.Count(); id++ {
		if lvl := catalog.MustLookup(id); lvl.TargetHealth != DefaultTargetHealth || DefaultTargetHealth != 1 {
			t.Errorf("level %d targetHealth = %d, want 1", id, lvl.TargetHealth)
		}
	}
}
