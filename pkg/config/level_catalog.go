package config

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"sort"
)

// LevelCatalog 关卡目录
//
// 启动时一次性加载全部关卡并验证，之后只读。
// 关卡序号必须从 1 开始连续，缺失或重复会在加载时报错（fail fast），
// 保证运行期按序号查找不会失败。
type LevelCatalog struct {
	levels []*LevelConfig // levels[i] 对应关卡 i+1
}

// NewLevelCatalog 由已解析的关卡构建目录并验证序号连续
func NewLevelCatalog(levels []*LevelConfig) (*LevelCatalog, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("level catalog is empty")
	}

	for i, lvl := range levels {
		if lvl == nil {
			return nil, fmt.Errorf("level catalog entry %d is nil", i)
		}
	}

	sorted := make([]*LevelConfig, len(levels))
	copy(sorted, levels)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for i, lvl := range sorted {
		if lvl.ID != i+1 {
			return nil, fmt.Errorf("level ids must be contiguous from 1: expected %d, got %d", i+1, lvl.ID)
		}
	}

	return &LevelCatalog{levels: sorted}, nil
}

// LoadLevelCatalog 从文件系统目录加载全部 level-*.yaml
//
// 参数：
//   - fsys: 文件系统（embed.FS 或 os.DirFS）
//   - dir: 关卡目录（fsys 内路径，如 "data/levels"）
func LoadLevelCatalog(fsys fs.FS, dir string) (*LevelCatalog, error) {
	matches, err := fs.Glob(fsys, path.Join(dir, "level-*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list level files in %s: %w", dir, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no level files found in %s", dir)
	}

	levels := make([]*LevelConfig, 0, len(matches))
	for _, match := range matches {
		lvl, err := LoadLevelConfigFS(fsys, match)
		if err != nil {
			return nil, err
		}
		levels = append(levels, lvl)
	}

	catalog, err := NewLevelCatalog(levels)
	if err != nil {
		return nil, fmt.Errorf("invalid level catalog in %s: %w", dir, err)
	}

	log.Printf("[Config] 加载关卡目录 %s: %d 个关卡", dir, catalog.Count())
	return catalog, nil
}

// LoadLevelCatalogDir 从磁盘目录加载关卡（--levels 参数）
func LoadLevelCatalogDir(dir string) (*LevelCatalog, error) {
	return LoadLevelCatalog(os.DirFS(dir), ".")
}

// Count 返回关卡数量
func (c *LevelCatalog) Count() int {
	return len(c.levels)
}

// Lookup 按序号查找关卡
// 序号越界时返回包装了 ErrLevelNotFound 的错误
func (c *LevelCatalog) Lookup(id int) (*LevelConfig, error) {
	if id < 1 || id > len(c.levels) {
		return nil, fmt.Errorf("level %d: %w", id, ErrLevelNotFound)
	}
	return c.levels[id-1], nil
}

// MustLookup 按序号查找关卡，不存在时 panic
// 仅用于启动验证之后的序号（1..Count），越界属于程序错误
func (c *LevelCatalog) MustLookup(id int) *LevelConfig {
	lvl, err := c.Lookup(id)
	if err != nil {
		panic(err)
	}
	return lvl
}

// HasLevel 判断序号是否存在
func (c *LevelCatalog) HasLevel(id int) bool {
	return id >= 1 && id <= len(c.levels)
}
