// Package embedded 提供嵌入关卡数据的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让 app 和命令行工具可以访问嵌入的关卡。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/decker502/starblaster/pkg/config"
)

// LevelDir 关卡文件在数据文件系统中的目录
const LevelDir = "data/levels"

// ErrNotInitialized 未调用 Init 就访问资源
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

var (
	dataFS      fs.FS
	initialized bool
)

// Init 设置数据文件系统
// 必须在 main() 开始时、任何关卡加载之前调用
// 测试中可以传入 fstest.MapFS
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 统一路径格式并检查前缀
func normalize(p string) (string, error) {
	if !initialized {
		return "", ErrNotInitialized
	}
	// 标准化路径分隔符为正斜杠（embed.FS 使用正斜杠）
	p = strings.TrimPrefix(filepath.ToSlash(p), "./")
	if !strings.HasPrefix(p, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", p)
	}
	return p, nil
}

// ReadFile 读取嵌入文件内容
// 路径必须以 "data/" 开头
func ReadFile(p string) ([]byte, error) {
	p, err := normalize(p)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, p)
}

// ReadDir 读取目录内容
// 路径必须以 "data/" 开头
func ReadDir(p string) ([]fs.DirEntry, error) {
	p, err := normalize(p)
	if err != nil {
		return nil, err
	}
	return fs.ReadDir(dataFS, p)
}

// Exists 检查文件是否存在
func Exists(p string) bool {
	p, err := normalize(p)
	if err != nil {
		return false
	}
	_, err = fs.Stat(dataFS, p)
	return err == nil
}

// LoadLevels 解析嵌入的全部关卡，按 ID 排序
// 任何一个关卡校验失败都会返回错误（带文件名）
func LoadLevels() ([]*config.LevelConfig, error) {
	entries, err := ReadDir(LevelDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded levels: %w", err)
	}

	levels := make([]*config.LevelConfig, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		p := path.Join(LevelDir, entry.Name())
		data, err := ReadFile(p)
		if err != nil {
			return nil, err
		}
		level, err := config.ParseLevelConfig(data)
		if err != nil {
			return nil, fmt.Errorf("embedded level %s: %w", p, err)
		}
		levels = append(levels, level)
	}

	sort.Slice(levels, func(i, j int) bool { return levels[i].ID < levels[j].ID })
	return levels, nil
}
