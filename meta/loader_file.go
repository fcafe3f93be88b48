package meta

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/codiumsa/toolkit/log"
	"github.com/codiumsa/toolkit/std"
	"github.com/codiumsa/toolkit/utl"
)

var modeRegex = regexp.MustCompile(`{\s*mode\s*}`)

// FileLoader 从JSON文件加载实体，路径支持 {mode} 占位符
type FileLoader struct {
	v   *std.Validator
	cfg *std.Config
}

func NewFileLoader(v *std.Validator, cfg *std.Config) *FileLoader {
	return &FileLoader{v: v, cfg: cfg}
}

func (my *FileLoader) Name() string  { return LoaderFile }
func (my *FileLoader) Priority() int { return 80 }

func (my *FileLoader) Support() bool {
	return my.cfg != nil && my.cfg.Metadata.File != ""
}

func (my *FileLoader) resolveFilePath() string {
	path := modeRegex.ReplaceAllString(my.cfg.Metadata.File, my.cfg.Mode)
	if filepath.IsAbs(path) || my.cfg.Root == "" {
		return path
	}
	return filepath.Join(my.cfg.Root, path)
}

func (my *FileLoader) Load(r *Registry) error {
	path := my.resolveFilePath()
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read metadata file: %w", err)
	}

	var doc struct {
		Entities []EntityDef `json:"entities"`
	}
	if err := utl.UnmarshalJSON(data, &doc); err != nil {
		return fmt.Errorf("parse metadata file %s: %w", path, err)
	}
	log.Info().Str("file", path).Int("entities", len(doc.Entities)).Msg("从文件加载元数据")
	return putDefs(r, my.v, doc.Entities, my.cfg.Metadata.UseCamel)
}
