package meta

import (
	"github.com/codiumsa/toolkit/std"
)

const entitiesKey = "metadata.entities"

// ConfigLoader 从 metadata.entities 配置加载实体
type ConfigLoader struct {
	k   *std.Konfig
	v   *std.Validator
	cfg *std.Config
}

func NewConfigLoader(k *std.Konfig, v *std.Validator, cfg *std.Config) *ConfigLoader {
	return &ConfigLoader{k: k, v: v, cfg: cfg}
}

func (my *ConfigLoader) Name() string  { return LoaderConfig }
func (my *ConfigLoader) Priority() int { return 100 }

func (my *ConfigLoader) Support() bool {
	return my.k != nil && my.k.IsSet(entitiesKey)
}

func (my *ConfigLoader) Load(r *Registry) error {
	var defs []EntityDef
	if err := my.k.UnmarshalKey(entitiesKey, &defs); err != nil {
		return err
	}
	return putDefs(r, my.v, defs, my.cfg != nil && my.cfg.Metadata.UseCamel)
}
