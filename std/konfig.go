package std

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/codiumsa/toolkit/log"
	"github.com/codiumsa/toolkit/utl"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Konfig 配置管理器，包装了koanf.Koanf
// 加载顺序: 主配置文件 -> profile配置文件 -> 环境变量，后加载的覆盖先加载的
type Konfig struct {
	k       *koanf.Koanf
	options *konfigOptions
	mu      sync.RWMutex
}

// KonfigOption 定义配置选项函数类型
type KonfigOption func(*konfigOptions)

type konfigOptions struct {
	configType string
	envPrefix  string
	filePath   string
	delim      string
	strict     bool
}

// WithFilePath 设置配置文件路径
func WithFilePath(filePath string) KonfigOption {
	return func(options *konfigOptions) {
		if filePath != "" {
			options.filePath = filePath
			options.configType = strings.TrimPrefix(filepath.Ext(filePath), ".")
		}
	}
}

// WithEnvPrefix 设置环境变量前缀
func WithEnvPrefix(prefix string) KonfigOption {
	return func(options *konfigOptions) {
		options.envPrefix = prefix
	}
}

// WithDelimiter 设置配置项分隔符
func WithDelimiter(delim string) KonfigOption {
	return func(options *konfigOptions) {
		options.delim = delim
	}
}

// WithStrictMerge 设置严格合并
func WithStrictMerge(strict bool) KonfigOption {
	return func(options *konfigOptions) {
		options.strict = strict
	}
}

// NewKonfig 创建新的配置管理器
func NewKonfig(opts ...KonfigOption) (*Konfig, error) {
	options := &konfigOptions{
		configType: "yaml",
		envPrefix:  "APP",
		delim:      ".",
	}
	for _, opt := range opts {
		opt(options)
	}

	k := koanf.NewWithConf(koanf.Conf{Delim: options.delim, StrictMerge: options.strict})
	k.Set("mode", "dev")
	k.Set("profiles.active", "")
	k.Set("app.root", utl.Root())

	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("加载环境变量文件: %w", err)
	}

	if options.filePath != "" {
		if err := loadConfigFile(k, options.filePath, options); err != nil {
			return nil, err
		}
		path := filepath.Dir(options.filePath)
		name := strings.TrimSuffix(filepath.Base(options.filePath), filepath.Ext(options.filePath))
		if err := mergeProfiles(k, path, name, options); err != nil {
			return nil, fmt.Errorf("合并环境配置失败: %w", err)
		}
	}

	if err := k.Load(envProvider(options), nil); err != nil {
		return nil, fmt.Errorf("加载环境变量失败: %w", err)
	}

	return &Konfig{k: k, options: options}, nil
}

// envProvider APP_QUERY_DEFAULT-PAGE-SIZE => query.default-page-size
func envProvider(options *konfigOptions) *env.Env {
	prefix := options.envPrefix + "_"
	return env.Provider(prefix, options.delim, func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, prefix)), "_", options.delim)
	})
}

// loadEnvFile 加载项目根目录下的.env文件(可选)
func loadEnvFile() error {
	envFile := filepath.Join(utl.Root(), ".env")
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("加载.env文件失败: %w", err)
	}
	return nil
}

func parserFor(configType string) (koanf.Parser, error) {
	switch configType {
	case "yaml", "yml":
		return yaml.Parser(), nil
	default:
		return nil, fmt.Errorf("不支持的配置文件类型: %s", configType)
	}
}

// loadConfigFile 加载配置文件
func loadConfigFile(k *koanf.Koanf, filePath string, options *konfigOptions) error {
	parser, err := parserFor(options.configType)
	if err != nil {
		return err
	}
	if err := k.Load(file.Provider(filePath), parser); err != nil {
		return fmt.Errorf("加载配置文件失败: %w", err)
	}
	log.Info().Str("file", filePath).Msg("配置文件已加载")
	return nil
}

// mergeProfiles 合并profile配置文件，如 config-dev.yaml
func mergeProfiles(k *koanf.Koanf, path, name string, options *konfigOptions) error {
	for _, profile := range getActiveProfiles(k) {
		profileFile := filepath.Join(path, utl.JoinString(name, "-", profile, ".", options.configType))
		if _, err := os.Stat(profileFile); os.IsNotExist(err) {
			log.Debug().Str("profile", profile).Str("file", profileFile).Msg("配置文件不存在，跳过")
			continue
		}
		if err := loadConfigFile(k, profileFile, options); err != nil {
			return err
		}
	}
	return nil
}

// getActiveProfiles 获取激活的profile列表，逗号分隔
func getActiveProfiles(k *koanf.Koanf) []string {
	var profiles []string
	for _, p := range strings.Split(k.String("profiles.active"), ",") {
		if p = strings.TrimSpace(p); p != "" {
			profiles = append(profiles, p)
		}
	}
	return profiles
}

// LoadBytes 合并一段YAML配置，常用于内嵌默认配置与测试
func (my *Konfig) LoadBytes(data []byte) error {
	my.mu.Lock()
	defer my.mu.Unlock()
	if err := my.k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
		return fmt.Errorf("加载配置内容失败: %w", err)
	}
	return nil
}

func (my *Konfig) Get(path string) interface{} {
	my.mu.RLock()
	defer my.mu.RUnlock()
	return my.k.Get(path)
}

func (my *Konfig) Set(path string, value interface{}) {
	my.mu.Lock()
	defer my.mu.Unlock()
	_ = my.k.Set(path, value)
}

func (my *Konfig) IsSet(path string) bool {
	my.mu.RLock()
	defer my.mu.RUnlock()
	return my.k.Exists(path)
}

func (my *Konfig) GetString(path string) string {
	my.mu.RLock()
	defer my.mu.RUnlock()
	return my.k.String(path)
}

func (my *Konfig) GetInt(path string) int {
	my.mu.RLock()
	defer my.mu.RUnlock()
	return my.k.Int(path)
}

func (my *Konfig) GetDuration(path string) time.Duration {
	my.mu.RLock()
	defer my.mu.RUnlock()
	return my.k.Duration(path)
}

func (my *Konfig) GetStringSlice(path string) []string {
	my.mu.RLock()
	defer my.mu.RUnlock()
	return my.k.Strings(path)
}

// Unmarshal 将配置解析到结构体
func (my *Konfig) Unmarshal(val interface{}) error {
	return my.UnmarshalKey("", val)
}

// UnmarshalKey 将配置键解析到结构体
func (my *Konfig) UnmarshalKey(path string, val interface{}) error {
	my.mu.RLock()
	defer my.mu.RUnlock()
	err := my.k.UnmarshalWithConf(path, val, koanf.UnmarshalConf{Tag: "mapstructure"})
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("配置解析失败")
	}
	return err
}

// SetDefault 设置单个配置项的默认值
func (my *Konfig) SetDefault(path string, value interface{}) {
	if !my.IsSet(path) {
		my.Set(path, value)
		log.Debug().Str("path", path).Interface("value", value).Msg("设置默认配置项")
	}
}

// SetDefaults 从 map 批量加载默认值，已存在的配置项不会被覆盖
func (my *Konfig) SetDefaults(defaults map[string]interface{}) error {
	my.mu.Lock()
	defer my.mu.Unlock()
	current := my.k.All()
	base := koanf.New(my.options.delim)
	if err := base.Load(confmap.Provider(defaults, my.options.delim), nil); err != nil {
		log.Error().Err(err).Msg("批量加载默认值失败")
		return err
	}
	if err := base.Load(confmap.Provider(current, my.options.delim), nil); err != nil {
		return err
	}
	my.k = base
	log.Debug().Int("count", len(defaults)).Msg("批量加载默认值成功")
	return nil
}
