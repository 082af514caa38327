package data

import (
	"fmt"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/search_hub/app/display/internal/conf"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/config"
	hubLogger "github.com/iWorld-y/search_hub/app/search_hub/pkg/logger"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/preview"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/profile"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/search"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/search/factory"
)

// Data 搜索核心的共享资源：本地存储、各类别 provider、正文抓取器
type Data struct {
	cfg       *config.Config
	profile   *profile.Profile
	providers map[model.Category]search.Provider
	preview   *preview.Fetcher
}

// NewData 加载核心配置并打开本地存储
func NewData(c *conf.Hub, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)

	cfg := config.Default()
	if c != nil && c.Config != "" {
		loaded, err := config.LoadConfig(c.Config)
		if err != nil {
			return nil, nil, fmt.Errorf("load hub config: %w", err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	if err := hubLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		helper.Errorf("Failed to init search_hub logger: %v", err)
		_ = hubLogger.InitLogger("info", "") // 降级处理
	}

	providers, err := factory.NewProviders(cfg)
	if err != nil {
		return nil, nil, err
	}

	prof, err := profile.Open(cfg)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		helper.Info("closing the data resources")
		if err := prof.Close(); err != nil {
			helper.Errorf("close profile store: %v", err)
		}
	}
	return NewDataFrom(cfg, prof, providers), cleanup, nil
}

// NewDataFrom 用已有资源组装 Data
func NewDataFrom(cfg *config.Config, prof *profile.Profile, providers map[model.Category]search.Provider) *Data {
	return &Data{
		cfg:       cfg,
		profile:   prof,
		providers: providers,
		preview:   preview.NewFetcher(cfg.Preview.Timeout),
	}
}
