package factory

import (
	"fmt"

	"github.com/iWorld-y/search_hub/app/search_hub/pkg/config"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/gnews"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/googlecse"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/gsearch"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/imagesearch"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/search"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/searxng"
	"github.com/iWorld-y/search_hub/app/search_hub/pkg/tavily"
)

// NewProviders 根据配置为每个类别创建 provider，所有 provider 共用一个限流器
// 凭据缺失不在这里报错，而是在调用时以配置错误的形式出现在结果状态里
func NewProviders(cfg *config.Config) (map[model.Category]search.Provider, error) {
	limiter := search.NewLimiter(cfg.Concurrency.RPM, cfg.Concurrency.QPS)

	providers := make(map[model.Category]search.Provider, len(model.Categories))
	for _, category := range model.Categories {
		pc := providerConfig(cfg, category)
		p, err := NewProvider(category, pc, search.NewTransport(pc.Timeout, limiter))
		if err != nil {
			return nil, err
		}
		providers[category] = p
	}
	return providers, nil
}

// NewProvider 根据名称创建单个 provider
func NewProvider(category model.Category, pc config.ProviderConfig, tr *search.Transport) (search.Provider, error) {
	switch pc.Name {
	case "googlecse":
		if category != model.CategoryWeb {
			break
		}
		return googlecse.NewClient(pc.APIKey, pc.SearchID, pc.BaseURL, tr), nil

	case "gsearch":
		if category != model.CategoryWeb {
			break
		}
		return gsearch.NewClient(pc.APIKey, pc.Host, pc.BaseURL, tr), nil

	case "imagesearch":
		if category != model.CategoryImage {
			break
		}
		return imagesearch.NewClient(pc.APIKey, pc.Host, pc.BaseURL, tr), nil

	case "gnews":
		if category != model.CategoryNews {
			break
		}
		return gnews.NewClient(pc.APIKey, pc.Language, pc.BaseURL, tr), nil

	case "searxng":
		return searxng.NewClient(pc.BaseURL, category, pc.Language, tr), nil

	case "tavily":
		if category == model.CategoryImage {
			break
		}
		return tavily.NewClient(pc.APIKey, category, pc.BaseURL, tr), nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s", pc.Name)
	}

	return nil, fmt.Errorf("provider %q cannot serve %s results", pc.Name, category)
}

func providerConfig(cfg *config.Config, category model.Category) config.ProviderConfig {
	switch category {
	case model.CategoryImage:
		return cfg.Providers.Image
	case model.CategoryNews:
		return cfg.Providers.News
	default:
		return cfg.Providers.Web
	}
}
