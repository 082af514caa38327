package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/search_hub/app/display/internal/data"
	"github.com/iWorld-y/search_hub/app/display/internal/service"
	"github.com/iWorld-y/search_hub/app/display/internal/usecase"
)

// ProviderSet 是展示服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,

	// Data providers
	data.NewData,
	data.NewSessionRepo,
	data.NewLibraryRepo,
	data.NewPreviewRepo,

	// UseCase providers
	usecase.NewSearchUseCase,
	usecase.NewLibraryUseCase,

	// Service providers
	service.NewDisplayService,
)
