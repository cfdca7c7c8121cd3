package youtube

import "github.com/google/wire"

// ProviderSet 暴露 YouTube 客户端及其缓存的构造器。
var ProviderSet = wire.NewSet(
	NewCache,
	NewFetcher,
)
