package domain

// SearchRequest 一次搜索请求
type SearchRequest struct {
	SessionID string
	Query     string
	Category  string
	Page      int
}

// SaveRequest 收藏请求
type SaveRequest struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Type    string `json:"type"`
}

// PreferencesRequest 偏好部分更新，未出现的字段保持原值
type PreferencesRequest struct {
	Region  *string `json:"region"`
	Safe    *bool   `json:"safe"`
	PerPage *int    `json:"perPage"`
}

// Suggestions 搜索建议
type Suggestions struct {
	Items []string `json:"items"`
}

// CacheCleared 清空缓存的结果
type CacheCleared struct {
	Removed int `json:"removed"`
}
