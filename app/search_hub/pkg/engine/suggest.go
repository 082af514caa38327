package engine

import (
	"strings"
)

const (
	// MaxRelated 建议列表中最多取的相关搜索条数
	MaxRelated = 6
	// MaxSuggestions 建议列表总长度上限
	MaxSuggestions = 20
)

// DefaultTrending 未配置时使用的热门搜索
var DefaultTrending = []string{
	"React hooks useEffect",
	"JavaScript promises",
	"Tailwind glassmorphism",
	"RapidAPI google search",
	"Vite React deployment",
	"Debounce search input",
}

// Suggestions 搜索建议：最近搜索、当前结果的相关搜索 (最多 6 条)、热门搜索，
// 忽略大小写去重，最多 20 条
func (s *Session) Suggestions() []string {
	s.mu.Lock()
	var related []string
	if s.result != nil {
		related = s.result.RelatedKeywords
	}
	s.mu.Unlock()

	if len(related) > MaxRelated {
		related = related[:MaxRelated]
	}
	trending := s.deps.Trending
	if len(trending) == 0 {
		trending = DefaultTrending
	}
	return mergeSuggestions(MaxSuggestions, s.Recent(), related, trending)
}

func mergeSuggestions(limit int, groups ...[]string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, limit)
	for _, group := range groups {
		for _, v := range group {
			v = strings.TrimSpace(v)
			k := strings.ToLower(v)
			if v == "" {
				continue
			}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, v)
			if len(out) == limit {
				return out
			}
		}
	}
	return out
}
