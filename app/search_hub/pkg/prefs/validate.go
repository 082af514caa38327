package prefs

import (
	"fmt"

	"github.com/iWorld-y/search_hub/app/search_hub/pkg/model"
)

// Regions 设置页提供的地区选项
var Regions = []string{"in", "us", "gb", "ca", "au"}

// Validate 地区需为两位字母代码，每页条数在 [MinPageSize, MaxPageSize]
func Validate(p model.Preferences) error {
	if len(p.Region) != 2 || !isLetter(p.Region[0]) || !isLetter(p.Region[1]) {
		return fmt.Errorf("invalid region %q: want a two-letter country code", p.Region)
	}
	if p.PageSize < MinPageSize || p.PageSize > MaxPageSize {
		return fmt.Errorf("invalid page size %d: want %d-%d", p.PageSize, MinPageSize, MaxPageSize)
	}
	return nil
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
