package search

// Cursor 单个类别的分页位置。
// 页码分页只使用 Page；游标分页额外维护当前游标、下一页游标和已访问游标栈，
// 上一页时出栈而不是重新计算偏移
type Cursor struct {
	Page    int
	Token   string
	next    string
	history []string
}

// NewCursor 第一页
func NewCursor() Cursor {
	return Cursor{Page: 1}
}

// Reset 回到第一页并清空游标历史
func (c *Cursor) Reset() {
	*c = NewCursor()
}

// SetNext 记录最近一次响应给出的下一页游标
func (c *Cursor) SetNext(token string) {
	c.next = token
}

// Next 下一页游标，为空表示没有下一页
func (c Cursor) Next() string {
	return c.next
}

// HasNext 是否可以前进
func (c Cursor) HasNext(paging Paging) bool {
	if c.Page >= MaxPage {
		return false
	}
	if paging == PagingToken {
		return c.next != ""
	}
	return true
}

// Advance 前进一页。游标分页时将当前游标压栈并切换到 next
func (c *Cursor) Advance(paging Paging) error {
	if c.Page >= MaxPage {
		return ErrPageOutOfRange
	}
	if paging == PagingToken {
		if c.next == "" {
			return ErrNoNextPage
		}
		c.history = append(c.history, c.Token)
		c.Token = c.next
		c.next = ""
	}
	c.Page++
	return nil
}

// Back 后退一页，已在第一页时返回 false
func (c *Cursor) Back(paging Paging) bool {
	if c.Page <= 1 {
		return false
	}
	if paging == PagingToken {
		n := len(c.history)
		if n == 0 {
			c.Reset()
			return true
		}
		c.Token = c.history[n-1]
		c.history = c.history[:n-1]
		c.next = ""
	}
	c.Page--
	return true
}

// Jump 直接跳到指定页，只适用于页码分页
func (c *Cursor) Jump(paging Paging, page int) error {
	if paging == PagingToken {
		return ErrRandomAccess
	}
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		return ErrPageOutOfRange
	}
	c.Page = page
	return nil
}

// Depth 游标栈深度
func (c Cursor) Depth() int {
	return len(c.history)
}
