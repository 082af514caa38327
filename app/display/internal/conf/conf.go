package conf

type Bootstrap struct {
	Server *Server
	Hub    *Hub
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

// Hub 搜索核心配置
type Hub struct {
	// Config search_hub 核心 yaml 配置路径，为空时使用默认配置
	Config string `json:"config"`
	// SessionIdle 会话空闲多久后回收，如 "30m"
	SessionIdle string `json:"session_idle"`
}
