package portscan

// Protocol 探测使用的传输协议
type Protocol string

const (
	ProtoTCP Protocol = "tcp" // TCP 全连接探测 (抓横幅, 无需 Root)
	ProtoUDP Protocol = "udp" // UDP 收发探测
)

// ProbeStatus 单次探测的结果状态
type ProbeStatus uint8

const (
	StatusClosed       ProbeStatus = iota // 连接被拒绝/超时, 视为关闭
	StatusOpen                            // 确认开放
	StatusOpenFiltered                    // UDP 无响应, 开放或被过滤, 无法区分
	StatusError                           // 套接字错误, 聚合时静默丢弃
)

func (s ProbeStatus) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusOpenFiltered:
		return "open|filtered"
	case StatusError:
		return "error"
	default:
		return "closed"
	}
}

// NoBanner TCP 连接成功但没有读到横幅时的占位值
const NoBanner = "No Banner"

// ProbeTask 一次探测任务, 对应一个 (协议, 端口) 组合
// 任务只读, 仅由执行它的 worker 持有
type ProbeTask struct {
	Protocol Protocol
	Port     int
}

// ProbeResult 探测结果, 每个任务恰好产生一个
// 失败以状态值表达, 探测永远不向上返回 error
type ProbeResult struct {
	Protocol Protocol
	Port     int
	Status   ProbeStatus
	Banner   string
}

// Interesting 是否为可达端口 (需要实时展示并进入最终结果)
func (r ProbeResult) Interesting() bool {
	return r.Status == StatusOpen || r.Status == StatusOpenFiltered
}
