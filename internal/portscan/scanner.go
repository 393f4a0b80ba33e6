package portscan

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Scanner 一次扫描会话: 目标地址 + 协议选择 + 端口集 + 时序配置
// 随一次 Run 存活, 结束即废弃
type Scanner struct {
	IP      string
	Ports   []int
	TCP     bool
	UDP     bool
	Timeout time.Duration
	Workers int

	limiter *rate.Limiter
	total   int64
	done    atomic.Int64
}

// NewScanner 按时序档位创建扫描会话
func NewScanner(ip string, ports []int, profile Profile) *Scanner {
	return &Scanner{
		IP:      ip,
		Ports:   ports,
		Timeout: profile.Timeout,
		Workers: profile.Workers,
	}
}

// SetWorkers 显式覆盖并发数, 不影响档位的超时
func (s *Scanner) SetWorkers(n int) {
	if n > 0 {
		s.Workers = n
	}
}

// SetRateLimit 限制整体探测速率 (次/秒), 0 表示不限速
func (s *Scanner) SetRateLimit(perSec float64) {
	if perSec > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(perSec), 1)
	}
}

// Tasks 展开任务列表, 每个 (协议, 端口) 组合一个任务
// 两种协议都未选时默认 TCP
func (s *Scanner) Tasks() []ProbeTask {
	tcp, udp := s.TCP, s.UDP
	if !tcp && !udp {
		tcp = true
	}
	n := 0
	if tcp {
		n += len(s.Ports)
	}
	if udp {
		n += len(s.Ports)
	}
	tasks := make([]ProbeTask, 0, n)
	for _, p := range s.Ports {
		if tcp {
			tasks = append(tasks, ProbeTask{Protocol: ProtoTCP, Port: p})
		}
		if udp {
			tasks = append(tasks, ProbeTask{Protocol: ProtoUDP, Port: p})
		}
	}
	return tasks
}

// Total 本次会话的任务总数 (Run 之后有效)
func (s *Scanner) Total() int64 { return s.total }

// Done 已完成任务数, 仅用于进度展示
func (s *Scanner) Done() int64 { return s.done.Load() }

// Run 启动扫描, 返回实时结果通道, 所有任务完成后通道关闭
// 每个任务恰好执行一次, 不会因负载被拒绝或丢弃;
// 完成顺序不保证, 排序由聚合步骤负责; 中途不支持取消
func (s *Scanner) Run(ctx context.Context) <-chan ProbeResult {
	tasks := s.Tasks()
	s.total = int64(len(tasks))
	s.done.Store(0)

	jobs := make(chan ProbeTask, len(tasks))
	results := make(chan ProbeResult, len(tasks))

	// 修正并发数
	workers := s.Workers
	if workers < 1 {
		workers = 1
	}
	if len(tasks) < workers {
		workers = len(tasks)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range jobs {
				if s.limiter != nil {
					_ = s.limiter.Wait(ctx)
				}
				results <- s.probe(task)
				s.done.Add(1)
			}
		}()
	}

	// 分发任务
	go func() {
		for _, t := range tasks {
			jobs <- t
		}
		close(jobs)
	}()
	// 全部 worker 退出后关闭结果通道
	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

func (s *Scanner) probe(t ProbeTask) ProbeResult {
	switch t.Protocol {
	case ProtoUDP:
		return probeUDP(s.IP, t.Port, s.Timeout)
	default:
		return probeTCP(s.IP, t.Port, s.Timeout)
	}
}
