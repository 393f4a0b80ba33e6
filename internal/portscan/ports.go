package portscan

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidPortSpec 端口表达式无法解析
var ErrInvalidPortSpec = errors.New("invalid port spec")

// DefaultPorts 未指定 -p 时扫描的常见端口
var DefaultPorts = []int{
	21, 22, 23, 25, 53, 80, 110, 111, 135, 139, 143,
	443, 445, 993, 995, 1723, 3306, 3389, 5900, 8080, 8443,
}

const (
	minPort = 1
	maxPort = 65535
)

// ParsePortSpec 解析端口表达式, 返回升序去重后的端口列表
// 支持: 单端口 "22" / 列表 "22,80,443" / 区间 "8000-8100" / 混合 / "-" 表示全部端口
// 超出 1-65535 的端口静默丢弃; 起始大于结束的区间视为空区间, 不报错
// 结果可以为空 (全部被过滤), 此时不产生任何探测
func ParsePortSpec(spec string) ([]int, error) {
	if spec == "-" {
		all := make([]int, 0, maxPort)
		for p := minPort; p <= maxPort; p++ {
			all = append(all, p)
		}
		return all, nil
	}
	if strings.TrimSpace(spec) == "" {
		return nil, fmt.Errorf("%w: empty spec", ErrInvalidPortSpec)
	}

	seen := make(map[int]struct{})
	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if strings.Contains(token, "-") {
			bounds := strings.SplitN(token, "-", 2)
			start, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
			if err != nil {
				return nil, fmt.Errorf("%w: bad range %q", ErrInvalidPortSpec, token)
			}
			end, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
			if err != nil {
				return nil, fmt.Errorf("%w: bad range %q", ErrInvalidPortSpec, token)
			}
			for p := start; p <= end; p++ {
				if p >= minPort && p <= maxPort {
					seen[p] = struct{}{}
				}
			}
		} else {
			p, err := strconv.Atoi(token)
			if err != nil {
				return nil, fmt.Errorf("%w: bad port %q", ErrInvalidPortSpec, token)
			}
			if p >= minPort && p <= maxPort {
				seen[p] = struct{}{}
			}
		}
	}

	ports := make([]int, 0, len(seen))
	for p := range seen {
		ports = append(ports, p)
	}
	sort.Ints(ports)
	return ports, nil
}
