package portscan

import (
	"fmt"
	"net"
	"time"
)

// probeUDP 发送一个空数据报并等待一次响应
// 有响应 => 开放; 读超时 => 开放|被过滤 (UDP 的沉默无法区分两者);
// 其他套接字错误 => StatusError, 聚合时丢弃
func probeUDP(ip string, port int, timeout time.Duration) ProbeResult {
	res := ProbeResult{Protocol: ProtoUDP, Port: port, Status: StatusError}

	conn, err := net.DialTimeout("udp", fmt.Sprintf("%s:%d", ip, port), timeout)
	if err != nil {
		return res
	}
	defer conn.Close()

	if _, err := conn.Write([]byte{}); err != nil {
		return res
	}
	if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return res
	}

	buf := make([]byte, 1024)
	if _, err := conn.Read(buf); err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			res.Status = StatusOpenFiltered
			res.Banner = "Open|Filtered"
			return res
		}
		// ICMP 端口不可达等会表现为读错误
		return res
	}

	// UDP 响应不一定是文本, 不做解码, 收到即视为开放
	res.Status = StatusOpen
	res.Banner = "Open/Response Rx"
	return res
}
