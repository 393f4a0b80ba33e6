package portscan

import (
	"fmt"
	"net"
	"strings"
	"time"
)

// 横幅读取超时与连接超时解耦: SSH/FTP/SMTP 这类服务连上就发数据,
// HTTP 类服务等请求, 读取会超时, 此时按无横幅处理
const (
	bannerReadTimeout = time.Second
	bannerMaxBytes    = 1024
)

// probeTCP 对 (ip, port) 做一次 TCP 全连接探测并尝试抓取横幅
// 连不上一律视为关闭, 底层错误不向上传递
func probeTCP(ip string, port int, timeout time.Duration) ProbeResult {
	res := ProbeResult{Protocol: ProtoTCP, Port: port, Status: StatusClosed}

	d := net.Dialer{
		Timeout:   timeout,
		KeepAlive: -1, // 扫描不需要保持连接
	}
	conn, err := d.Dial("tcp", fmt.Sprintf("%s:%d", ip, port))
	if err != nil {
		return res
	}
	defer conn.Close()

	res.Status = StatusOpen
	res.Banner = grabBanner(conn)
	return res
}

// grabBanner 只做一次有界读取, 读多少算多少, 读不到或出错都返回 NoBanner
func grabBanner(conn net.Conn) string {
	if err := conn.SetReadDeadline(time.Now().Add(bannerReadTimeout)); err != nil {
		return NoBanner
	}
	buf := make([]byte, bannerMaxBytes)
	n, _ := conn.Read(buf)
	if n == 0 {
		return NoBanner
	}
	// 非法字节序列直接丢弃, 横幅只是粗粒度指纹
	banner := strings.TrimSpace(strings.ToValidUTF8(string(buf[:n]), ""))
	if banner == "" {
		return NoBanner
	}
	return banner
}
