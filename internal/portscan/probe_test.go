package portscan

import (
	"net"
	"testing"
	"time"
)

func TestProbeTCP_OpenNoBanner(t *testing.T) {
	// 监听但不发任何数据, 模拟 HTTP 这类等请求的服务
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()
	go func() {
		conn, err := l.Accept()
		if err == nil {
			defer conn.Close()
			time.Sleep(2 * time.Second)
		}
	}()
	port := l.Addr().(*net.TCPAddr).Port

	res := probeTCP("127.0.0.1", port, time.Second)
	if res.Status != StatusOpen {
		t.Fatalf("expected open, got %v", res.Status)
	}
	if res.Banner != NoBanner {
		t.Fatalf("expected %q, got %q", NoBanner, res.Banner)
	}
}

func TestProbeTCP_Banner(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()
	go func() {
		conn, err := l.Accept()
		if err == nil {
			_, _ = conn.Write([]byte("SSH-2.0-TestServer\r\n"))
			conn.Close()
		}
	}()
	port := l.Addr().(*net.TCPAddr).Port

	res := probeTCP("127.0.0.1", port, time.Second)
	if res.Status != StatusOpen {
		t.Fatalf("expected open, got %v", res.Status)
	}
	if res.Banner != "SSH-2.0-TestServer" {
		t.Fatalf("banner not trimmed: %q", res.Banner)
	}
}

func TestProbeTCP_Closed(t *testing.T) {
	// 拿一个刚释放的端口保证没人监听
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	_ = l.Close()
	time.Sleep(50 * time.Millisecond)

	start := time.Now()
	res := probeTCP("127.0.0.1", port, 500*time.Millisecond)
	if res.Status != StatusClosed {
		t.Fatalf("expected closed, got %v", res.Status)
	}
	if res.Banner != "" {
		t.Fatalf("closed probe should carry no banner, got %q", res.Banner)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("closed probe took too long: %v", elapsed)
	}
}

func TestProbeUDP_Response(t *testing.T) {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("listen udp: %v", err)
	}
	defer conn.Close()
	port := conn.LocalAddr().(*net.UDPAddr).Port

	// 探测发出的是空数据报, n 可能为 0, 只要有来源地址就回包
	go func() {
		buf := make([]byte, 1500)
		_, raddr, _ := conn.ReadFromUDP(buf)
		if raddr != nil {
			_, _ = conn.WriteToUDP([]byte("pong"), raddr)
		}
	}()

	res := probeUDP("127.0.0.1", port, time.Second)
	if res.Status != StatusOpen {
		t.Fatalf("expected open, got %v", res.Status)
	}
	if res.Banner != "Open/Response Rx" {
		t.Fatalf("unexpected banner: %q", res.Banner)
	}
}

func TestProbeUDP_Silence(t *testing.T) {
	// 监听但永不回包 => 超时 => 开放|被过滤
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("listen udp: %v", err)
	}
	defer conn.Close()
	port := conn.LocalAddr().(*net.UDPAddr).Port

	res := probeUDP("127.0.0.1", port, 300*time.Millisecond)
	if res.Status != StatusOpenFiltered {
		t.Fatalf("expected open|filtered, got %v", res.Status)
	}
	if res.Banner != "Open|Filtered" {
		t.Fatalf("unexpected banner: %q", res.Banner)
	}
}
