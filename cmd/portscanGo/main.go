package main

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"PortscanGo/internal/portscan"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	flagPorts   string
	flagTiming  int
	flagTCP     bool
	flagUDP     bool
	flagWorkers int
	flagRate    float64
	flagJSON    bool
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00CEC9"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6C5CE7")).Underline(true)
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#636e72"))
)

func main() {
	godotenv.Load(".env")

	rootCmd := &cobra.Command{
		Use:   "portscanGo [target]",
		Short: "并发 TCP/UDP 端口扫描器",
		Long:  "对单个目标做 TCP 全连接扫描(抓横幅)和 UDP 探测, 时序档位控制超时与并发.",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}

	rootCmd.Flags().StringVarP(&flagPorts, "ports", "p", envOr("PORTSCAN_PORTS", ""), "端口表达式 (如 22,80,8000-8100; \"-\" 表示全部端口; 默认常见端口)")
	rootCmd.Flags().IntVarP(&flagTiming, "timing", "T", envOrInt("PORTSCAN_TIMING", 3), "时序档位 1-5, 越高越快")
	rootCmd.Flags().BoolVar(&flagTCP, "tcp", false, "TCP 全连接扫描(抓横幅)")
	rootCmd.Flags().BoolVar(&flagUDP, "udp", false, "UDP 扫描")
	rootCmd.Flags().IntVarP(&flagWorkers, "workers", "w", envOrInt("PORTSCAN_WORKERS", 0), "并发数(覆盖档位默认值)")
	rootCmd.Flags().Float64Var(&flagRate, "rate", 0, "每秒最大探测次数, 0 不限速")
	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "输出 JSON")
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if flagTiming < 1 || flagTiming > 5 {
		return fmt.Errorf("时序档位必须在 1-5 之间: %d", flagTiming)
	}

	ports := portscan.DefaultPorts
	if flagPorts != "" {
		var err error
		ports, err = portscan.ParsePortSpec(flagPorts)
		if err != nil {
			return fmt.Errorf("端口表达式无效: %w", err)
		}
	}

	target := args[0]
	ip, err := resolveIPv4(target)
	if err != nil {
		logLine(color.FgRed, "无法解析目标 %s: %v", target, err)
		os.Exit(1)
	}

	sc := portscan.NewScanner(ip, ports, portscan.SelectProfile(flagTiming))
	sc.TCP = flagTCP
	sc.UDP = flagUDP
	sc.SetWorkers(flagWorkers)
	sc.SetRateLimit(flagRate)

	if !flagJSON {
		logLine(color.FgCyan, "目标: %s -> %s", target, ip)
		logLine(color.FgCyan, "扫描类型: %s", scanModes(sc))
		logLine(color.FgCyan, "端口数: %d", len(ports))
		logLine(color.FgGreen, "开始扫描...")
		fmt.Println()
	}

	startTime := time.Now()
	resultsCh := sc.Run(cmd.Context())

	var bar *progressbar.ProgressBar
	if !flagJSON {
		bar = progressbar.NewOptions(int(sc.Total()),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowBytes(false),
			progressbar.OptionSetWidth(30),
			progressbar.OptionSetDescription("[cyan][扫描中][reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}

	var all []portscan.ProbeResult
	for res := range resultsCh {
		if bar != nil {
			bar.Add(1)
		}
		all = append(all, res)
		if res.Interesting() && !flagJSON {
			bar.Clear()
			msg := fmt.Sprintf("[+] %s 端口 %d %s", strings.ToUpper(string(res.Protocol)), res.Port, strings.ToUpper(res.Status.String()))
			if res.Status == portscan.StatusOpen && res.Banner != portscan.NoBanner && res.Banner != "" {
				msg += " (" + portscan.CleanBanner(res.Banner) + ")"
			}
			color.Green("\r%s", msg)
		}
	}
	if bar != nil {
		bar.Finish()
		fmt.Println()
	}

	open := portscan.Aggregate(all)

	if flagJSON {
		return printJSON(open)
	}
	printTable(open)
	fmt.Println("============================")
	color.Cyan("[+] 扫描完成! 耗时: %s\n", time.Since(startTime))
	return nil
}

// scanModes 本次启用的协议描述, 与任务展开的默认 TCP 规则一致
func scanModes(sc *portscan.Scanner) string {
	modes := make([]string, 0, 2)
	if sc.TCP || !sc.UDP {
		modes = append(modes, "TCP")
	}
	if sc.UDP {
		modes = append(modes, "UDP")
	}
	return strings.Join(modes, ", ")
}

// printTable 最终结果表格
func printTable(open []portscan.ProbeResult) {
	fmt.Println(titleStyle.Render("=== 最终结果 ==="))
	if len(open) == 0 {
		color.Red("未发现开放端口")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, headerStyle.Render("协议\t端口\t状态\t横幅"))
	for _, r := range open {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			strings.ToUpper(string(r.Protocol)),
			strconv.Itoa(r.Port),
			r.Status.String(),
			bannerStyle.Render(portscan.CleanBanner(r.Banner)),
		)
	}
	w.Flush()
}

type jsonResult struct {
	Protocol string `json:"protocol"`
	Port     int    `json:"port"`
	Status   string `json:"status"`
	Banner   string `json:"banner,omitempty"`
}

func printJSON(open []portscan.ProbeResult) error {
	out := make([]jsonResult, 0, len(open))
	for _, r := range open {
		out = append(out, jsonResult{
			Protocol: string(r.Protocol),
			Port:     r.Port,
			Status:   r.Status.String(),
			Banner:   r.Banner,
		})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// resolveIPv4 把目标解析为首个 IPv4 地址, 不支持 IPv6
func resolveIPv4(target string) (string, error) {
	if ip := net.ParseIP(target); ip != nil {
		if ip.To4() == nil {
			return "", fmt.Errorf("仅支持 IPv4 目标")
		}
		return ip.String(), nil
	}
	ips, err := net.LookupIP(target)
	if err != nil {
		return "", err
	}
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			return v4.String(), nil
		}
	}
	return "", fmt.Errorf("目标没有 IPv4 地址")
}

// logLine 带时间戳的彩色日志行
func logLine(attr color.Attribute, format string, a ...any) {
	ts := color.New(color.FgBlue, color.Bold).Sprintf("[%s]", time.Now().Format("15:04:05"))
	fmt.Printf("%s %s\n", ts, color.New(attr).Sprintf(format, a...))
}

// envOr 环境变量缺省值 (.env 由 godotenv 加载)
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
