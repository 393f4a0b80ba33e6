package portscan

import (
	"sort"
	"strings"
)

// bannerDisplayLen 展示时横幅的最大长度
const bannerDisplayLen = 50

// Aggregate 过滤出可达端口并按 (协议, 端口) 升序排序
// Closed/Error 结果静默丢弃: 输出中缺席即代表不可达或未探测
func Aggregate(results []ProbeResult) []ProbeResult {
	open := make([]ProbeResult, 0, len(results))
	for _, r := range results {
		if r.Interesting() {
			open = append(open, r)
		}
	}
	sort.Slice(open, func(i, j int) bool {
		if open[i].Protocol != open[j].Protocol {
			return open[i].Protocol < open[j].Protocol
		}
		return open[i].Port < open[j].Port
	})
	return open
}

// CleanBanner 展示用的横幅清理: 换行替换为空格并截断
// 纯格式变换, 不影响扫描语义
func CleanBanner(banner string) string {
	clean := strings.ReplaceAll(banner, "\n", " ")
	r := []rune(clean)
	if len(r) > bannerDisplayLen {
		clean = string(r[:bannerDisplayLen])
	}
	return clean
}
