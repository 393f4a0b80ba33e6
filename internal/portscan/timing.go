package portscan

import "time"

// Profile 时序档位: 档位越高超时越短并发越大, 用速度换准确度
type Profile struct {
	Level   int
	Timeout time.Duration
	Workers int
}

// profiles 固定档位表, 对应 -T1..-T5, 进程启动后只读
var profiles = map[int]Profile{
	1: {Level: 1, Timeout: 1500 * time.Millisecond, Workers: 25},
	2: {Level: 2, Timeout: 1000 * time.Millisecond, Workers: 50},
	3: {Level: 3, Timeout: 700 * time.Millisecond, Workers: 100},
	4: {Level: 4, Timeout: 500 * time.Millisecond, Workers: 200},
	5: {Level: 5, Timeout: 300 * time.Millisecond, Workers: 400},
}

// SelectProfile 按档位取配置, 档位必须在 1-5 之间, 合法性由调用方保证
func SelectProfile(level int) Profile {
	return profiles[level]
}
