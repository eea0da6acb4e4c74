// validate_config 校验特效配置并输出指定时刻生效的特效
//
// 用法:
//
//	go run ./cmd/validate_config [--at "2025-12-31 21:00:00"] <path-or-url>
//
// 参数可以是本地文件路径，也可以是 http(s)://、ws(s)://、file:// 地址。
// 配置非法时以退出码 1 结束。
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gonewx/festfx/pkg/config"
	"github.com/gonewx/festfx/pkg/game"
	"github.com/gonewx/festfx/pkg/schedule"
)

var (
	atFlag      = flag.String("at", "", "Evaluate the schedule at this time (default now)")
	timeoutFlag = flag.Duration("timeout", 10*time.Second, "Fetch timeout for URLs")
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: validate_config [--at <time>] <path-or-url>")
		os.Exit(2)
	}

	now := time.Now()
	if *atFlag != "" {
		t, err := config.ParseTimestamp(*atFlag)
		if err != nil {
			fmt.Printf("❌ --at 无法解析: %v\n", err)
			os.Exit(2)
		}
		now = t
	}

	data, err := load(flag.Arg(0), *timeoutFlag)
	if err != nil {
		fmt.Printf("❌ 读取配置失败: %v\n", err)
		os.Exit(1)
	}

	if err := report(os.Stdout, data, now); err != nil {
		os.Exit(1)
	}
}

// load 读取本地文件或按 URL 协议获取
func load(source string, timeout time.Duration) ([]byte, error) {
	if !strings.Contains(source, "://") {
		return os.ReadFile(source)
	}
	fetcher, err := game.NewFetcher(source, timeout)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return fetcher.Fetch(ctx, source)
}

// report 校验配置并输出每条描述符及其在 now 时刻的状态
//
// 返回:
//   - error: 配置非法时返回校验错误
func report(w io.Writer, data []byte, now time.Time) error {
	cfg, err := config.ParseEffectConfig(data)
	if err != nil {
		fmt.Fprintf(w, "❌ 配置非法: %v\n", err)
		return err
	}

	fmt.Fprintf(w, "✅ 配置格式正确\n")
	fmt.Fprintf(w, "✅ enabled=%v, cacheDuration=%v, %d 条特效\n", cfg.Enabled, cfg.CacheDuration(), len(cfg.Effects))
	for i := range cfg.Effects {
		d := &cfg.Effects[i]
		mark := " "
		if schedule.IsActive(d, now) {
			mark = "*"
		}
		fmt.Fprintf(w, "  %s %d. %s\n", mark, i+1, d)
	}

	at := config.FormatTimestamp(now)
	if !cfg.Enabled {
		fmt.Fprintf(w, "ℹ️  %s: 特效已全局关闭\n", at)
		return nil
	}
	if active := schedule.ResolveActive(cfg.Effects, now); active != nil {
		fmt.Fprintf(w, "ℹ️  %s: 生效特效 %s\n", at, active.EffectType)
	} else {
		fmt.Fprintf(w, "ℹ️  %s: 没有生效的特效\n", at)
	}
	return nil
}
