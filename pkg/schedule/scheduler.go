// Package schedule 根据时间窗和循环规则决定当前生效的节日特效
//
// 描述符列表按顺序匹配，第一个满足条件的描述符生效，因此不存在调度歧义。
package schedule

import (
	"time"

	"github.com/gonewx/festfx/pkg/config"
)

const (
	// endOfDaySeconds 未配置结束时间时的每日窗口终点 23:59:59
	endOfDaySeconds = 24*3600 - 1

	// defaultWeekday 仅配置 endTime 时 weekly 循环的默认星期
	defaultWeekday = time.Sunday

	// defaultMonthDay 仅配置 endTime 时 monthly 循环的默认日期
	defaultMonthDay = 1
)

// ResolveActive 返回 now 时刻第一个生效的描述符
//
// 参数:
//   - effects: 已校验的描述符列表（位置即优先级）
//   - now: 当前时间
//
// 返回:
//   - *config.EffectDescriptor: 指向 effects 中生效的元素；没有匹配时返回 nil
func ResolveActive(effects []config.EffectDescriptor, now time.Time) *config.EffectDescriptor {
	for i := range effects {
		if IsActive(&effects[i], now) {
			return &effects[i]
		}
	}
	return nil
}

// IsActive 判断单个描述符在 now 时刻是否生效
//
// 规则：
//  1. 没有起止时间也没有循环：始终生效
//  2. 没有循环：now 位于 [startTime, endTime] 内（缺失的一端不设限）
//  3. 有循环：日期在起止日期之间（按天比较），时刻在每日窗口内（按秒比较），
//     且满足循环规则（daily 每天；weekly 与 startTime 同星期；monthly 与 startTime 同日）
func IsActive(d *config.EffectDescriptor, now time.Time) bool {
	if d.Cycle == config.CycleNone {
		return inInterval(d.StartTime, d.EndTime, now)
	}

	if !inDateRange(d.StartTime, d.EndTime, now) {
		return false
	}
	if !inDailyWindow(d.StartTime, d.EndTime, now) {
		return false
	}
	return matchesCycle(d.Cycle, d.StartTime, now)
}

// inInterval 闭区间判断，nil 表示该侧不设限
func inInterval(start, end *time.Time, now time.Time) bool {
	if start != nil && now.Before(*start) {
		return false
	}
	if end != nil && now.After(*end) {
		return false
	}
	return true
}

// dayNumber 把日期折算成可比较的整数（忽略时刻），使用 now 的时区
func dayNumber(t time.Time, loc *time.Location) int {
	y, m, d := t.In(loc).Date()
	return y*10000 + int(m)*100 + d
}

func inDateRange(start, end *time.Time, now time.Time) bool {
	loc := now.Location()
	today := dayNumber(now, loc)
	if start != nil && today < dayNumber(*start, loc) {
		return false
	}
	if end != nil && today > dayNumber(*end, loc) {
		return false
	}
	return true
}

func secondOfDay(t time.Time) int {
	h, m, s := t.Clock()
	return h*3600 + m*60 + s
}

func inDailyWindow(start, end *time.Time, now time.Time) bool {
	loc := now.Location()
	from := 0
	if start != nil {
		from = secondOfDay(start.In(loc))
	}
	to := endOfDaySeconds
	if end != nil {
		to = secondOfDay(end.In(loc))
	}
	current := secondOfDay(now)
	return current >= from && current <= to
}

func matchesCycle(cycle config.Cycle, start *time.Time, now time.Time) bool {
	loc := now.Location()
	switch cycle {
	case config.CycleDaily:
		return true
	case config.CycleWeekly:
		weekday := defaultWeekday
		if start != nil {
			weekday = start.In(loc).Weekday()
		}
		return now.Weekday() == weekday
	case config.CycleMonthly:
		day := defaultMonthDay
		if start != nil {
			day = start.In(loc).Day()
		}
		return now.Day() == day
	}
	return false
}
