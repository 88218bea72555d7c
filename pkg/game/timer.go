package game

import "fmt"

// TimerSentinel 没有活动计时器时 Remaining 返回的占位文本
const TimerSentinel = "--"

// countdown 单个关卡倒计时
type countdown struct {
	duration float64
	elapsed  float64
}

// TimerService 关卡倒计时服务
//
// 同一时间最多存在一个倒计时；没有倒计时是合法状态（菜单、失败、通关）。
// 所有方法对 nil 接收者安全。
type TimerService struct {
	current *countdown
}

// NewTimerService 创建空的计时服务
func NewTimerService() *TimerService {
	return &TimerService{}
}

// SetTimer 设置新的倒计时，替换之前的计时器
func (t *TimerService) SetTimer(duration float64) {
	if t == nil {
		return
	}
	t.current = &countdown{duration: duration}
}

// Clear 移除当前倒计时
func (t *TimerService) Clear() {
	if t == nil {
		return
	}
	t.current = nil
}

// Active 是否存在倒计时
func (t *TimerService) Active() bool {
	return t != nil && t.current != nil
}

// Tick 推进倒计时；无计时器时不做任何事
func (t *TimerService) Tick(deltaTime float64) {
	if !t.Active() || deltaTime <= 0 {
		return
	}
	t.current.elapsed += deltaTime
}

// IsFinished 计时器存在且已到期
func (t *TimerService) IsFinished() bool {
	if !t.Active() {
		return false
	}
	return t.current.elapsed >= t.current.duration
}

// RemainingSeconds 剩余秒数（到期后为 0）
func (t *TimerService) RemainingSeconds() (float64, bool) {
	if !t.Active() {
		return 0, false
	}
	left := t.current.duration - t.current.elapsed
	if left < 0 {
		left = 0
	}
	return left, true
}

// Elapsed 已经过的秒数
func (t *TimerService) Elapsed() float64 {
	if !t.Active() {
		return 0
	}
	return t.current.elapsed
}

// Duration 倒计时总时长
func (t *TimerService) Duration() float64 {
	if !t.Active() {
		return 0
	}
	return t.current.duration
}

// Remaining 返回 HUD 显示用的剩余时间，如 "12.34s"；无计时器时返回 "--"
func (t *TimerService) Remaining() string {
	left, ok := t.RemainingSeconds()
	if !ok {
		return TimerSentinel
	}
	return fmt.Sprintf("%.2fs", left)
}
