package components

// TimerComponent 冷却计时器
// 从上次 Reset 起累计时间，达到 TargetTime 后 IsReady 为 true 并保持
type TimerComponent struct {
	Name        string  // 调试用名称，如 "fire_delay"
	TargetTime  float64 // 冷却时长（秒）
	CurrentTime float64 // 自上次 Reset 以来的时间（秒）
	IsReady     bool
}

// Advance 累计时间并返回是否就绪
func (t *TimerComponent) Advance(deltaTime float64) bool {
	t.CurrentTime += deltaTime
	t.IsReady = t.CurrentTime >= t.TargetTime
	return t.IsReady
}

// Reset 重新开始冷却
func (t *TimerComponent) Reset() {
	t.CurrentTime = 0
	t.IsReady = false
}
