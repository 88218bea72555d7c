package systems

// Stage 管线中的一个命名阶段
type Stage struct {
	Name string
	Run  func(deltaTime float64)
}

// Pipeline 按固定顺序执行各阶段
type Pipeline struct {
	stages []Stage
}

// NewPipeline 创建管线，阶段按参数顺序执行
func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Update 依次执行所有阶段
func (p *Pipeline) Update(deltaTime float64) {
	for _, st := range p.stages {
		st.Run(deltaTime)
	}
}

// Names 返回阶段名称（按执行顺序）
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.stages))
	for i, st := range p.stages {
		names[i] = st.Name
	}
	return names
}

// RangeSystems 靶场管线用到的全部系统
type RangeSystems struct {
	Input    *InputSystem
	Menu     *MenuSystem
	Movement *PlayerMovementSystem
	Timer    *TimerSystem
	Round    *RoundSystem
	Gun      *GunSystem
	Tracer   *TracerSystem
	HUD      *HUDSystem
}

// NewRangePipeline 按以下顺序组装靶场管线：
// 输入采样 → 玩家移动 → 倒计时 → 失败检测 → 命中结算 → 过关检测 → 弹道 → HUD
//
// 失败检测先于命中结算：计时器到期的那一帧里射出的子弹不再计入。
func NewRangePipeline(sys RangeSystems) *Pipeline {
	return NewPipeline(
		Stage{"input", func(dt float64) {
			sys.Input.Update(dt)
			sys.Menu.Update(dt)
		}},
		Stage{"movement", sys.Movement.Update},
		Stage{"timer", sys.Timer.Update},
		Stage{"failure", sys.Round.UpdateFailure},
		Stage{"hits", sys.Gun.Update},
		Stage{"advance", sys.Round.UpdateAdvance},
		Stage{"tracers", sys.Tracer.Update},
		Stage{"hud", sys.HUD.Update},
	)
}
