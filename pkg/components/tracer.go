package components

import "github.com/decker502/shootrange/pkg/utils"

// TracerComponent 弹道轨迹组件
// 轨迹起点每帧向终点移动，到达终点或寿命耗尽时销毁
type TracerComponent struct {
	Start    utils.Vec3 // 当前起点（枪口位置，逐帧推进）
	End      utils.Vec3 // 命中点
	LifeTime float64    // 剩余寿命（秒）
}
