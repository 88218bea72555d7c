package components

// TargetComponent 靶子标记组件
// Level 记录靶子所属关卡序号（1..N），用于核对计数只统计当前关卡
type TargetComponent struct {
	Level int
}

// StartButtonComponent 开始按钮标记组件
// 开始按钮是场景中可被射击的实体，被击中后触发"开始"事件
type StartButtonComponent struct {
	// 标记组件，无需字段
}
