package components

// HealthComponent 存储实体的生命值信息
// 用于靶子等可被射击的实体，CurrentHealth <= 0 时实体被销毁
type HealthComponent struct {
	CurrentHealth int // 当前生命值
	MaxHealth     int // 最大生命值
}
