package components

// GunComponent 枪械状态
//
// 按住扳机时自动射击：按下瞬间立即开第一枪，之后每当射击间隔计时器就绪开一枪。
type GunComponent struct {
	Shooting    bool           // 扳机是否按住
	JustPressed bool           // 本次按下后尚未开火
	FireDelay   TimerComponent // 射击间隔
	Range       float64        // 射程（米）
	ShotsFired  int            // 累计开火次数（HUD/统计）
}
