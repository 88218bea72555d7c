package game

import (
	"log"
	"sort"

	"github.com/decker502/shootrange/pkg/components"
	"github.com/decker502/shootrange/pkg/config"
	"github.com/decker502/shootrange/pkg/ecs"
	"github.com/decker502/shootrange/pkg/utils"
)

// HitResult 一次命中的结果
type HitResult int

const (
	// HitIgnored 命中的不是当前关卡的存活靶子
	HitIgnored HitResult = iota
	// HitDamaged 靶子掉血但仍存活
	HitDamaged
	// HitDestroyed 靶子生命值归零，已在本帧移除
	HitDestroyed
)

func (h HitResult) String() string {
	switch h {
	case HitDamaged:
		return "damaged"
	case HitDestroyed:
		return "destroyed"
	default:
		return "ignored"
	}
}

// TargetRegistry 当前关卡的靶子登记表
//
// 登记表与实体同步：靶子实体都在 ecs.ScopeGame 中创建，
// Count() 始终等于当前关卡存活靶子实体的数量。
type TargetRegistry struct {
	em    *ecs.EntityManager
	level int
	live  map[ecs.EntityID]struct{}
}

// NewTargetRegistry 创建登记表
func NewTargetRegistry(em *ecs.EntityManager) *TargetRegistry {
	return &TargetRegistry{
		em:   em,
		live: make(map[ecs.EntityID]struct{}),
	}
}

// Spawn 清除旧靶子后按关卡配置生成新靶子，返回新实体ID（按生成顺序）
func (r *TargetRegistry) Spawn(level *config.LevelConfig) []ecs.EntityID {
	r.Clear()
	r.level = level.ID

	ids := make([]ecs.EntityID, 0, len(level.Targets))
	for _, pos := range level.Targets {
		id := r.em.CreateEntity(ecs.ScopeGame)
		r.em.AddComponent(id, &components.PositionComponent{Position: pos})
		r.em.AddComponent(id, &components.CollisionComponent{
			Shape:  components.ShapeSphere,
			Radius: config.TargetRadius,
			Fixed:  true,
		})
		r.em.AddComponent(id, &components.HealthComponent{
			CurrentHealth: level.TargetHealth,
			MaxHealth:     level.TargetHealth,
		})
		r.em.AddComponent(id, &components.TargetComponent{Level: level.ID})
		r.live[id] = struct{}{}
		ids = append(ids, id)
	}

	log.Printf("[TargetRegistry] 关卡 %d 生成 %d 个靶子", level.ID, len(ids))
	return ids
}

// Hit 对靶子造成一点伤害，生命值 <= 0 时立即移除实体
func (r *TargetRegistry) Hit(id ecs.EntityID) HitResult {
	if !r.Contains(id) {
		return HitIgnored
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](r.em, id)
	if !ok {
		return HitIgnored
	}

	health.CurrentHealth--
	if health.CurrentHealth > 0 {
		return HitDamaged
	}

	delete(r.live, id)
	r.em.DestroyEntity(id)
	r.em.RemoveMarkedEntities()
	return HitDestroyed
}

// Count 当前关卡剩余靶子数量
func (r *TargetRegistry) Count() int {
	return len(r.live)
}

// Level 当前登记的关卡序号，未生成时为 0
func (r *TargetRegistry) Level() int {
	return r.level
}

// Contains 是否为当前关卡的存活靶子
func (r *TargetRegistry) Contains(id ecs.EntityID) bool {
	_, ok := r.live[id]
	return ok
}

// IDs 存活靶子ID（升序）
func (r *TargetRegistry) IDs() []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, len(r.live))
	for id := range r.live {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Positions 存活靶子位置（按ID升序）
func (r *TargetRegistry) Positions() []utils.Vec3 {
	ids := r.IDs()
	out := make([]utils.Vec3, 0, len(ids))
	for _, id := range ids {
		if pos, ok := ecs.GetComponent[*components.PositionComponent](r.em, id); ok {
			out = append(out, pos.Position)
		}
	}
	return out
}

// Clear 销毁全部靶子实体并清空登记表
func (r *TargetRegistry) Clear() {
	if len(r.live) == 0 {
		r.level = 0
		return
	}
	for id := range r.live {
		r.em.DestroyEntity(id)
	}
	r.em.RemoveMarkedEntities()
	r.live = make(map[ecs.EntityID]struct{})
	r.level = 0
}

// Forget 清空登记表但不触碰实体（作用域已整体销毁时使用）
func (r *TargetRegistry) Forget() {
	r.live = make(map[ecs.EntityID]struct{})
	r.level = 0
}
