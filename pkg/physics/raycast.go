// Package physics 提供射线检测（hitscan）所需的最小物理查询
//
// 场景中的碰撞体来自 ECS：拥有 PositionComponent + CollisionComponent 的实体。
// 查询总是返回最近的一个命中（或没有命中），不做刚体模拟。
package physics

import (
	"math"
	"reflect"

	"github.com/decker502/shootrange/pkg/components"
	"github.com/decker502/shootrange/pkg/ecs"
	"github.com/decker502/shootrange/pkg/utils"
)

// Ray 射线，Direction 应为单位向量
type Ray struct {
	Origin    utils.Vec3
	Direction utils.Vec3
}

// At 返回射线上距离 t 处的点
func (r Ray) At(t float64) utils.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// QueryFilter 射线检测过滤条件
type QueryFilter struct {
	ExcludeEntity ecs.EntityID // 排除的实体（通常是玩家自身），0 表示不排除
	OnlyFixed     bool         // 只检测静态碰撞体
}

// Hit 射线命中结果
type Hit struct {
	Entity   ecs.EntityID
	Distance float64
	Point    utils.Vec3
}

// RaycastSystem 基于 ECS 碰撞体的射线检测
type RaycastSystem struct {
	em *ecs.EntityManager
}

// NewRaycastSystem 创建射线检测系统
func NewRaycastSystem(em *ecs.EntityManager) *RaycastSystem {
	return &RaycastSystem{em: em}
}

// CastRay 发射射线，返回 maxDistance 内最近的命中
func (rs *RaycastSystem) CastRay(ray Ray, maxDistance float64, filter QueryFilter) (Hit, bool) {
	best := Hit{Distance: math.Inf(1)}
	found := false

	ids := rs.em.GetEntitiesWith(
		reflect.TypeOf(&components.PositionComponent{}),
		reflect.TypeOf(&components.CollisionComponent{}),
	)
	for _, id := range ids {
		if id == filter.ExcludeEntity {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](rs.em, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](rs.em, id)
		if col.Sensor || (filter.OnlyFixed && !col.Fixed) {
			continue
		}

		var t float64
		var ok bool
		switch col.Shape {
		case components.ShapeSphere:
			t, ok = RaySphere(ray, pos.Position, col.Radius)
		case components.ShapeBox:
			t, ok = RayAABB(ray, pos.Position.Sub(col.HalfExtents), pos.Position.Add(col.HalfExtents))
		}
		if !ok || t > maxDistance {
			continue
		}
		if t < best.Distance {
			best = Hit{Entity: id, Distance: t}
			found = true
		}
	}

	if !found {
		return Hit{}, false
	}
	best.Point = ray.At(best.Distance)
	return best, true
}

// RaySphere 射线与球体求交，返回最近的非负交点距离
// 射线起点在球内时返回 0
func RaySphere(ray Ray, center utils.Vec3, radius float64) (float64, bool) {
	oc := ray.Origin.Sub(center)
	b := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - radius*radius
	if c <= 0 {
		return 0, true
	}
	disc := b*b - c
	if disc < 0 || b > 0 {
		return 0, false
	}
	t := -b - math.Sqrt(disc)
	if t < 0 {
		t = 0
	}
	return t, true
}

// RayAABB 射线与轴对齐盒求交（slab 法）
// 射线起点在盒内时返回 0
func RayAABB(ray Ray, min, max utils.Vec3) (float64, bool) {
	tmin := 0.0
	tmax := math.Inf(1)

	origin := [3]float64{ray.Origin.X, ray.Origin.Y, ray.Origin.Z}
	dir := [3]float64{ray.Direction.X, ray.Direction.Y, ray.Direction.Z}
	lo := [3]float64{min.X, min.Y, min.Z}
	hi := [3]float64{max.X, max.Y, max.Z}

	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < 1e-12 {
			// 平行于该轴：起点必须位于 slab 内
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (lo[i] - origin[i]) * inv
		t2 := (hi[i] - origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}
