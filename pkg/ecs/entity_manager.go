package ecs

import (
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符
type EntityID uint64

// Scope 实体生命周期作用域
// 每个实体创建时归属于一个作用域，作用域整体销毁时其下所有实体一并删除，
// 用显式的归属列表代替按标记组件查询的批量清理。
type Scope int

const (
	// ScopeGame 关卡实体：靶子、开始按钮、弹道
	ScopeGame Scope = iota
	// ScopeMenu 菜单实体：主菜单、暂停菜单按钮
	ScopeMenu
	// ScopeText HUD 文本实体
	ScopeText
	// ScopeWorld 常驻实体：玩家、地面，跨回合保留
	ScopeWorld
)

// String 返回作用域名称（日志用）
func (s Scope) String() string {
	switch s {
	case ScopeGame:
		return "game"
	case ScopeMenu:
		return "menu"
	case ScopeText:
		return "text"
	case ScopeWorld:
		return "world"
	default:
		return "unknown"
	}
}

// EntityManager 管理所有实体和组件
type EntityManager struct {
	nextID uint64
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]map[reflect.Type]interface{}
	// 作用域归属列表: Scope -> EntityID 集合
	scopes map[Scope]map[EntityID]struct{}
	// 实体所属作用域
	owners map[EntityID]Scope
	// 待删除的实体ID列表
	entitiesToDestroy []EntityID
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:            1, // ID从1开始,0保留为无效ID
		components:        make(map[EntityID]map[reflect.Type]interface{}),
		scopes:            make(map[Scope]map[EntityID]struct{}),
		owners:            make(map[EntityID]Scope),
		entitiesToDestroy: make([]EntityID, 0),
	}
}

// CreateEntity 在指定作用域中创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity(scope Scope) EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]interface{})

	owned, ok := em.scopes[scope]
	if !ok {
		owned = make(map[EntityID]struct{})
		em.scopes[scope] = owned
	}
	owned[id] = struct{}{}
	em.owners[id] = scope
	return id
}

// Exists 检查实体是否存活（未被清理）
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.components[id]
	return ok
}

// DestroyEntity 标记实体待删除(不立即删除)
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// AddComponent 为实体添加组件
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	componentType := reflect.TypeOf(component)
	if compMap, exists := em.components[id]; exists {
		compMap[componentType] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if compMap, exists := em.components[id]; exists {
		delete(compMap, componentType)
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (interface{}, bool) {
	if compMap, exists := em.components[id]; exists {
		if comp, found := compMap[componentType]; found {
			return comp, true
		}
	}
	return nil, false
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	if compMap, exists := em.components[id]; exists {
		_, found := compMap[componentType]
		return found
	}
	return false
}

// RemoveMarkedEntities 清理所有标记删除的实体
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.entitiesToDestroy {
		em.remove(id)
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0] // 清空切片
}

// DestroyScope 立即删除作用域下的所有实体
// 返回删除的实体数量
func (em *EntityManager) DestroyScope(scope Scope) int {
	owned := em.scopes[scope]
	count := len(owned)
	for id := range owned {
		delete(em.components, id)
		delete(em.owners, id)
	}
	delete(em.scopes, scope)
	return count
}

// ScopeOf 返回实体所属作用域
func (em *EntityManager) ScopeOf(id EntityID) (Scope, bool) {
	scope, ok := em.owners[id]
	return scope, ok
}

// EntitiesInScope 返回作用域下的所有实体（按ID升序）
func (em *EntityManager) EntitiesInScope(scope Scope) []EntityID {
	result := make([]EntityID, 0, len(em.scopes[scope]))
	for id := range em.scopes[scope] {
		result = append(result, id)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// EntityCount 返回存活实体总数
func (em *EntityManager) EntityCount() int {
	return len(em.components)
}

// remove 删除单个实体及其作用域归属
func (em *EntityManager) remove(id EntityID) {
	delete(em.components, id)
	if scope, ok := em.owners[id]; ok {
		delete(em.scopes[scope], id)
		delete(em.owners, id)
	}
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有实体
// 参数: componentTypes ...reflect.Type - 需要的组件类型列表
// 返回: []EntityID - 满足条件的实体ID列表（按ID升序，保证帧间顺序稳定）
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for id, compMap := range em.components {
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// GetComponent 泛型版本的组件获取
//
// 用法:
//
//	target, ok := ecs.GetComponent[*components.TargetComponent](em, id)
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.GetComponent(id, typeOf[T]())
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// HasComponent 泛型版本的组件检查
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	_, ok := GetComponent[T](em, id)
	return ok
}

// GetEntitiesWith1 查询拥有组件 T1 的所有实体
func GetEntitiesWith1[T1 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1]())
}

// GetEntitiesWith2 查询同时拥有 T1、T2 的所有实体
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1](), typeOf[T2]())
}

// GetEntitiesWith3 查询同时拥有 T1、T2、T3 的所有实体
func GetEntitiesWith3[T1, T2, T3 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1](), typeOf[T2](), typeOf[T3]())
}

func typeOf[T any]() reflect.Type {
	var zero T
	return reflect.TypeOf(zero)
}
