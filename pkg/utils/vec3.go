package utils

import "math"

// Vec3 三维向量（世界坐标，单位：米）
// 坐标系：Y 轴向上，默认朝向 -Z
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// V3 构造向量
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add 向量加法
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub 向量减法
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale 数乘
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot 点积
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross 叉积
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length 向量长度
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// NormalizeOrZero 单位化；零向量返回零向量
func (v Vec3) NormalizeOrZero() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Distance 两点距离
func Distance(a, b Vec3) float64 {
	return a.Sub(b).Length()
}

// MoveTowards 从 from 向 to 移动最多 maxDelta
// 剩余距离不超过 maxDelta 时直接返回 to
func MoveTowards(from, to Vec3, maxDelta float64) Vec3 {
	diff := to.Sub(from)
	dist := diff.Length()
	if dist <= maxDelta || dist == 0 {
		return to
	}
	return from.Add(diff.Scale(maxDelta / dist))
}

// Clamp 将值限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DirectionFromYawPitch 由偏航角和俯仰角计算朝向单位向量
// yaw=0, pitch=0 时朝向 -Z；yaw 为正向左转，pitch 为正向上看
func DirectionFromYawPitch(yaw, pitch float64) Vec3 {
	cp := math.Cos(pitch)
	return Vec3{
		X: -math.Sin(yaw) * cp,
		Y: math.Sin(pitch),
		Z: -math.Cos(yaw) * cp,
	}
}

// FlatForward 水平面上的前方向（忽略俯仰）
func FlatForward(yaw float64) Vec3 {
	return Vec3{X: -math.Sin(yaw), Z: -math.Cos(yaw)}
}

// FlatRight 水平面上的右方向
func FlatRight(yaw float64) Vec3 {
	return Vec3{X: math.Cos(yaw), Z: -math.Sin(yaw)}
}
