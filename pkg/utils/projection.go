package utils

import "math"

// Camera 第一人称透视摄像机
type Camera struct {
	Position Vec3    // 眼睛位置
	Yaw      float64 // 偏航角（弧度）
	Pitch    float64 // 俯仰角（弧度）
	FOV      float64 // 垂直视场角（弧度）
	Near     float64 // 近裁剪面距离
}

// Basis 返回摄像机的 右/上/前 三个正交基向量
func (c Camera) Basis() (right, up, forward Vec3) {
	forward = DirectionFromYawPitch(c.Yaw, c.Pitch)
	right = FlatRight(c.Yaw)
	up = right.Cross(forward)
	return right, up, forward
}

// WorldToScreen 将世界坐标投影到屏幕坐标
//
// 参数：
//   - p: 世界坐标
//   - width, height: 屏幕逻辑尺寸
//
// 返回：
//   - sx, sy: 屏幕坐标
//   - depth: 沿视线方向的距离（用于按距离缩放）
//   - ok: 点在近裁剪面之后时为 false
func (c Camera) WorldToScreen(p Vec3, width, height int) (sx, sy, depth float64, ok bool) {
	right, up, forward := c.Basis()
	d := p.Sub(c.Position)

	depth = d.Dot(forward)
	if depth <= c.Near {
		return 0, 0, depth, false
	}

	focal := c.FocalLength(height)
	sx = float64(width)/2 + d.Dot(right)/depth*focal
	sy = float64(height)/2 - d.Dot(up)/depth*focal
	return sx, sy, depth, true
}

// FocalLength 屏幕像素焦距
func (c Camera) FocalLength(height int) float64 {
	return float64(height) / 2 / math.Tan(c.FOV/2)
}

// ProjectRadius 将世界空间半径按深度换算为屏幕像素半径
func (c Camera) ProjectRadius(radius, depth float64, height int) float64 {
	if depth <= 0 {
		return 0
	}
	return radius / depth * c.FocalLength(height)
}
