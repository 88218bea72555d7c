package config

import (
	"math"

	"github.com/decker502/shootrange/pkg/utils"
)

// 游戏参数常量
// 数值单位：距离为米，时间为秒

// Simulation (模拟步长)
const (
	// TicksPerSecond 逻辑帧率（Ebitengine 默认 60 TPS）
	TicksPerSecond = 60

	// FixedDeltaTime 每帧时间步长
	FixedDeltaTime = 1.0 / TicksPerSecond
)

// Player Configuration (玩家配置)
const (
	// PlayerSpeed 水平移动速度
	PlayerSpeed = 3.2

	// PlayerJumpHeight 起跳竖直速度（每帧位移）
	PlayerJumpHeight = 0.03

	// PlayerAirModifier 空中移动系数
	PlayerAirModifier = 1.0

	// PlayerCrouchModifier 蹲下时的移动系数
	PlayerCrouchModifier = 0.4

	// PlayerWalkDivisor 按住 Shift 静步时速度除数
	PlayerWalkDivisor = 1.7

	// PlayerFriction 速度衰减系数
	PlayerFriction = 0.9

	// PlayerGravity 重力加速度（每帧竖直速度减少量）
	PlayerGravity = 0.0015

	// PlayerEyeHeight 站立视点高度
	PlayerEyeHeight = 0.65

	// PlayerCrouchEyeHeight 蹲下视点高度
	PlayerCrouchEyeHeight = 0.30

	// PlayerGroundRayLength 地面检测射线长度
	PlayerGroundRayLength = 0.4

	// PlayerColliderRadius 玩家碰撞球半径
	PlayerColliderRadius = 0.2

	// DefaultMouseSensitivity 默认鼠标灵敏度（弧度/像素）
	DefaultMouseSensitivity = 0.0025

	// MaxVerticalAngle 俯仰角上限
	MaxVerticalAngle = math.Pi/2 - 0.02

	// CameraFOV 垂直视场角
	CameraFOV = 70.0 * math.Pi / 180.0

	// CameraNear 近裁剪面
	CameraNear = 0.05
)

// PlayerSpawn 玩家出生点（脚底位置）
var PlayerSpawn = utils.V3(0, 0, 0)

// Gun Configuration (枪械配置)
const (
	// GunFireDelay 自动射击间隔
	GunFireDelay = 0.1

	// GunRange 射程
	GunRange = 1000.0

	// TracerLifeTime 弹道轨迹寿命
	TracerLifeTime = 0.3

	// TracerSpeed 弹道起点推进速度（米/秒）
	TracerSpeed = 50.0
)

// MuzzleOffset 枪口相对视点的偏移（右、下、前）
var MuzzleOffset = utils.V3(0.12, -0.1, 0.3)

// Target Configuration (靶子配置)
const (
	// TargetRadius 靶子球体半径
	TargetRadius = 0.1

	// DefaultTargetHealth 靶子默认生命值
	DefaultTargetHealth = 1
)

// StartButtonPosition 开始按钮中心位置
var StartButtonPosition = utils.V3(0, 1.2, -4)

// StartButtonHalfExtents 开始按钮半尺寸
var StartButtonHalfExtents = utils.V3(0.4, 0.15, 0.05)

// GroundHalfExtents 地面碰撞盒半尺寸（中心位于 y = -GroundHalfExtents.Y）
var GroundHalfExtents = utils.V3(50, 0.5, 50)

// Audio Configuration (音频配置)
const (
	// AmbienceVolume 环境音音量
	AmbienceVolume = 0.3

	// SoundGunshot 枪声资源路径
	SoundGunshot = "assets/sounds/gunshot.ogg"

	// SoundAmbience 环境音资源路径
	SoundAmbience = "assets/sounds/ambience.ogg"

	// AudioSampleRate 音频采样率
	AudioSampleRate = 48000
)
