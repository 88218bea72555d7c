package game

import "fmt"

// RoundState 回合状态
type RoundState int

const (
	// RoundMainMenu 主菜单（初始状态）
	RoundMainMenu RoundState = iota
	// RoundPauseMenu 暂停菜单，保存进入前的回合状态
	RoundPauseMenu
	// RoundStart 关卡已布置，等待射击开始按钮
	RoundStart
	// RoundPlaying 计时中
	RoundPlaying
	// RoundFailed 超时失败，等待重试
	RoundFailed
	// RoundWon 全部关卡通关
	RoundWon
)

func (s RoundState) String() string {
	switch s {
	case RoundMainMenu:
		return "MainMenu"
	case RoundPauseMenu:
		return "PauseMenu"
	case RoundStart:
		return "Start"
	case RoundPlaying:
		return "Playing"
	case RoundFailed:
		return "Failed"
	case RoundWon:
		return "Won"
	default:
		return fmt.Sprintf("RoundState(%d)", int(s))
	}
}

// Pausable 报告该状态下按 Escape 是否进入暂停菜单
func (s RoundState) Pausable() bool {
	return s == RoundPlaying || s == RoundStart || s == RoundWon
}

// LevelState 关卡状态
// 正数为关卡序号（1 起），0 表示无关卡，-1 表示失败
type LevelState int

const (
	LevelFailed LevelState = -1
	LevelNone   LevelState = 0
	Level1      LevelState = 1
	Level2      LevelState = 2
	Level3      LevelState = 3
	Level4      LevelState = 4
	Level5      LevelState = 5
)

// IsActive 是否为具体关卡
func (l LevelState) IsActive() bool {
	return l >= Level1
}

// Ordinal 返回关卡序号；非具体关卡时 ok 为 false
func (l LevelState) Ordinal() (n int, ok bool) {
	if !l.IsActive() {
		return 0, false
	}
	return int(l), true
}

func (l LevelState) String() string {
	switch {
	case l == LevelNone:
		return "NoLevel"
	case l == LevelFailed:
		return "Failed"
	case l.IsActive():
		return fmt.Sprintf("Level%d", int(l))
	default:
		return fmt.Sprintf("LevelState(%d)", int(l))
	}
}
