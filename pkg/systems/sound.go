package systems

//go:generate go tool mockgen -destination=./mocks/sound_player_mock.go -package=mocks . SoundPlayer

// SoundPlayer 播放一次性音效
// 运行时由 game.AudioManager 实现
type SoundPlayer interface {
	PlaySound(soundID string) bool
}
