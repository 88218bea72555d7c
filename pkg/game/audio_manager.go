package game

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	au "github.com/decker502/shootrange/internal/audio"
)

// AssetReader 按路径读取资源字节（通常是 embedded.ReadFile）
type AssetReader func(path string) ([]byte, error)

// AudioManager 音频管理器
// 职责：
//   - 播放枪声等单次音效
//   - 循环播放环境音
//   - 从 SettingsManager 读取音量和开关
//
// context 为 nil 时（无头模式、测试）所有播放请求返回 false。
// 资源缺失只记录警告，不影响游戏运行。
type AudioManager struct {
	context         *audio.Context
	settingsManager *SettingsManager
	read            AssetReader
	soundPlayers    map[string]*audio.Player // 音效播放器缓存（路径 -> 播放器）
	musicPlayers    map[string]*audio.Player // 循环音乐缓存
	missing         map[string]bool          // 加载失败的资源，避免每帧重试
	currentMusic    *audio.Player
	currentMusicID  string
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - ctx: 全局音频上下文，可为 nil
//   - sm: SettingsManager 实例，可为 nil（使用默认音量）
//   - read: 资源读取函数
func NewAudioManager(ctx *audio.Context, sm *SettingsManager, read AssetReader) *AudioManager {
	return &AudioManager{
		context:         ctx,
		settingsManager: sm,
		read:            read,
		soundPlayers:    make(map[string]*audio.Player),
		musicPlayers:    make(map[string]*audio.Player),
		missing:         make(map[string]bool),
	}
}

// PlaySound 从头播放一次音效
func (am *AudioManager) PlaySound(soundID string) bool {
	if !am.settings().SoundEnabled {
		return false
	}

	player := am.getPlayer(soundID, false)
	if player == nil {
		return false
	}

	player.SetVolume(am.settings().SoundVolume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()
	return true
}

// PlayMusic 循环播放环境音；同一时间只有一首
func (am *AudioManager) PlayMusic(musicID string) bool {
	if !am.settings().AmbienceEnabled {
		return false
	}

	if am.currentMusicID == musicID && am.currentMusic != nil && am.currentMusic.IsPlaying() {
		return true
	}
	am.StopMusic()

	player := am.getPlayer(musicID, true)
	if player == nil {
		return false
	}

	volume := am.settings().AmbienceVolume
	player.SetVolume(volume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind music %s: %v", musicID, err)
	}
	player.Play()

	am.currentMusic = player
	am.currentMusicID = musicID
	log.Printf("[AudioManager] Playing music: %s (volume: %.2f)", musicID, volume)
	return true
}

// StopMusic 停止当前环境音
func (am *AudioManager) StopMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
		am.currentMusic = nil
		am.currentMusicID = ""
	}
}

// CurrentMusic 当前播放的环境音ID
func (am *AudioManager) CurrentMusic() string {
	return am.currentMusicID
}

// ApplySettings 将当前音量设置应用到已加载的播放器
func (am *AudioManager) ApplySettings() {
	s := am.settings()
	for _, p := range am.soundPlayers {
		p.SetVolume(s.SoundVolume)
	}
	for _, p := range am.musicPlayers {
		p.SetVolume(s.AmbienceVolume)
	}
	if am.currentMusic != nil && !s.AmbienceEnabled {
		am.StopMusic()
	}
}

// Preload 预加载音效，避免首次开枪时卡顿
func (am *AudioManager) Preload(soundIDs ...string) {
	for _, id := range soundIDs {
		am.getPlayer(id, false)
	}
}

func (am *AudioManager) settings() *GameSettings {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings()
	}
	return DefaultSettings()
}

// getPlayer 获取或加载播放器；loop 为 true 时包装为无限循环
func (am *AudioManager) getPlayer(id string, loop bool) *audio.Player {
	cache := am.soundPlayers
	if loop {
		cache = am.musicPlayers
	}
	if p, ok := cache[id]; ok {
		return p
	}
	if am.context == nil || am.missing[id] {
		return nil
	}

	player, err := am.load(id, loop)
	if err != nil {
		am.missing[id] = true
		log.Printf("[AudioManager] Warning: Failed to load %s: %v", id, err)
		return nil
	}
	cache[id] = player
	return player
}

func (am *AudioManager) load(path string, loop bool) (*audio.Player, error) {
	if am.read == nil {
		return nil, fmt.Errorf("no asset reader")
	}
	data, err := am.read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", path, err)
	}

	stream, length, err := decodeAudio(path, data, am.context.SampleRate())
	if err != nil {
		return nil, err
	}

	var src io.Reader = stream
	if loop {
		src = audio.NewInfiniteLoop(stream, length)
	}

	player, err := am.context.NewPlayer(src)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}
	return player, nil
}

// decodeAudio 按扩展名解码，并重采样到 sampleRate
func decodeAudio(path string, data []byte, sampleRate int) (io.ReadSeeker, int64, error) {
	reader := bytes.NewReader(data)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode OGG audio %s: %w", path, err)
		}
		return s, s.Length(), nil
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode MP3 audio %s: %w", path, err)
		}
		return s, s.Length(), nil
	case ".wav":
		s, err := wav.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode WAV audio %s: %w", path, err)
		}
		return s, s.Length(), nil
	case ".au":
		s, err := au.Decode(data)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode AU audio %s: %w", path, err)
		}
		if s.SampleRate() == sampleRate {
			return s, s.Length(), nil
		}
		r := audio.Resample(s, s.Length(), s.SampleRate(), sampleRate)
		return r, r.Length(), nil
	default:
		return nil, 0, fmt.Errorf("unsupported audio format: %s (supported: .ogg, .mp3, .wav, .au)", ext)
	}
}
