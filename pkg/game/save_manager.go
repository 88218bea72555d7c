package game

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/shootrange/pkg/config"
)

// RunOutcome 一次闯关的结局
type RunOutcome string

const (
	RunInProgress RunOutcome = "in-progress"
	RunWon        RunOutcome = "won"
	RunFailed     RunOutcome = "failed"
	RunAbandoned  RunOutcome = "abandoned"
)

// maxRunHistory 保留的最近闯关记录条数
const maxRunHistory = 20

// RunRecord 一次从第1关（或 --level 指定关卡）开始的闯关记录
type RunRecord struct {
	ID            string     `yaml:"id"`
	StartLevel    int        `yaml:"startLevel"`
	LevelsCleared int        `yaml:"levelsCleared"`
	TotalTime     float64    `yaml:"totalTime"` // 各关通关用时之和（秒）
	Outcome       RunOutcome `yaml:"outcome"`
	StartedAt     time.Time  `yaml:"startedAt"`
	FinishedAt    time.Time  `yaml:"finishedAt,omitempty"`
}

// SaveData 存档数据
//
// 保存内容：
//   - 到达过的最高关卡
//   - 每关最快通关用时
//   - 最近的闯关记录
type SaveData struct {
	HighestLevel   int             `yaml:"highestLevel"`
	BestTimes      map[int]float64 `yaml:"bestTimes"`
	Runs           []RunRecord     `yaml:"runs"`
	HasStartedGame bool            `yaml:"hasStartedGame"`
}

func newSaveData() *SaveData {
	return &SaveData{BestTimes: make(map[int]float64)}
}

// SaveManager 存档管理器
//
// 与 SettingsManager 一样通过 gdata 持久化，gdataManager 为 nil 时只在内存中记录。
// 通过 Track 订阅 Session 的状态变化来记录进度。
type SaveManager struct {
	gdataManager *gdata.Manager
	data         *SaveData
	current      *RunRecord
	now          func() time.Time
}

const (
	saveObject   = "save"
	saveProperty = "progress"
)

// NewSaveManager 创建存档管理器并加载已有存档
func NewSaveManager(gdataManager *gdata.Manager) (*SaveManager, error) {
	sm := &SaveManager{
		gdataManager: gdataManager,
		data:         newSaveData(),
		now:          time.Now,
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SaveManager] Warning: Failed to load save data: %v (starting fresh)", err)
	}

	return sm, nil
}

// Load 从 gdata 读取存档
func (sm *SaveManager) Load() error {
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(saveObject, saveProperty) {
		sm.data = newSaveData()
		return nil
	}

	raw, err := sm.gdataManager.LoadObjectProp(saveObject, saveProperty)
	if err != nil {
		sm.data = newSaveData()
		return fmt.Errorf("failed to load save data: %w", err)
	}

	data := newSaveData()
	if err := yaml.Unmarshal(raw, data); err != nil {
		sm.data = newSaveData()
		return fmt.Errorf("failed to unmarshal save data: %w", err)
	}
	if data.BestTimes == nil {
		data.BestTimes = make(map[int]float64)
	}

	sm.data = data
	log.Printf("[SaveManager] 加载存档：最高关卡 %d，%d 条闯关记录", data.HighestLevel, len(data.Runs))
	return nil
}

// Save 写入 gdata；降级模式下直接返回 nil
func (sm *SaveManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	raw, err := yaml.Marshal(sm.data)
	if err != nil {
		return fmt.Errorf("failed to marshal save data: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(saveObject, saveProperty, raw); err != nil {
		return fmt.Errorf("failed to save data: %w", err)
	}
	return nil
}

// GetHighestLevel 到达过的最高关卡序号（从未开始时为 0）
func (sm *SaveManager) GetHighestLevel() int {
	return sm.data.HighestLevel
}

// GetHasStartedGame 是否开始过游戏
func (sm *SaveManager) GetHasStartedGame() bool {
	return sm.data.HasStartedGame
}

// BestTime 指定关卡的最快通关用时
func (sm *SaveManager) BestTime(level int) (float64, bool) {
	t, ok := sm.data.BestTimes[level]
	return t, ok
}

// Runs 闯关记录（最早的在前）
func (sm *SaveManager) Runs() []RunRecord {
	out := make([]RunRecord, len(sm.data.Runs))
	copy(out, sm.data.Runs)
	return out
}

// CurrentRun 进行中的闯关记录
func (sm *SaveManager) CurrentRun() (RunRecord, bool) {
	if sm.current == nil {
		return RunRecord{}, false
	}
	return *sm.current, true
}

// Track 订阅会话状态变化
func (sm *SaveManager) Track(s *Session) {
	s.OnTransition(sm.Record)
}

// Record 根据一次状态变化更新存档
func (sm *SaveManager) Record(t Transition) {
	switch {
	case t.Cause == CauseEvent && t.FromRound == RoundMainMenu && t.ToRound == RoundStart:
		sm.beginRun(t.ToLevel)
	case t.Cause == CauseEvent && t.FromRound == RoundFailed && t.ToRound == RoundStart:
		sm.beginRun(t.ToLevel)
	case t.Cause == CauseLevelClear:
		sm.levelCleared(t.FromLevel, t.Elapsed)
		if t.ToRound == RoundWon {
			sm.finishRun(RunWon)
		} else {
			sm.reachLevel(t.ToLevel)
		}
	case t.Cause == CauseTimerExpiry:
		sm.finishRun(RunFailed)
	case t.Cause == CauseEvent && t.Event == EventMainMenu:
		sm.finishRun(RunAbandoned)
	default:
		return
	}

	if err := sm.Save(); err != nil {
		log.Printf("[SaveManager] Warning: %v", err)
	}
}

func (sm *SaveManager) beginRun(level LevelState) {
	n, _ := level.Ordinal()
	sm.data.HasStartedGame = true
	sm.current = &RunRecord{
		ID:         uuid.NewString(),
		StartLevel: n,
		Outcome:    RunInProgress,
		StartedAt:  sm.now(),
	}
	sm.reachLevel(level)
}

func (sm *SaveManager) reachLevel(level LevelState) {
	if n, ok := level.Ordinal(); ok && n > sm.data.HighestLevel {
		sm.data.HighestLevel = n
	}
}

func (sm *SaveManager) levelCleared(level LevelState, elapsed float64) {
	n, ok := level.Ordinal()
	if !ok {
		return
	}
	// 不足一帧的用时不可能来自正常游戏，不计入纪录
	if elapsed < config.FixedDeltaTime {
		log.Printf("[SaveManager] Warning: 第 %d 关用时 %.4fs 无效，忽略", n, elapsed)
	} else if best, seen := sm.data.BestTimes[n]; !seen || elapsed < best {
		sm.data.BestTimes[n] = elapsed
		log.Printf("[SaveManager] 第 %d 关新纪录 %.2fs", n, elapsed)
	}
	if sm.current != nil {
		sm.current.LevelsCleared++
		sm.current.TotalTime += elapsed
	}
}

func (sm *SaveManager) finishRun(outcome RunOutcome) {
	if sm.current == nil {
		return
	}
	sm.current.Outcome = outcome
	sm.current.FinishedAt = sm.now()
	sm.data.Runs = append(sm.data.Runs, *sm.current)
	if len(sm.data.Runs) > maxRunHistory {
		sm.data.Runs = sm.data.Runs[len(sm.data.Runs)-maxRunHistory:]
	}
	sm.current = nil
}
