package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/notepadie/notepad-local-service/internal/domain"
	"github.com/notepadie/notepad-local-service/pkg/logger"
	"github.com/notepadie/notepad-local-service/pkg/timex"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// The seeded note shown on first launch
// 首次启动时的默认欢迎笔记
const (
	welcomeTitle   = "Welcome"
	welcomeContent = "# Welcome to NotePadie\n\nStart writing your notes here!"

	newNoteTitle = "Untitled"

	// Sentinel option for the folder picker's top level
	RootOptionID   = "root"
	RootOptionName = "Root"
)

// NotePatch 笔记部分更新载荷; 仅非 nil 字段生效
// HasFolderID distinguishes "clear the folder" from "leave it alone".
type NotePatch struct {
	Title       *string
	Content     *string
	FolderID    *string
	HasFolderID bool
}

// StoreService 内存笔记/文件夹存储, 状态的唯一权威持有者
//
// Every committed mutation persists through the repository and wakes
// subscribers. Refusals are boolean outcomes, never errors.
type StoreService interface {
	Notes() []*domain.Note
	Note(id string) (*domain.Note, bool)
	Folders() []*domain.Folder
	ActiveNoteID() *string
	IsSidebarOpen() bool
	Theme() domain.ThemeMode

	CreateNote(ctx context.Context, folderID *string) *domain.Note
	UpdateNote(ctx context.Context, id string, patch NotePatch) (*domain.Note, bool)
	DeleteNote(ctx context.Context, id string) bool
	SetActiveNoteID(ctx context.Context, id *string)
	ReplaceAllNotes(ctx context.Context, notes []*domain.Note)

	CreateFolder(ctx context.Context, name string, parentID *string) *domain.Folder
	RenameFolder(ctx context.Context, id string, name string) bool
	DeleteFolder(ctx context.Context, id string) bool
	MoveNoteToFolder(ctx context.Context, noteID string, folderID *string) bool
	FolderOptions() []*domain.FolderOption

	ToggleSidebar(ctx context.Context) bool
	ToggleTheme(ctx context.Context) domain.ThemeMode

	Subscribe(fn func())
	PersistFailures() int64
}

type store struct {
	mu          sync.Mutex
	repo        domain.KVRepository
	logger      *zap.Logger
	notes       []*domain.Note
	folders     []*domain.Folder
	activeID    *string
	sidebarOpen bool
	theme       domain.ThemeMode

	subMu       sync.Mutex
	subscribers []func()

	persistFailures atomic.Int64
}

// NewStoreService 加载持久化状态并构建存储; 无持久化笔记时播种欢迎笔记
//
// Load failures fall back to the seeded defaults so the app always
// starts; the failure is logged and counted.
func NewStoreService(ctx context.Context, repo domain.KVRepository, lg *zap.Logger) StoreService {
	s := &store{
		repo:        repo,
		logger:      lg,
		sidebarOpen: true,
		theme:       domain.ThemeDark,
	}

	notes, err := repo.LoadNotes(ctx)
	if err != nil {
		s.persistFailures.Add(1)
		lg.Error("load notes failed, seeding defaults", zap.Error(err))
		notes = nil
	}
	if notes != nil {
		s.notes = notes
		if len(notes) > 0 {
			id := notes[0].ID
			s.activeID = &id
		}
	} else {
		now := timex.Now()
		welcome := &domain.Note{
			ID:        uuid.NewString(),
			Title:     welcomeTitle,
			Content:   welcomeContent,
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.notes = []*domain.Note{welcome}
		s.activeID = &welcome.ID
	}

	folders, err := repo.LoadFolders(ctx)
	if err != nil {
		s.persistFailures.Add(1)
		lg.Error("load folders failed", zap.Error(err))
	} else if folders != nil {
		s.folders = folders
	}

	// 未知主题值一律忽略, 保持默认暗色
	mode, err := repo.LoadThemeMode(ctx)
	if err != nil {
		s.persistFailures.Add(1)
		lg.Error("load theme failed", zap.Error(err))
	} else if mode.IsValid() {
		s.theme = mode
	}

	return s
}

// Subscribe 注册状态变更监听; 每次提交后在锁外回调
func (s *store) Subscribe(fn func()) {
	s.subMu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.subMu.Unlock()
}

func (s *store) notify() {
	s.subMu.Lock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.subMu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// PersistFailures 返回累计的持久化失败次数, 用于健康检查
func (s *store) PersistFailures() int64 {
	return s.persistFailures.Load()
}

// persistNotes 必须在持锁状态下调用; 失败只记录, 不回滚内存状态
func (s *store) persistNotes(ctx context.Context) {
	if err := s.repo.SaveNotes(ctx, s.notes); err != nil {
		s.persistFailures.Add(1)
		s.logger.Error("persist notes failed",
			zap.Int(logger.FieldCount, len(s.notes)), zap.Error(err))
	}
}

func (s *store) persistFolders(ctx context.Context) {
	if err := s.repo.SaveFolders(ctx, s.folders); err != nil {
		s.persistFailures.Add(1)
		s.logger.Error("persist folders failed",
			zap.Int(logger.FieldCount, len(s.folders)), zap.Error(err))
	}
}

func (s *store) persistTheme(ctx context.Context) {
	if err := s.repo.SaveThemeMode(ctx, s.theme); err != nil {
		s.persistFailures.Add(1)
		s.logger.Error("persist theme failed", zap.Error(err))
	}
}

func cloneNote(n *domain.Note) *domain.Note {
	c := *n
	if n.FolderID != nil {
		fid := *n.FolderID
		c.FolderID = &fid
	}
	return &c
}

func cloneFolder(f *domain.Folder) *domain.Folder {
	c := *f
	if f.ParentID != nil {
		pid := *f.ParentID
		c.ParentID = &pid
	}
	return &c
}

// Notes 返回笔记集合的快照副本
func (s *store) Notes() []*domain.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Note, 0, len(s.notes))
	for _, n := range s.notes {
		out = append(out, cloneNote(n))
	}
	return out
}

func (s *store) Note(id string) (*domain.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notes {
		if n.ID == id {
			return cloneNote(n), true
		}
	}
	return nil, false
}

func (s *store) Folders() []*domain.Folder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Folder, 0, len(s.folders))
	for _, f := range s.folders {
		out = append(out, cloneFolder(f))
	}
	return out
}

func (s *store) ActiveNoteID() *string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeID == nil {
		return nil
	}
	id := *s.activeID
	return &id
}

func (s *store) IsSidebarOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sidebarOpen
}

func (s *store) Theme() domain.ThemeMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// CreateNote 追加一条空白笔记并将其设为活动笔记
// folderID 不做存在性校验, 调用方自行负责
func (s *store) CreateNote(ctx context.Context, folderID *string) *domain.Note {
	s.mu.Lock()
	now := timex.Now()
	n := &domain.Note{
		ID:        uuid.NewString(),
		Title:     newNoteTitle,
		Content:   "",
		CreatedAt: now,
		UpdatedAt: now,
		FolderID:  folderID,
	}
	s.notes = append(s.notes, n)
	s.activeID = &n.ID
	s.persistNotes(ctx)
	out := cloneNote(n)
	s.mu.Unlock()
	s.notify()
	return out
}

// UpdateNote 合并补丁到指定笔记并刷新 UpdatedAt
// 未知 id 不产生任何变更 (false)
func (s *store) UpdateNote(ctx context.Context, id string, patch NotePatch) (*domain.Note, bool) {
	s.mu.Lock()
	var target *domain.Note
	for _, n := range s.notes {
		if n.ID == id {
			target = n
			break
		}
	}
	if target == nil {
		s.mu.Unlock()
		return nil, false
	}
	if patch.Title != nil {
		target.Title = *patch.Title
	}
	if patch.Content != nil {
		target.Content = *patch.Content
	}
	if patch.HasFolderID {
		target.FolderID = patch.FolderID
	}
	target.UpdatedAt = timex.Now()
	s.persistNotes(ctx)
	out := cloneNote(target)
	s.mu.Unlock()
	s.notify()
	return out, true
}

// DeleteNote 删除笔记; 若删除的是活动笔记, 重选剩余的第一条
func (s *store) DeleteNote(ctx context.Context, id string) bool {
	s.mu.Lock()
	idx := -1
	for i, n := range s.notes {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.notes = append(s.notes[:idx], s.notes[idx+1:]...)
	if s.activeID != nil && *s.activeID == id {
		if len(s.notes) > 0 {
			next := s.notes[0].ID
			s.activeID = &next
		} else {
			s.activeID = nil
		}
	}
	s.persistNotes(ctx)
	s.mu.Unlock()
	s.notify()
	return true
}

// SetActiveNoteID 无校验的活动笔记设置; 不触发持久化
func (s *store) SetActiveNoteID(_ context.Context, id *string) {
	s.mu.Lock()
	if id == nil {
		s.activeID = nil
	} else {
		v := *id
		s.activeID = &v
	}
	s.mu.Unlock()
	s.notify()
}

// ReplaceAllNotes 整体替换笔记集合 (导入用)
//
// 只替换笔记; 残留的 folderId 引用可能悬空, 文件夹删除守卫
// 依据实时引用判断, 因此依旧正确。活动笔记重选为新集合的第一条。
func (s *store) ReplaceAllNotes(ctx context.Context, notes []*domain.Note) {
	s.mu.Lock()
	s.notes = make([]*domain.Note, 0, len(notes))
	for _, n := range notes {
		s.notes = append(s.notes, cloneNote(n))
	}
	if len(s.notes) > 0 {
		id := s.notes[0].ID
		s.activeID = &id
	} else {
		s.activeID = nil
	}
	s.persistNotes(ctx)
	s.mu.Unlock()
	s.notify()
}

// CreateFolder 追加文件夹并返回
// name 非空由调用边界保证, 这里不再校验
func (s *store) CreateFolder(ctx context.Context, name string, parentID *string) *domain.Folder {
	s.mu.Lock()
	f := &domain.Folder{
		ID:        uuid.NewString(),
		Name:      name,
		ParentID:  parentID,
		CreatedAt: timex.Now(),
	}
	s.folders = append(s.folders, f)
	s.persistFolders(ctx)
	out := cloneFolder(f)
	s.mu.Unlock()
	s.notify()
	return out
}

// RenameFolder 重命名文件夹; 未知 id 返回 false
func (s *store) RenameFolder(ctx context.Context, id string, name string) bool {
	s.mu.Lock()
	var target *domain.Folder
	for _, f := range s.folders {
		if f.ID == id {
			target = f
			break
		}
	}
	if target == nil {
		s.mu.Unlock()
		return false
	}
	target.Name = name
	s.persistFolders(ctx)
	s.mu.Unlock()
	s.notify()
	return true
}

// DeleteFolder 删除文件夹; 含笔记或子文件夹时拒绝 (false)
func (s *store) DeleteFolder(ctx context.Context, id string) bool {
	s.mu.Lock()
	for _, n := range s.notes {
		if n.InFolder(id) {
			s.mu.Unlock()
			return false
		}
	}
	for _, f := range s.folders {
		if f.ParentID != nil && *f.ParentID == id {
			s.mu.Unlock()
			return false
		}
	}
	idx := -1
	for i, f := range s.folders {
		if f.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.folders = append(s.folders[:idx], s.folders[idx+1:]...)
	s.persistFolders(ctx)
	s.mu.Unlock()
	s.notify()
	return true
}

// MoveNoteToFolder 移动笔记到目标文件夹; nil 表示移到根级
func (s *store) MoveNoteToFolder(ctx context.Context, noteID string, folderID *string) bool {
	_, ok := s.UpdateNote(ctx, noteID, NotePatch{FolderID: folderID, HasFolderID: true})
	return ok
}

// FolderOptions 深度优先展开文件夹树, 同级按名称排序
// 首项固定为根级哨兵选项
func (s *store) FolderOptions() []*domain.FolderOption {
	s.mu.Lock()
	defer s.mu.Unlock()

	options := []*domain.FolderOption{
		{ID: RootOptionID, Name: RootOptionName, Depth: 0},
	}

	children := make(map[string][]*domain.Folder)
	for _, f := range s.folders {
		key := ""
		if f.ParentID != nil {
			key = *f.ParentID
		}
		children[key] = append(children[key], f)
	}
	for _, list := range children {
		sort.Slice(list, func(i, j int) bool {
			return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
		})
	}

	var walk func(parentKey string, depth int)
	walk = func(parentKey string, depth int) {
		for _, f := range children[parentKey] {
			options = append(options, &domain.FolderOption{ID: f.ID, Name: f.Name, Depth: depth})
			walk(f.ID, depth+1)
		}
	}
	walk("", 1)

	return options
}

// ToggleSidebar 翻转侧栏可见性; 会话级状态, 不持久化
func (s *store) ToggleSidebar(_ context.Context) bool {
	s.mu.Lock()
	s.sidebarOpen = !s.sidebarOpen
	open := s.sidebarOpen
	s.mu.Unlock()
	s.notify()
	return open
}

// ToggleTheme 翻转主题并独立持久化
func (s *store) ToggleTheme(ctx context.Context) domain.ThemeMode {
	s.mu.Lock()
	s.theme = s.theme.Toggle()
	s.persistTheme(ctx)
	mode := s.theme
	s.mu.Unlock()
	s.notify()
	return mode
}
