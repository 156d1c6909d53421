package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/notepadie/notepad-local-service/internal/domain"
	"github.com/notepadie/notepad-local-service/pkg/timex"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockKVRepo 内存仓储, 可注入失败
type mockKVRepo struct {
	mu       sync.Mutex
	notes    []*domain.Note
	folders  []*domain.Folder
	theme    domain.ThemeMode
	hasNotes bool
	hasTheme bool
	failSave bool

	saveNoteCalls  int
	saveThemeCalls int
}

func (m *mockKVRepo) LoadNotes(_ context.Context) ([]*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.hasNotes {
		return nil, nil
	}
	return m.notes, nil
}

func (m *mockKVRepo) SaveNotes(_ context.Context, notes []*domain.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveNoteCalls++
	if m.failSave {
		return errors.New("disk full")
	}
	m.notes = notes
	m.hasNotes = true
	return nil
}

func (m *mockKVRepo) LoadFolders(_ context.Context) ([]*domain.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.folders, nil
}

func (m *mockKVRepo) SaveFolders(_ context.Context, folders []*domain.Folder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave {
		return errors.New("disk full")
	}
	m.folders = folders
	return nil
}

func (m *mockKVRepo) LoadThemeMode(_ context.Context) (domain.ThemeMode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.hasTheme {
		return "", nil
	}
	return m.theme, nil
}

func (m *mockKVRepo) SaveThemeMode(_ context.Context, mode domain.ThemeMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveThemeCalls++
	if m.failSave {
		return errors.New("disk full")
	}
	m.theme = mode
	m.hasTheme = true
	return nil
}

func newTestStore(t *testing.T, repo *mockKVRepo) StoreService {
	t.Helper()
	if repo == nil {
		repo = &mockKVRepo{}
	}
	return NewStoreService(context.Background(), repo, zap.NewNop())
}

func strPtr(s string) *string { return &s }

func TestStore_SeedsWelcomeNote(t *testing.T) {
	s := newTestStore(t, nil)

	notes := s.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, "Welcome", notes[0].Title)
	assert.Equal(t, "# Welcome to NotePadie\n\nStart writing your notes here!", notes[0].Content)
	assert.Nil(t, notes[0].FolderID)

	active := s.ActiveNoteID()
	require.NotNil(t, active)
	assert.Equal(t, notes[0].ID, *active)

	assert.Equal(t, domain.ThemeDark, s.Theme())
	assert.True(t, s.IsSidebarOpen())
	assert.Empty(t, s.Folders())
}

func TestStore_AdoptsPersistedState(t *testing.T) {
	repo := &mockKVRepo{
		hasNotes: true,
		notes: []*domain.Note{
			{ID: "n1", Title: "first", CreatedAt: timex.Now(), UpdatedAt: timex.Now()},
			{ID: "n2", Title: "second", CreatedAt: timex.Now(), UpdatedAt: timex.Now()},
		},
		folders:  []*domain.Folder{{ID: "f1", Name: "Work", CreatedAt: timex.Now()}},
		hasTheme: true,
		theme:    domain.ThemeLight,
	}
	s := newTestStore(t, repo)

	require.Len(t, s.Notes(), 2)
	active := s.ActiveNoteID()
	require.NotNil(t, active)
	assert.Equal(t, "n1", *active)
	require.Len(t, s.Folders(), 1)
	assert.Equal(t, domain.ThemeLight, s.Theme())
}

func TestStore_IgnoresUnknownThemeValue(t *testing.T) {
	repo := &mockKVRepo{hasTheme: true, theme: "sepia"}
	s := newTestStore(t, repo)
	assert.Equal(t, domain.ThemeDark, s.Theme())
}

func TestStore_CreateNote(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	n := s.CreateNote(ctx, nil)
	assert.Equal(t, "Untitled", n.Title)
	assert.Equal(t, "", n.Content)
	assert.Nil(t, n.FolderID)
	assert.NotEmpty(t, n.ID)

	active := s.ActiveNoteID()
	require.NotNil(t, active)
	assert.Equal(t, n.ID, *active)
	assert.Len(t, s.Notes(), 2)

	inFolder := s.CreateNote(ctx, strPtr("f9"))
	require.NotNil(t, inFolder.FolderID)
	assert.Equal(t, "f9", *inFolder.FolderID)
}

func TestStore_UpdateNote(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()
	n := s.CreateNote(ctx, nil)

	got, ok := s.UpdateNote(ctx, n.ID, NotePatch{Title: strPtr("Shopping")})
	require.True(t, ok)
	assert.Equal(t, "Shopping", got.Title)
	assert.Equal(t, "", got.Content)
	assert.False(t, got.UpdatedAt.Time().Before(n.UpdatedAt.Time()))

	// 未指定的字段保持不变
	got, ok = s.UpdateNote(ctx, n.ID, NotePatch{Content: strPtr("milk, eggs")})
	require.True(t, ok)
	assert.Equal(t, "Shopping", got.Title)
	assert.Equal(t, "milk, eggs", got.Content)

	// 清空 folderId 与不触碰 folderId 是两回事
	got, ok = s.UpdateNote(ctx, n.ID, NotePatch{FolderID: strPtr("f1"), HasFolderID: true})
	require.True(t, ok)
	require.NotNil(t, got.FolderID)
	got, ok = s.UpdateNote(ctx, n.ID, NotePatch{Title: strPtr("kept")})
	require.True(t, ok)
	require.NotNil(t, got.FolderID)
	got, ok = s.UpdateNote(ctx, n.ID, NotePatch{HasFolderID: true})
	require.True(t, ok)
	assert.Nil(t, got.FolderID)
}

func TestStore_UpdateNoteUnknownID(t *testing.T) {
	repo := &mockKVRepo{}
	s := newTestStore(t, repo)
	before := repo.saveNoteCalls

	_, ok := s.UpdateNote(context.Background(), "missing", NotePatch{Title: strPtr("x")})
	assert.False(t, ok)
	assert.Equal(t, before, repo.saveNoteCalls, "no persistence on no-op")
}

func TestStore_DeleteNoteReselectsActive(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	welcome := s.Notes()[0]
	second := s.CreateNote(ctx, nil)
	third := s.CreateNote(ctx, nil)

	// 删除活动笔记后重选集合中的第一条
	require.True(t, s.DeleteNote(ctx, third.ID))
	active := s.ActiveNoteID()
	require.NotNil(t, active)
	assert.Equal(t, welcome.ID, *active)

	// 删除非活动笔记不影响选择
	require.True(t, s.DeleteNote(ctx, second.ID))
	active = s.ActiveNoteID()
	require.NotNil(t, active)
	assert.Equal(t, welcome.ID, *active)

	// 删空后活动笔记归 nil
	require.True(t, s.DeleteNote(ctx, welcome.ID))
	assert.Nil(t, s.ActiveNoteID())
	assert.Empty(t, s.Notes())

	assert.False(t, s.DeleteNote(ctx, "missing"))
}

func TestStore_ActiveAlwaysValid(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	// 混合增删后活动笔记要么为 nil 要么指向现存笔记
	var ids []string
	for i := 0; i < 5; i++ {
		ids = append(ids, s.CreateNote(ctx, nil).ID)
	}
	s.DeleteNote(ctx, ids[4])
	s.DeleteNote(ctx, ids[1])
	s.CreateNote(ctx, nil)
	s.DeleteNote(ctx, s.Notes()[0].ID)

	active := s.ActiveNoteID()
	if active != nil {
		_, found := s.Note(*active)
		assert.True(t, found)
	} else {
		assert.Empty(t, s.Notes())
	}
}

func TestStore_ActiveNoteProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// 任意增删序列后, 活动笔记要么指向集合中现存的笔记, 要么集合已删空
	properties.Property("active note stays within the collection", prop.ForAll(
		func(ops []int) bool {
			s := newTestStore(t, nil)
			ctx := context.Background()

			for _, op := range ops {
				if op%2 == 0 {
					s.CreateNote(ctx, nil)
				} else if notes := s.Notes(); len(notes) > 0 {
					s.DeleteNote(ctx, notes[op%len(notes)].ID)
				} else {
					// 空集合上的删除必须保持 nil 活动笔记
					s.DeleteNote(ctx, "missing")
				}

				active := s.ActiveNoteID()
				if active == nil {
					if len(s.Notes()) != 0 {
						return false
					}
					continue
				}
				if _, found := s.Note(*active); !found {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 97)),
	))

	properties.TestingRun(t)
}

func TestStore_FolderLifecycle(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	f := s.CreateFolder(ctx, "Work", nil)
	assert.Equal(t, "Work", f.Name)
	assert.Nil(t, f.ParentID)

	child := s.CreateFolder(ctx, "Projects", &f.ID)
	require.NotNil(t, child.ParentID)

	require.True(t, s.RenameFolder(ctx, f.ID, "Office"))
	var renamed *domain.Folder
	for _, x := range s.Folders() {
		if x.ID == f.ID {
			renamed = x
		}
	}
	require.NotNil(t, renamed)
	assert.Equal(t, "Office", renamed.Name)

	assert.False(t, s.RenameFolder(ctx, "missing", "x"))
}

func TestStore_DeleteFolderGuards(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	parent := s.CreateFolder(ctx, "Parent", nil)
	child := s.CreateFolder(ctx, "Child", &parent.ID)

	// 含子文件夹时拒绝
	assert.False(t, s.DeleteFolder(ctx, parent.ID))

	// 含笔记时拒绝
	n := s.CreateNote(ctx, &child.ID)
	assert.False(t, s.DeleteFolder(ctx, child.ID))

	// 清空引用后可删除
	require.True(t, s.MoveNoteToFolder(ctx, n.ID, nil))
	assert.True(t, s.DeleteFolder(ctx, child.ID))
	assert.True(t, s.DeleteFolder(ctx, parent.ID))
	assert.Empty(t, s.Folders())

	assert.False(t, s.DeleteFolder(ctx, "missing"))
}

func TestStore_MoveNoteToFolder(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	f := s.CreateFolder(ctx, "Inbox", nil)
	n := s.CreateNote(ctx, nil)

	require.True(t, s.MoveNoteToFolder(ctx, n.ID, &f.ID))
	moved, found := s.Note(n.ID)
	require.True(t, found)
	require.NotNil(t, moved.FolderID)
	assert.Equal(t, f.ID, *moved.FolderID)

	require.True(t, s.MoveNoteToFolder(ctx, n.ID, nil))
	moved, _ = s.Note(n.ID)
	assert.Nil(t, moved.FolderID)

	assert.False(t, s.MoveNoteToFolder(ctx, "missing", &f.ID))
}

func TestStore_FolderOptionsFlattening(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	work := s.CreateFolder(ctx, "Work", nil)
	archive := s.CreateFolder(ctx, "Archive", nil)
	beta := s.CreateFolder(ctx, "beta", &work.ID)
	alpha := s.CreateFolder(ctx, "Alpha", &work.ID)
	deep := s.CreateFolder(ctx, "Deep", &alpha.ID)
	_ = archive
	_ = beta
	_ = deep

	opts := s.FolderOptions()
	require.Len(t, opts, 6)

	// 根哨兵开头, 同级按名称排序, 子级紧随父级
	assert.Equal(t, RootOptionID, opts[0].ID)
	assert.Equal(t, 0, opts[0].Depth)

	names := make([]string, 0, len(opts))
	depths := make([]int, 0, len(opts))
	for _, o := range opts {
		names = append(names, o.Name)
		depths = append(depths, o.Depth)
	}
	assert.Equal(t, []string{"Root", "Archive", "Work", "Alpha", "Deep", "beta"}, names)
	assert.Equal(t, []int{0, 1, 1, 2, 3, 2}, depths)
}

func TestStore_ReplaceAllNotes(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	imported := []*domain.Note{
		{ID: "i1", Title: "imported one", CreatedAt: timex.Now(), UpdatedAt: timex.Now()},
		{ID: "i2", Title: "imported two", CreatedAt: timex.Now(), UpdatedAt: timex.Now()},
	}
	s.ReplaceAllNotes(ctx, imported)

	got := s.Notes()
	require.Len(t, got, 2)
	assert.Equal(t, "i1", got[0].ID)
	active := s.ActiveNoteID()
	require.NotNil(t, active)
	assert.Equal(t, "i1", *active)
}

func TestStore_ToggleSidebar(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	assert.False(t, s.ToggleSidebar(ctx))
	assert.False(t, s.IsSidebarOpen())
	assert.True(t, s.ToggleSidebar(ctx))
}

func TestStore_ToggleThemePersists(t *testing.T) {
	repo := &mockKVRepo{}
	s := newTestStore(t, repo)
	ctx := context.Background()

	assert.Equal(t, domain.ThemeLight, s.ToggleTheme(ctx))
	assert.Equal(t, domain.ThemeLight, repo.theme)
	assert.Equal(t, domain.ThemeDark, s.ToggleTheme(ctx))
	assert.Equal(t, 2, repo.saveThemeCalls)
}

func TestStore_PersistFailureSurfaced(t *testing.T) {
	repo := &mockKVRepo{failSave: true}
	s := newTestStore(t, repo)
	ctx := context.Background()

	n := s.CreateNote(ctx, nil)
	// 内存提交不受持久化失败影响
	_, found := s.Note(n.ID)
	assert.True(t, found)
	assert.Equal(t, int64(1), s.PersistFailures())

	s.ToggleTheme(ctx)
	assert.Equal(t, int64(2), s.PersistFailures())
}

func TestStore_SubscribeNotifiedOnCommit(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	var calls int
	s.Subscribe(func() { calls++ })

	n := s.CreateNote(ctx, nil)
	s.UpdateNote(ctx, n.ID, NotePatch{Title: strPtr("t")})
	s.DeleteNote(ctx, n.ID)
	assert.Equal(t, 3, calls)

	// 无操作的变更不通知
	s.UpdateNote(ctx, "missing", NotePatch{Title: strPtr("x")})
	assert.Equal(t, 3, calls)
}
