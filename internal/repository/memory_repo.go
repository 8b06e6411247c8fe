package repository

import (
	"context"
	"sync"

	"github.com/hitoshi/xgencloud/internal/model"
)

// MemoryUserRepo はプロセス内メモリにユーザーを保持するリポジトリ。
// ローカル起動（STORE=memory）とテストで使用する。
// メールアドレスの索引はミューテックス下で確認と挿入を行うため、同時登録でも1件のみ成功する。
type MemoryUserRepo struct {
	mu      sync.RWMutex
	byID    map[string]*model.User
	byEmail map[string]*model.User
}

// NewMemoryUserRepo はMemoryUserRepoを生成する。
func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{
		byID:    make(map[string]*model.User),
		byEmail: make(map[string]*model.User),
	}
}

// Create はユーザーを作成する。
func (r *MemoryUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return ErrEmailTaken
	}

	stored := *user
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = &stored
	return nil
}

// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
func (r *MemoryUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	found := *u
	return &found, nil
}

// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (r *MemoryUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	found := *u
	return &found, nil
}

// MemoryContactRepo はプロセス内メモリにお問い合わせメッセージを保持するリポジトリ。
type MemoryContactRepo struct {
	mu       sync.Mutex
	messages []model.ContactMessage
}

// NewMemoryContactRepo はMemoryContactRepoを生成する。
func NewMemoryContactRepo() *MemoryContactRepo {
	return &MemoryContactRepo{}
}

// Create はメッセージを保存する。
func (r *MemoryContactRepo) Create(ctx context.Context, msg *model.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, *msg)
	return nil
}

// Len は保存済みメッセージ数を返す。
func (r *MemoryContactRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

// MemoryPinger は常に接続済みとして振る舞うヘルスチェック対象。
// インメモリストア使用時に/api/healthで使用する。
type MemoryPinger struct{}

// PingContext は常にnilを返す。
func (MemoryPinger) PingContext(ctx context.Context) error { return nil }

var (
	_ UserRepository    = (*MemoryUserRepo)(nil)
	_ ContactRepository = (*MemoryContactRepo)(nil)
)
