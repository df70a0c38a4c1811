package conversation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"bondhon_server/internal/dao/mysql/repository"
	"bondhon_server/internal/model"
	"bondhon_server/pkg/constants"
	"bondhon_server/pkg/enum/connection/connection_status_enum"
	"bondhon_server/pkg/enum/profile/profile_status_enum"
)

type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[key], nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeCache) DeleteByPattern(ctx context.Context, pattern string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range f.data {
		if strings.HasPrefix(k, prefix) {
			delete(f.data, k)
		}
	}
	return nil
}

func (f *fakeCache) DeleteByPatterns(ctx context.Context, patterns []string) error {
	for _, p := range patterns {
		_ = f.DeleteByPattern(context.Background(), p)
	}
	return nil
}

func (f *fakeCache) SubmitTask(action func()) {
	action()
}

var dbSeq int
var dbSeqMu sync.Mutex

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbSeqMu.Lock()
	dbSeq++
	dsn := fmt.Sprintf("file:conv_test_%d?mode=memory&cache=shared", dbSeq)
	dbSeqMu.Unlock()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&model.MemberIdentity{},
		&model.Profile{},
		&model.ConnectionRequest{},
		&model.Message{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedConnection(t *testing.T, db *gorm.DB, uuid, sender, receiver string, status int8) {
	t.Helper()
	if err := db.Create(&model.ConnectionRequest{
		Uuid:          uuid,
		PairKey:       model.PairKey(sender, receiver),
		SenderEmail:   sender,
		ReceiverEmail: receiver,
		Status:        status,
	}).Error; err != nil {
		t.Fatalf("seed connection %s: %v", uuid, err)
	}
}

func seedProfile(t *testing.T, db *gorm.DB, uuid, email, name string, status int8) {
	t.Helper()
	if err := db.Create(&model.Profile{
		Uuid:        uuid,
		OwnerEmail:  email,
		Status:      status,
		DisplayName: name,
		Avatar:      "a.png",
		Department:  "工学院",
		District:    "达卡",
	}).Error; err != nil {
		t.Fatalf("seed profile %s: %v", email, err)
	}
}

func seedMessage(t *testing.T, db *gorm.DB, id int64, convId, sender, receiver, body string, sentAt time.Time) {
	t.Helper()
	if err := db.Create(&model.Message{
		Uuid:           id,
		ConversationId: convId,
		SenderEmail:    sender,
		ReceiverEmail:  receiver,
		Body:           body,
		SentAt:         sentAt,
	}).Error; err != nil {
		t.Fatalf("seed message %d: %v", id, err)
	}
}

func newService(t *testing.T) (*conversationService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewConversationService(repository.NewRepositories(db), newFakeCache()), db
}

func TestListConversationsEmpty(t *testing.T) {
	svc, _ := newService(t)
	list, err := svc.ListConversations(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("len = %d, want 0", len(list))
	}
}

func TestListConversations(t *testing.T) {
	svc, db := newService(t)
	seedConnection(t, db, "C00000000001", "a@x.com", "b@x.com", connection_status_enum.ACCEPTED)
	seedConnection(t, db, "C00000000002", "c@x.com", "a@x.com", connection_status_enum.ACCEPTED)
	// 待处理的请求不构成会话
	seedConnection(t, db, "C00000000003", "a@x.com", "d@x.com", connection_status_enum.PENDING)
	seedProfile(t, db, "P00000000001", "b@x.com", "小丽", profile_status_enum.APPROVED)

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	seedMessage(t, db, 1, "C00000000001", "a@x.com", "b@x.com", "你好", base)
	seedMessage(t, db, 2, "C00000000001", "b@x.com", "a@x.com", "在吗", base.Add(time.Minute))

	list, err := svc.ListConversations(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}

	var withB, withC bool
	for _, item := range list {
		switch item.CounterpartEmail {
		case "b@x.com":
			withB = true
			if item.CounterpartName != "小丽" {
				t.Errorf("counterpart name = %q, want 小丽", item.CounterpartName)
			}
			if item.LastMessage != "在吗" {
				t.Errorf("last message = %q, want 在吗", item.LastMessage)
			}
		case "c@x.com":
			withC = true
			// 没有资料的对方用占位符降级，会话仍可见
			if item.CounterpartName != constants.PLACEHOLDER_NAME {
				t.Errorf("counterpart name = %q, want placeholder", item.CounterpartName)
			}
			if item.LastMessage != "" {
				t.Errorf("last message = %q, want empty", item.LastMessage)
			}
		default:
			t.Errorf("unexpected counterpart %q", item.CounterpartEmail)
		}
	}
	if !withB || !withC {
		t.Errorf("missing counterpart: b=%v c=%v", withB, withC)
	}
}

func TestListConversationsOrderedByActivity(t *testing.T) {
	svc, db := newService(t)
	seedConnection(t, db, "C00000000001", "a@x.com", "b@x.com", connection_status_enum.ACCEPTED)
	seedConnection(t, db, "C00000000002", "a@x.com", "c@x.com", connection_status_enum.ACCEPTED)

	old := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	recent := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	if err := db.Model(&model.ConnectionRequest{}).Where("uuid = ?", "C00000000001").
		Update("last_activity_at", old).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Model(&model.ConnectionRequest{}).Where("uuid = ?", "C00000000002").
		Update("last_activity_at", recent).Error; err != nil {
		t.Fatal(err)
	}

	list, err := svc.ListConversations(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].ConversationId != "C00000000002" {
		t.Errorf("first = %q, want most recently active C00000000002", list[0].ConversationId)
	}
}

func TestListFriends(t *testing.T) {
	svc, db := newService(t)
	seedConnection(t, db, "C00000000001", "a@x.com", "b@x.com", connection_status_enum.ACCEPTED)
	seedConnection(t, db, "C00000000002", "c@x.com", "a@x.com", connection_status_enum.ACCEPTED)
	seedConnection(t, db, "C00000000003", "d@x.com", "a@x.com", connection_status_enum.ACCEPTED)
	seedProfile(t, db, "P00000000001", "b@x.com", "小丽", profile_status_enum.APPROVED)
	// 未过审的资料不出现在好友列表
	seedProfile(t, db, "P00000000002", "c@x.com", "阿强", profile_status_enum.PENDING)
	// d 没有资料，同样跳过

	list, err := svc.ListFriends(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("list friends: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len = %d, want 1", len(list))
	}
	friend := list[0]
	if friend.CounterpartEmail != "b@x.com" || friend.Name != "小丽" {
		t.Errorf("friend = %q/%q, want b@x.com/小丽", friend.CounterpartEmail, friend.Name)
	}
	if friend.Department != "工学院" || friend.District != "达卡" {
		t.Errorf("profile fields = %q/%q", friend.Department, friend.District)
	}
	if friend.ConversationId != "C00000000001" {
		t.Errorf("conversation id = %q", friend.ConversationId)
	}
}

func TestListFriendsExcludesNonAccepted(t *testing.T) {
	svc, db := newService(t)
	seedConnection(t, db, "C00000000001", "a@x.com", "b@x.com", connection_status_enum.PENDING)
	seedConnection(t, db, "C00000000002", "a@x.com", "c@x.com", connection_status_enum.REJECTED)
	seedProfile(t, db, "P00000000001", "b@x.com", "小丽", profile_status_enum.APPROVED)
	seedProfile(t, db, "P00000000002", "c@x.com", "阿强", profile_status_enum.APPROVED)

	list, err := svc.ListFriends(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("list friends: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("len = %d, want 0", len(list))
	}
}
