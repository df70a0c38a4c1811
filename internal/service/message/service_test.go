package message

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
	"bondhon_server/internal/dto/request"
	"bondhon_server/internal/model"
	"bondhon_server/pkg/constants"
	"bondhon_server/pkg/enum/connection/connection_status_enum"
	"bondhon_server/pkg/errorx"
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
	dsn := fmt.Sprintf("file:msg_test_%d?mode=memory&cache=shared", dbSeq)
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

func newService(t *testing.T) (*messageService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewMessageService(repository.NewRepositories(db), newFakeCache()), db
}

func send(t *testing.T, svc *messageService, convId, sender, body string) string {
	t.Helper()
	rsp, err := svc.SendMessage(context.Background(), request.SendMessageRequest{
		ConversationId: convId,
		SenderEmail:    sender,
		Body:           body,
	})
	if err != nil {
		t.Fatalf("send %q: %v", body, err)
	}
	return rsp.MessageId
}

func TestSendMessageAndList(t *testing.T) {
	svc, db := newService(t)
	seedConnection(t, db, "C00000000001", "a@x.com", "b@x.com", connection_status_enum.ACCEPTED)

	id1 := send(t, svc, "C00000000001", "a@x.com", "  你好  ")
	id2 := send(t, svc, "C00000000001", "b@x.com", "在吗")
	if id1 == id2 {
		t.Fatal("message ids should be unique")
	}

	list, err := svc.ListMessages(context.Background(), "C00000000001")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	// 按发送时间升序，正文去除了首尾空白
	if list[0].Body != "你好" || list[1].Body != "在吗" {
		t.Errorf("bodies = %q / %q", list[0].Body, list[1].Body)
	}
	if list[0].SenderEmail != "a@x.com" || list[0].ReceiverEmail != "b@x.com" {
		t.Errorf("first message parties %q -> %q", list[0].SenderEmail, list[0].ReceiverEmail)
	}
	if list[0].IsRead || list[1].IsRead {
		t.Error("new messages should be unread")
	}
}

func TestSendMessageBodyValidation(t *testing.T) {
	svc, db := newService(t)
	seedConnection(t, db, "C00000000001", "a@x.com", "b@x.com", connection_status_enum.ACCEPTED)

	for _, body := range []string{"", "   ", strings.Repeat("x", constants.MESSAGE_BODY_MAX+1)} {
		_, err := svc.SendMessage(context.Background(), request.SendMessageRequest{
			ConversationId: "C00000000001",
			SenderEmail:    "a@x.com",
			Body:           body,
		})
		if errorx.GetCode(err) != errorx.CodeInvalidParam {
			t.Errorf("body %q: code = %d, want %d", body[:min(len(body), 10)], errorx.GetCode(err), errorx.CodeInvalidParam)
		}
	}
}

func TestSendMessageGating(t *testing.T) {
	svc, db := newService(t)
	seedConnection(t, db, "C00000000001", "a@x.com", "b@x.com", connection_status_enum.PENDING)
	seedConnection(t, db, "C00000000002", "a@x.com", "c@x.com", connection_status_enum.REJECTED)

	// 未接受的连接上不存在会话
	for _, convId := range []string{"C00000000001", "C00000000002", "C99999999999"} {
		_, err := svc.SendMessage(context.Background(), request.SendMessageRequest{
			ConversationId: convId,
			SenderEmail:    "a@x.com",
			Body:           "你好",
		})
		if errorx.GetCode(err) != errorx.CodeNotFound {
			t.Errorf("conv %s: code = %d, want %d", convId, errorx.GetCode(err), errorx.CodeNotFound)
		}
	}
}

func TestSendMessageNonParticipant(t *testing.T) {
	svc, db := newService(t)
	seedConnection(t, db, "C00000000001", "a@x.com", "b@x.com", connection_status_enum.ACCEPTED)

	_, err := svc.SendMessage(context.Background(), request.SendMessageRequest{
		ConversationId: "C00000000001",
		SenderEmail:    "outsider@x.com",
		Body:           "你好",
	})
	if errorx.GetCode(err) != errorx.CodeForbidden {
		t.Fatalf("outsider send: code = %d, want %d", errorx.GetCode(err), errorx.CodeForbidden)
	}
}

func TestSendMessageTouchesActivity(t *testing.T) {
	svc, db := newService(t)
	seedConnection(t, db, "C00000000001", "a@x.com", "b@x.com", connection_status_enum.ACCEPTED)

	send(t, svc, "C00000000001", "a@x.com", "你好")

	var row model.ConnectionRequest
	if err := db.Where("uuid = ?", "C00000000001").First(&row).Error; err != nil {
		t.Fatal(err)
	}
	if !row.LastActivityAt.Valid {
		t.Error("last_activity_at should be set after sending")
	}
}

func TestSendMessageKeepsConnectionTime(t *testing.T) {
	svc, db := newService(t)
	seedConnection(t, db, "C00000000001", "a@x.com", "b@x.com", connection_status_enum.ACCEPTED)

	// updated_at 代表连接建立时间，发消息不能动它
	connectedAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	if err := db.Model(&model.ConnectionRequest{}).Where("uuid = ?", "C00000000001").
		UpdateColumn("updated_at", connectedAt).Error; err != nil {
		t.Fatal(err)
	}

	send(t, svc, "C00000000001", "a@x.com", "你好")

	var row model.ConnectionRequest
	if err := db.Where("uuid = ?", "C00000000001").First(&row).Error; err != nil {
		t.Fatal(err)
	}
	if !row.UpdatedAt.Equal(connectedAt) {
		t.Errorf("updated_at = %v, want untouched %v", row.UpdatedAt, connectedAt)
	}
	if !row.LastActivityAt.Valid {
		t.Error("last_activity_at should be set after sending")
	}
}

func TestListMessagesGating(t *testing.T) {
	svc, db := newService(t)
	seedConnection(t, db, "C00000000001", "a@x.com", "b@x.com", connection_status_enum.PENDING)

	_, err := svc.ListMessages(context.Background(), "C00000000001")
	if errorx.GetCode(err) != errorx.CodeNotFound {
		t.Fatalf("list pending conv: code = %d, want %d", errorx.GetCode(err), errorx.CodeNotFound)
	}
}

func TestMarkReadIdempotent(t *testing.T) {
	svc, db := newService(t)
	seedConnection(t, db, "C00000000001", "a@x.com", "b@x.com", connection_status_enum.ACCEPTED)
	send(t, svc, "C00000000001", "a@x.com", "你好")
	send(t, svc, "C00000000001", "a@x.com", "在吗")
	send(t, svc, "C00000000001", "b@x.com", "在的")

	// 只置位发给 b 的消息
	rsp, err := svc.MarkRead(context.Background(), request.MarkReadRequest{
		ConversationId: "C00000000001",
		ReaderEmail:    "b@x.com",
	})
	if err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if rsp.Count != 2 {
		t.Errorf("count = %d, want 2", rsp.Count)
	}

	// 再次置位没有可改的行
	rsp, err = svc.MarkRead(context.Background(), request.MarkReadRequest{
		ConversationId: "C00000000001",
		ReaderEmail:    "b@x.com",
	})
	if err != nil {
		t.Fatalf("mark read again: %v", err)
	}
	if rsp.Count != 0 {
		t.Errorf("second count = %d, want 0", rsp.Count)
	}

	list, err := svc.ListMessages(context.Background(), "C00000000001")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, m := range list {
		if m.ReceiverEmail == "b@x.com" {
			if !m.IsRead || m.ReadAt == "" {
				t.Errorf("message %s to b should be read", m.MessageId)
			}
		} else if m.IsRead {
			t.Errorf("message %s to a should stay unread", m.MessageId)
		}
	}
}

func TestMarkReadUnknownConversation(t *testing.T) {
	svc, _ := newService(t)
	rsp, err := svc.MarkRead(context.Background(), request.MarkReadRequest{
		ConversationId: "C99999999999",
		ReaderEmail:    "b@x.com",
	})
	if err != nil {
		t.Fatalf("mark read unknown conv: %v", err)
	}
	if rsp.Count != 0 {
		t.Errorf("count = %d, want 0", rsp.Count)
	}
}

func TestUnreadCountAcrossConversations(t *testing.T) {
	svc, db := newService(t)
	seedConnection(t, db, "C00000000001", "a@x.com", "b@x.com", connection_status_enum.ACCEPTED)
	seedConnection(t, db, "C00000000002", "c@x.com", "b@x.com", connection_status_enum.ACCEPTED)

	send(t, svc, "C00000000001", "a@x.com", "你好")
	send(t, svc, "C00000000002", "c@x.com", "在吗")
	send(t, svc, "C00000000002", "b@x.com", "在的")

	rsp, err := svc.UnreadCount(context.Background(), "b@x.com")
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if rsp.Count != 2 {
		t.Errorf("unread = %d, want 2", rsp.Count)
	}

	if _, err := svc.MarkRead(context.Background(), request.MarkReadRequest{
		ConversationId: "C00000000001",
		ReaderEmail:    "b@x.com",
	}); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	rsp, err = svc.UnreadCount(context.Background(), "b@x.com")
	if err != nil {
		t.Fatalf("unread count after mark: %v", err)
	}
	if rsp.Count != 1 {
		t.Errorf("unread = %d, want 1", rsp.Count)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
