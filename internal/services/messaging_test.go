package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Karann2002/SnapLink-backend/internal/database"
	"github.com/Karann2002/SnapLink-backend/internal/models"
	apperrors "github.com/Karann2002/SnapLink-backend/pkg/errors"
	"github.com/Karann2002/SnapLink-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB resets an in-memory SQLite DB for each test.
func SetupTestDB(t *testing.T) {
	t.Helper()
	logger.Init("test")

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	// A single connection serializes concurrent writers the way a real
	// Postgres pool serializes conflicting upserts.
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	db.Migrator().DropTable(&models.Message{}, &models.Conversation{}, &models.User{})
	if err := db.AutoMigrate(&models.User{}, &models.Message{}, &models.Conversation{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	database.DB = db
}

func createUser(t *testing.T, username string) models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com", FullName: username}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func TestSendMessageCreatesConversation(t *testing.T) {
	SetupTestDB(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")

	msg, conv, err := SendMessage(context.Background(), SendInput{
		Sender:   alice.ID,
		Receiver: bob.ID,
		Text:     "hi",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, alice.ID, msg.SenderID)
	assert.Equal(t, bob.ID, msg.ReceiverID)
	assert.Equal(t, "hi", msg.Text)

	assert.ElementsMatch(t, []string{alice.ID, bob.ID}, conv.Participants)
	assert.Equal(t, 1, conv.UnreadFor(bob.ID))
	assert.Equal(t, 0, conv.UnreadFor(alice.ID))
	assert.NotNil(t, conv.LastMessage)
	assert.Equal(t, msg.ID, conv.LastMessage.ID)
}

func TestSendMessageReusesConversationAcrossDirections(t *testing.T) {
	SetupTestDB(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")

	_, first, err := SendMessage(context.Background(), SendInput{Sender: alice.ID, Receiver: bob.ID, Text: "hi"})
	assert.NoError(t, err)

	reply, second, err := SendMessage(context.Background(), SendInput{Sender: bob.ID, Receiver: alice.ID, Text: "hello"})
	assert.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "both directions must target the same conversation")
	assert.Equal(t, reply.ID, second.LastMessage.ID)
	assert.Equal(t, 1, second.UnreadFor(alice.ID))
	assert.Equal(t, 1, second.UnreadFor(bob.ID))

	var count int64
	database.DB.Model(&models.Conversation{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSendMessageValidation(t *testing.T) {
	SetupTestDB(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")

	cases := []SendInput{
		{Sender: "", Receiver: bob.ID, Text: "hi"},
		{Sender: alice.ID, Receiver: "", Text: "hi"},
		{Sender: alice.ID, Receiver: bob.ID, Text: ""},
	}
	for _, in := range cases {
		_, _, err := SendMessage(context.Background(), in)
		assert.True(t, apperrors.IsValidation(err), "expected validation error for %+v", in)
	}

	var messages, conversations int64
	database.DB.Model(&models.Message{}).Count(&messages)
	database.DB.Model(&models.Conversation{}).Count(&conversations)
	assert.Zero(t, messages, "rejected sends must not persist messages")
	assert.Zero(t, conversations, "rejected sends must not create conversations")
}

func TestFindConversationSymmetric(t *testing.T) {
	SetupTestDB(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")

	_, _, err := SendMessage(context.Background(), SendInput{Sender: alice.ID, Receiver: bob.ID, Text: "hi"})
	assert.NoError(t, err)

	ab, err := FindConversation(context.Background(), alice.ID, bob.ID)
	assert.NoError(t, err)
	ba, err := FindConversation(context.Background(), bob.ID, alice.ID)
	assert.NoError(t, err)

	assert.Equal(t, ab.ID, ba.ID)
}

func TestConcurrentSendsCountEveryUnread(t *testing.T) {
	SetupTestDB(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")

	const n = 10
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, err := SendMessage(context.Background(), SendInput{
				Sender:   alice.ID,
				Receiver: bob.ID,
				Text:     fmt.Sprintf("msg-%d", i),
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	conv, err := FindConversation(context.Background(), alice.ID, bob.ID)
	assert.NoError(t, err)
	assert.Equal(t, n, conv.UnreadFor(bob.ID), "no increment may be lost under concurrency")

	var count int64
	database.DB.Model(&models.Conversation{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestHistoryOrderedAndExact(t *testing.T) {
	SetupTestDB(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")
	eve := createUser(t, "eve")

	base := time.Now().Add(-time.Hour)
	seed := []models.Message{
		{SenderID: alice.ID, ReceiverID: bob.ID, Text: "first", CreatedAt: base},
		{SenderID: bob.ID, ReceiverID: alice.ID, Text: "second", CreatedAt: base.Add(time.Minute)},
		{SenderID: alice.ID, ReceiverID: bob.ID, Text: "third", CreatedAt: base.Add(2 * time.Minute)},
		// noise from an unrelated pair
		{SenderID: eve.ID, ReceiverID: bob.ID, Text: "other", CreatedAt: base.Add(time.Second)},
	}
	for i := range seed {
		assert.NoError(t, database.DB.Create(&seed[i]).Error)
	}

	history, err := History(context.Background(), bob.ID, alice.ID)
	assert.NoError(t, err)
	assert.Len(t, history, 3)

	texts := make([]string, 0, len(history))
	for i, m := range history {
		texts = append(texts, m.Text)
		if i > 0 {
			assert.False(t, history[i].CreatedAt.Before(history[i-1].CreatedAt), "history must be in non-decreasing time order")
		}
	}
	assert.Equal(t, []string{"first", "second", "third"}, texts)
}

func TestHistoryValidation(t *testing.T) {
	SetupTestDB(t)

	_, err := History(context.Background(), "", "someone")
	assert.True(t, apperrors.IsValidation(err))
}

func TestListConversationsRoundTrip(t *testing.T) {
	SetupTestDB(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")

	_, _, err := SendMessage(context.Background(), SendInput{Sender: alice.ID, Receiver: bob.ID, Text: "ping"})
	assert.NoError(t, err)

	summaries, err := ListConversations(context.Background(), bob.ID)
	assert.NoError(t, err)
	assert.Len(t, summaries, 1)

	entry := summaries[0]
	assert.Equal(t, alice.ID, entry.Participant.ID)
	assert.Equal(t, "alice", entry.Participant.Username)
	assert.NotNil(t, entry.LastMessage)
	assert.Equal(t, "ping", entry.LastMessage.Text)
	assert.GreaterOrEqual(t, entry.UnreadCount, 1)
}

func TestListConversationsMostRecentFirst(t *testing.T) {
	SetupTestDB(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")
	carol := createUser(t, "carol")

	_, _, err := SendMessage(context.Background(), SendInput{Sender: alice.ID, Receiver: bob.ID, Text: "older"})
	assert.NoError(t, err)

	// Nudge the second conversation's activity clearly later.
	time.Sleep(5 * time.Millisecond)

	_, _, err = SendMessage(context.Background(), SendInput{Sender: carol.ID, Receiver: bob.ID, Text: "newer"})
	assert.NoError(t, err)

	summaries, err := ListConversations(context.Background(), bob.ID)
	assert.NoError(t, err)
	assert.Len(t, summaries, 2)
	assert.Equal(t, carol.ID, summaries[0].Participant.ID)
	assert.Equal(t, alice.ID, summaries[1].Participant.ID)
}

func TestSendMessagePushesToBothSides(t *testing.T) {
	SetupTestDB(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")

	type pushed struct {
		user  string
		event string
	}
	var calls []pushed
	Push = func(userID, event string, payload interface{}) {
		calls = append(calls, pushed{userID, event})
	}
	defer func() { Push = nil }()

	_, _, err := SendMessage(context.Background(), SendInput{Sender: alice.ID, Receiver: bob.ID, Text: "hi"})
	assert.NoError(t, err)

	assert.Equal(t, []pushed{
		{bob.ID, "receiveMessage"},
		{alice.ID, "receiveMessage"},
	}, calls)
}

func TestSendMessageNoPushOnValidationFailure(t *testing.T) {
	SetupTestDB(t)

	var calls int
	Push = func(userID, event string, payload interface{}) { calls++ }
	defer func() { Push = nil }()

	_, _, err := SendMessage(context.Background(), SendInput{Sender: "a", Receiver: "b", Text: ""})
	assert.Error(t, err)
	assert.Zero(t, calls, "nothing may be pushed when persistence never happened")
}
