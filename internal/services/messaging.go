package services

import (
	"context"
	"time"

	"github.com/Karann2002/SnapLink-backend/internal/database"
	"github.com/Karann2002/SnapLink-backend/internal/models"
	apperrors "github.com/Karann2002/SnapLink-backend/pkg/errors"
	"github.com/Karann2002/SnapLink-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Push delivers a realtime event to every active connection of one
// user. Wired to the socket gateway at boot; nil disables delivery.
// Delivery is best-effort and never influences persistence results.
var Push func(userID, event string, payload interface{})

const eventReceiveMessage = "receiveMessage"

type SendInput struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Text     string `json:"text"`

	SenderProfilePic   string `json:"senderProfilePic"`
	ReceiverProfilePic string `json:"receiverProfilePic"`
}

// SendMessage persists a message, then folds it into the pair's
// conversation in a single atomic upsert, then notifies both sides.
//
// The upsert increments the receiver's unread counter inside the
// statement itself, so concurrent sends on the same pair never lose an
// increment. If the conversation write fails after the message is
// durable, the gap is logged and surfaced as a store error rather than
// hidden.
func SendMessage(ctx context.Context, in SendInput) (*models.Message, *models.Conversation, error) {
	if in.Sender == "" || in.Receiver == "" || in.Text == "" {
		return nil, nil, apperrors.Validation("Missing required fields")
	}

	msg := models.Message{
		SenderID:           in.Sender,
		ReceiverID:         in.Receiver,
		Text:               in.Text,
		SenderProfilePic:   in.SenderProfilePic,
		ReceiverProfilePic: in.ReceiverProfilePic,
		CreatedAt:          time.Now(),
	}
	if err := database.DB.WithContext(ctx).Create(&msg).Error; err != nil {
		logger.Error().Err(err).Msg("Failed to persist message")
		return nil, nil, apperrors.Store("Failed to send message")
	}

	low, high := models.SortPair(in.Sender, in.Receiver)
	unreadLow, unreadHigh := 0, 0
	if in.Receiver == low {
		unreadLow = 1
	} else {
		unreadHigh = 1
	}

	now := time.Now()
	conv := models.Conversation{
		UserLowID:     low,
		UserHighID:    high,
		LastMessageID: &msg.ID,
		UnreadLow:     unreadLow,
		UnreadHigh:    unreadHigh,
		UpdatedAt:     now,
	}
	err := database.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_low_id"}, {Name: "user_high_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"last_message_id": msg.ID,
			"unread_low":      gorm.Expr("conversations.unread_low + ?", unreadLow),
			"unread_high":     gorm.Expr("conversations.unread_high + ?", unreadHigh),
			"updated_at":      now,
		}),
	}).Create(&conv).Error
	if err != nil {
		// The message row is already durable here. Keep it and flag the
		// stale aggregate for reconciliation instead of pretending the
		// send never happened.
		logger.Error().Err(err).
			Str("message_id", msg.ID).
			Str("sender", in.Sender).
			Str("receiver", in.Receiver).
			Msg("Conversation update failed after message persisted, aggregate needs reconciliation")
		return nil, nil, apperrors.Store("Failed to update conversation")
	}

	// Re-read the row: on conflict the insert struct does not carry the
	// surviving conversation's id or totals.
	saved, err := FindConversation(ctx, in.Sender, in.Receiver)
	if err != nil {
		logger.Error().Err(err).Str("message_id", msg.ID).Msg("Failed to load conversation after upsert")
		return nil, nil, apperrors.Store("Failed to load conversation")
	}

	// Persisted, now notify. Receiver first, then an echo to the sender
	// for multi-device sync.
	if Push != nil {
		Push(in.Receiver, eventReceiveMessage, msg)
		Push(in.Sender, eventReceiveMessage, msg)
	}

	return &msg, saved, nil
}

// FindConversation looks up the aggregate for an unordered pair.
// FindConversation(a, b) and FindConversation(b, a) hit the same row.
func FindConversation(ctx context.Context, a, b string) (*models.Conversation, error) {
	low, high := models.SortPair(a, b)

	var conv models.Conversation
	err := database.DB.WithContext(ctx).
		Preload("LastMessage").
		Preload("UserLow").
		Preload("UserHigh").
		Where("user_low_id = ? AND user_high_id = ?", low, high).
		First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// History returns every message between two users in either direction,
// oldest first. No pagination: the full thread is returned.
func History(ctx context.Context, a, b string) ([]models.Message, error) {
	if a == "" || b == "" {
		return nil, apperrors.Validation("Sender and receiver are required")
	}

	messages := make([]models.Message, 0)
	err := database.DB.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch message history")
		return nil, apperrors.Store("Failed to fetch messages")
	}
	return messages, nil
}

// ConversationSummary is one inbox row: the other participant's public
// profile, the latest message, and the caller's unread count.
type ConversationSummary struct {
	// legacy field name the web client still expects
	ID          string          `json:"_id"`
	Participant models.User     `json:"participant"`
	LastMessage *models.Message `json:"lastMessage"`
	UnreadCount int             `json:"unreadCount"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ListConversations returns the caller's inbox, most recently active
// conversation first.
func ListConversations(ctx context.Context, user string) ([]ConversationSummary, error) {
	var conversations []models.Conversation
	err := database.DB.WithContext(ctx).
		Preload("LastMessage").
		Preload("UserLow").
		Preload("UserHigh").
		Where("user_low_id = ? OR user_high_id = ?", user, user).
		Order("updated_at desc").
		Find(&conversations).Error
	if err != nil {
		logger.Error().Err(err).Str("user_id", user).Msg("Failed to fetch conversations")
		return nil, apperrors.Store("Failed to fetch conversations")
	}

	summaries := make([]ConversationSummary, 0, len(conversations))
	for i := range conversations {
		conv := &conversations[i]
		summaries = append(summaries, ConversationSummary{
			ID:          conv.ID,
			Participant: *conv.Other(user),
			LastMessage: conv.LastMessage,
			UnreadCount: conv.UnreadFor(user),
			UpdatedAt:   conv.UpdatedAt,
		})
	}
	return summaries, nil
}
