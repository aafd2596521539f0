package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
)

type recordingChannel struct {
	key  string
	msgs []amqp.Publishing
	err  error
}

func (c *recordingChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if c.err != nil {
		return c.err
	}
	c.key = key
	c.msgs = append(c.msgs, msg)
	return nil
}

func (c *recordingChannel) Close() error { return nil }

func TestPublishReaction(t *testing.T) {
	ch := &recordingChannel{}
	p := newPublisherOnChannel(ch, "like.queue")
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	err := p.PublishReaction(context.Background(), entity.ReactionEvent{
		Kind: entity.LikeableComment, EntityID: 5, UserID: 9, Liked: true, LikeCount: 3, At: at,
	})

	require.NoError(t, err)
	require.Len(t, ch.msgs, 1)
	assert.Equal(t, "like.queue", ch.key)
	msg := ch.msgs[0]
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "reaction.comment", msg.Type)

	var decoded entity.ReactionEvent
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, uint64(5), decoded.EntityID)
	assert.True(t, decoded.Liked)
	assert.Equal(t, int64(3), decoded.LikeCount)
}

func TestPublishReaction_ChannelError(t *testing.T) {
	p := newPublisherOnChannel(&recordingChannel{err: errors.New("channel closed")}, "like.queue")

	err := p.PublishReaction(context.Background(), entity.ReactionEvent{Kind: entity.LikeableArticle, EntityID: 1})

	assert.Error(t, err)
}
