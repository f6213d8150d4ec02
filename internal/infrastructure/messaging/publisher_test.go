package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-archive/internal/domain/entities"
)

type fakeConn struct {
	subject  string
	data     []byte
	flushErr error
	closed   bool
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	f.subject = subject
	f.data = data
	return nil
}

func (f *fakeConn) FlushWithContext(context.Context) error { return f.flushErr }

func (f *fakeConn) Close() { f.closed = true }

func TestNATSPublisher_PublishReloaded(t *testing.T) {
	fc := &fakeConn{}
	p := &NATSPublisher{nc: fc, subject: "archive.reloaded"}

	event := entities.ReloadedEvent{
		Generation:      uuid.New(),
		Source:          "file:data/meetings.json",
		Trigger:         "manual",
		MeetingCount:    12,
		DiagnosticCount: 1,
		LoadedAt:        time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.PublishReloaded(context.Background(), event))
	assert.Equal(t, "archive.reloaded", fc.subject)

	var got entities.ReloadedEvent
	require.NoError(t, json.Unmarshal(fc.data, &got))
	assert.Equal(t, event, got)

	p.Close()
	assert.True(t, fc.closed)
}

func TestNATSPublisher_FlushFailure(t *testing.T) {
	p := &NATSPublisher{nc: &fakeConn{flushErr: errors.New("nats: timeout")}, subject: "archive.reloaded"}
	err := p.PublishReloaded(context.Background(), entities.ReloadedEvent{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "archive.reloaded")
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.PublishReloaded(context.Background(), entities.ReloadedEvent{}))
}
