package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swapmart/auth-service/internal/events"
)

type publishedEvent struct {
	topic string
	key   string
	event map[string]any
}

type publisherStub struct {
	published []publishedEvent
	err       error
}

func (p *publisherStub) PublishEvent(_ context.Context, topic, key string, event interface{}) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, publishedEvent{topic: topic, key: key, event: event.(map[string]any)})
	return nil
}

func (p *publisherStub) last(t *testing.T) publishedEvent {
	t.Helper()
	require.NotEmpty(t, p.published)
	return p.published[len(p.published)-1]
}

type auditEntry struct {
	action string
	userID string
	fields map[string]any
}

type auditorStub struct {
	entries []auditEntry
}

func (a *auditorStub) Record(_ context.Context, action, userID string, fields map[string]any) {
	a.entries = append(a.entries, auditEntry{action: action, userID: userID, fields: fields})
}

func (a *auditorStub) actions() []string {
	out := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, e.action)
	}
	return out
}

func newEventsEnv(t *testing.T) (*testEnv, *publisherStub, *auditorStub) {
	t.Helper()

	env := newTestEnv(t)
	pub := &publisherStub{}
	aud := &auditorStub{}
	env.svc.Events = pub
	env.svc.Audit = aud
	return env, pub, aud
}

func TestRegister_PublishesUserRegistered(t *testing.T) {
	t.Parallel()

	env, pub, aud := newEventsEnv(t)
	ctx := context.Background()

	require.NoError(t, env.svc.Register(ctx, "A", "a@x.com", "pw"))

	ev := pub.last(t)
	assert.Equal(t, events.TopicUserEvents, ev.topic)
	assert.Equal(t, "user_registered", ev.event["type"])
	assert.Equal(t, "a@x.com", ev.event["email"])
	assert.Equal(t, ev.key, ev.event["user_id"])
	assert.Equal(t, []string{"register"}, aud.actions())
}

func TestVerifyEmail_PublishesUserVerified(t *testing.T) {
	t.Parallel()

	env, pub, aud := newEventsEnv(t)
	ctx := context.Background()

	require.NoError(t, env.svc.Register(ctx, "A", "a@x.com", "pw"))
	id, token := env.mailedSecret(t)
	require.NoError(t, env.svc.VerifyEmail(ctx, id, token))

	ev := pub.last(t)
	assert.Equal(t, events.TopicUserEvents, ev.topic)
	assert.Equal(t, "user_verified", ev.event["type"])
	assert.Equal(t, id, ev.event["user_id"])
	assert.Equal(t, []string{"register", "verify_email"}, aud.actions())
}

func TestLogin_PublishesUserSignedIn(t *testing.T) {
	t.Parallel()

	env, pub, aud := newEventsEnv(t)
	ctx := context.Background()

	require.NoError(t, env.svc.Register(ctx, "A", "a@x.com", "pw"))
	res, err := env.svc.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)

	ev := pub.last(t)
	assert.Equal(t, events.TopicAuthEvents, ev.topic)
	assert.Equal(t, "user_signed_in", ev.event["type"])
	assert.Equal(t, res.Profile.ID, ev.event["user_id"])
	assert.Equal(t, []string{"register", "sign_in"}, aud.actions())
}

func TestRefresh_ReplayPublishesAndAudits(t *testing.T) {
	t.Parallel()

	env, pub, aud := newEventsEnv(t)
	ctx := context.Background()

	first := env.registerAndLogin(t, "A", "a@x.com", "pw")
	_, err := env.svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)

	_, err = env.svc.Refresh(ctx, first.RefreshToken)
	require.ErrorIs(t, err, ErrUnauthorized)

	ev := pub.last(t)
	assert.Equal(t, events.TopicAuthEvents, ev.topic)
	assert.Equal(t, "refresh_token_replayed", ev.event["type"])
	assert.Equal(t, first.Profile.ID, ev.event["user_id"])

	last := aud.entries[len(aud.entries)-1]
	assert.Equal(t, "token_replay", last.action)
	assert.Equal(t, first.Profile.ID, last.userID)
	assert.Equal(t, map[string]any{"revoked_all": true}, last.fields)
}

func TestPublisherFailure_DoesNotFailOperations(t *testing.T) {
	t.Parallel()

	env, pub, _ := newEventsEnv(t)
	pub.err = assert.AnError
	ctx := context.Background()

	require.NoError(t, env.svc.Register(ctx, "A", "a@x.com", "pw"))

	res, err := env.svc.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)

	rotated, err := env.svc.Refresh(ctx, res.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)
	assert.Empty(t, pub.published)
}
