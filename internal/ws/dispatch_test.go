package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"uctuuctu/internal/coordinator"
	"uctuuctu/internal/models"
	"uctuuctu/internal/store"
)

type mockCoord struct {
	mock.Mock
}

func (m *mockCoord) CreateRoom(hostID, name string) *models.Room {
	args := m.Called(hostID, name)
	return args.Get(0).(*models.Room)
}

func (m *mockCoord) JoinRoom(code, id, name string) error {
	return m.Called(code, id, name).Error(0)
}

func (m *mockCoord) Leave(code, id string) {
	m.Called(code, id)
}

func (m *mockCoord) SetReady(code, id string, ready bool) {
	m.Called(code, id, ready)
}

func (m *mockCoord) SetSettings(code, requesterID string, roundMs, intermissionMs *int) {
	m.Called(code, requesterID, roundMs, intermissionMs)
}

func (m *mockCoord) Reset(code, requesterID string) {
	m.Called(code, requesterID)
}

func (m *mockCoord) StartGame(code string) error {
	return m.Called(code).Error(0)
}

func (m *mockCoord) SubmitAnswer(code, playerID, choice string) {
	m.Called(code, playerID, choice)
}

func newTestClient(coord GameCoordinator) (*Hub, *Client) {
	hub := NewHub()
	hub.Bind(coord)
	client := &Client{
		hub:  hub,
		id:   "p1",
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
	return hub, client
}

func frame(t *testing.T, event string, data any) []byte {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	payload, err := json.Marshal(Envelope{Event: event, Data: raw})
	require.NoError(t, err)
	return payload
}

func decodeFrame(t *testing.T, c *Client) Envelope {
	t.Helper()
	select {
	case payload := <-c.send:
		var env Envelope
		require.NoError(t, json.Unmarshal(payload, &env))
		return env
	default:
		t.Fatal("no frame queued")
		return Envelope{}
	}
}

func TestDispatchCreateRegistersAndReturnsState(t *testing.T) {
	coord := &mockCoord{}
	room := &models.Room{Code: "10000", HostID: "p1", Status: models.StatusLobby}
	coord.On("CreateRoom", "p1", "Ayşe").Return(room)
	hub, client := newTestClient(coord)

	client.dispatch(frame(t, EventRoomCreate, CreatePayload{Name: "Ayşe"}))

	assert.Equal(t, "10000", client.room)
	assert.Same(t, client, hub.rooms["10000"]["p1"])
	env := decodeFrame(t, client)
	assert.Equal(t, coordinator.EventRoomState, env.Event)
	coord.AssertExpectations(t)
}

func TestDispatchJoinFailureUnregistersAndReportsError(t *testing.T) {
	coord := &mockCoord{}
	coord.On("JoinRoom", "10000", "p1", "Mehmet").Return(store.ErrRoomNotJoinable)
	hub, client := newTestClient(coord)

	client.dispatch(frame(t, EventRoomJoin, JoinPayload{Code: "10000", Name: "Mehmet"}))

	assert.Empty(t, client.room)
	assert.Empty(t, hub.rooms)
	env := decodeFrame(t, client)
	assert.Equal(t, coordinator.EventRoomError, env.Event)

	var payload coordinator.ErrorPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, store.ErrRoomNotJoinable.Error(), payload.Message)
	coord.AssertExpectations(t)
}

func TestDispatchForwardsRoomScopedEvents(t *testing.T) {
	coord := &mockCoord{}
	coord.On("JoinRoom", "10000", "p1", "Mehmet").Return(nil)
	coord.On("SetReady", "10000", "p1", true).Return()
	coord.On("SubmitAnswer", "10000", "p1", "ud").Return()
	coord.On("StartGame", "10000").Return(nil)
	coord.On("Reset", "10000", "p1").Return()
	_, client := newTestClient(coord)

	client.dispatch(frame(t, EventRoomJoin, JoinPayload{Code: "10000", Name: "Mehmet"}))
	client.dispatch(frame(t, EventRoomReady, ReadyPayload{Ready: true}))
	client.dispatch(frame(t, EventRoundAnswer, AnswerPayload{Choice: "ud"}))
	client.dispatch(frame(t, EventGameStart, struct{}{}))
	client.dispatch(frame(t, EventRoomReset, struct{}{}))

	coord.AssertExpectations(t)
}

func TestDispatchIgnoresMalformedFrames(t *testing.T) {
	coord := &mockCoord{}
	_, client := newTestClient(coord)

	client.dispatch([]byte("not json"))
	client.dispatch(frame(t, "unknown:event", struct{}{}))
	client.dispatch(frame(t, EventRoomCreate, CreatePayload{Name: "   "}))

	coord.AssertExpectations(t)
	assert.Empty(t, client.room)
}

func TestDispatchLeaveNotifiesCoordinator(t *testing.T) {
	coord := &mockCoord{}
	coord.On("JoinRoom", "10000", "p1", "Mehmet").Return(nil)
	coord.On("Leave", "10000", "p1").Return()
	hub, client := newTestClient(coord)

	client.dispatch(frame(t, EventRoomJoin, JoinPayload{Code: "10000", Name: "Mehmet"}))
	require.Equal(t, "10000", client.room)

	client.dispatch(frame(t, EventRoomLeave, struct{}{}))

	assert.Empty(t, client.room)
	assert.Empty(t, hub.rooms)
	coord.AssertExpectations(t)
}
