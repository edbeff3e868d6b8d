package session

import (
	"testing"

	"churro-kiosk/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_SetAndCurrent(t *testing.T) {
	m := NewManager(zerolog.Nop())

	assert.Nil(t, m.Current())

	m.Set(model.Session{UserID: "u-1", Token: "tok-1"})

	sess := m.Current()
	require.NotNil(t, sess)
	assert.Equal(t, "u-1", sess.UserID)
	assert.Equal(t, "tok-1", sess.Token)
}

func TestManager_CurrentReturnsCopy(t *testing.T) {
	m := NewManager(zerolog.Nop())
	m.Set(model.Session{UserID: "u-1", Token: "tok-1"})

	sess := m.Current()
	sess.Token = "mutated"

	assert.Equal(t, "tok-1", m.Current().Token)
}

func TestManager_Clear(t *testing.T) {
	m := NewManager(zerolog.Nop())
	m.Set(model.Session{UserID: "u-1", Token: "tok-1"})

	m.Clear()

	assert.Nil(t, m.Current())
}

func TestManager_SetReplacesPrevious(t *testing.T) {
	m := NewManager(zerolog.Nop())
	m.Set(model.Session{UserID: "u-1", Token: "tok-1"})
	m.Set(model.Session{UserID: "u-2", Token: "tok-2"})

	sess := m.Current()
	require.NotNil(t, sess)
	assert.Equal(t, "u-2", sess.UserID)
}
