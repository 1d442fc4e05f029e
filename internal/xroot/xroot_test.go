package xroot

import (
	"testing"

	"github.com/grovetools/xstatus/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	names  []string
	closes int
}

func (f *fakeConn) storeName(line string) { f.names = append(f.names, line) }
func (f *fakeConn) close()                { f.closes++ }

func TestPublishAndClose(t *testing.T) {
	conn := &fakeConn{}
	d := &Display{conn: conn}

	require.NoError(t, d.Publish("[V: 37%]"))
	require.NoError(t, d.Publish("[V: MUTED]"))
	assert.Equal(t, []string{"[V: 37%]", "[V: MUTED]"}, conn.names)

	require.NoError(t, d.Close())
	require.NoError(t, d.Close())
	assert.Equal(t, 1, conn.closes)

	err := d.Publish("late")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInternal, errors.GetCode(err))
}

func TestOpenUnavailableDisplay(t *testing.T) {
	_, err := Open("invalid-host-xstatus.invalid:0")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDisplayUnavailable, errors.GetCode(err))
}
