package util

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAvailablePort(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()
	busy := ln.Addr().(*net.TCPAddr).Port

	got := FindAvailablePort(busy)
	assert.NotEqual(t, busy, got)
	if got != 0 {
		assert.Greater(t, got, busy)
	}
}

func TestLocalURL(t *testing.T) {
	assert.Equal(t, "http://localhost:20262", LocalURL(20262))
}

func TestBrowserCommands(t *testing.T) {
	const url = "http://localhost:20262/?canal=Varejo&ano=2024"

	win := browserCommands("windows", url)
	require.Len(t, win, 2)
	assert.Equal(t, []string{"rundll32", "url.dll,FileProtocolHandler", url}, win[0])
	assert.Equal(t, []string{"open", url}, browserCommands("darwin", url)[0])

	linux := browserCommands("linux", url)
	assert.Equal(t, "xdg-open", linux[0][0])
	assert.Len(t, linux, 5)
}

func TestStartFirst(t *testing.T) {
	cmds := [][]string{{"a", "u"}, {"b", "u"}, {"c", "u"}}

	var tried []string
	err := startFirst(cmds, func(name string, _ ...string) error {
		tried = append(tried, name)
		if name == "b" {
			return nil
		}
		return errors.New("not found")
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tried)

	err = startFirst(cmds, func(string, ...string) error { return errors.New("not found") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a: not found")

	assert.Error(t, startFirst(nil, nil))
}
