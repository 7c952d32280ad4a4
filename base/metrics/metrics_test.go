package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTag(t *testing.T) {
	req := require.New(t)
	req.Nil(parseTag(nil))
	req.Equal([]string{"op:buy", "result:ok"}, parseTag([]string{"op", "buy", "result", "ok"}))
	req.Panics(func() { parseTag([]string{"dangling"}) })
}

func TestBumpWithoutAgent(t *testing.T) {
	m := New("test")
	require.NotPanics(t, func() {
		m.BumpSum("count", 1, "op", "buy")
		m.BumpHistogram("size", 3)
		m.BumpTime("time").End()
	})
}

func TestOddTagsDoNotEscape(t *testing.T) {
	m := New("test")
	require.NotPanics(t, func() {
		m.BumpSum("count", 1, "dangling")
	})
}

func TestTagsResolvedAfterSetup(t *testing.T) {
	m := New("test").(*Metrics)
	prev := currentConf()
	Setup(Config{AppName: "marketplace", EnvName: "dev", PodName: "api-0"})
	defer Setup(prev)

	require.Equal(t, []string{"host:", "pod:api-0", "env:dev", "app:marketplace"}, m.dd().ddTags)
}

func TestClientsFallBackToLog(t *testing.T) {
	prev := currentConf()
	Setup(Config{})
	defer Setup(prev)

	initDDClient()
	for _, cli := range ddClients {
		require.IsType(t, &LogClient{}, cli)
		require.NoError(t, cli.Count("count", 1, nil, 1))
		require.NoError(t, cli.TimeInMilliseconds("time", 1.5, []string{"op:buy"}, 1))
	}
}
