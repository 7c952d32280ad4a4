package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sample = `
server:
  address: ":9090"
market:
  address: "0x5fbdb2315678afecb367f032d93f642f64180aa3"
  idLimit: 16
auth:
  jwtSecret: secret
  signatureMsg: "sign %s"
admin:
  addresses:
    - "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"
sandbox:
  enabled: true
  registries:
    - address: "0xe7f1725e7734ce288f8367e1bb143e90bb3f0512"
      kind: fungible
      symbol: TST
`

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	req := require.New(t)
	fs := Flags("test")
	req.NoError(fs.Parse([]string{"--config", writeConfig(t, sample)}))

	cfg, err := Load(fs)
	req.NoError(err)
	req.Equal(":9090", cfg.Server.Address)
	req.Equal(StoreMemory, cfg.Store.Driver)
	req.Equal(uint64(16), cfg.Market.IdLimit)
	req.Equal(64, cfg.Market.InboxSize)
	req.Len(cfg.Sandbox.Registries, 1)
	req.Equal("TST", cfg.Sandbox.Registries[0].Symbol)
}

func TestLoadFlagOverride(t *testing.T) {
	req := require.New(t)
	fs := Flags("test")
	req.NoError(fs.Parse([]string{"--config", writeConfig(t, sample), "--server.address", ":7070"}))

	cfg, err := Load(fs)
	req.NoError(err)
	req.Equal(":7070", cfg.Server.Address)
}

func TestLoadRejectsBadMarketAddress(t *testing.T) {
	req := require.New(t)
	body := `
market:
  address: "not-an-address"
auth:
  jwtSecret: secret
  signatureMsg: "sign %s"
`
	fs := Flags("test")
	req.NoError(fs.Parse([]string{"--config", writeConfig(t, body)}))
	_, err := Load(fs)
	req.Error(err)
}

func TestLoadMongoRequiresURI(t *testing.T) {
	req := require.New(t)
	body := sample + `
store:
  driver: mongo
  mongo:
    uri: ""
`
	fs := Flags("test")
	req.NoError(fs.Parse([]string{"--config", writeConfig(t, body)}))
	_, err := Load(fs)
	req.Error(err)
}

func TestLoadSqliteRequiresPath(t *testing.T) {
	req := require.New(t)
	body := sample + `
store:
  driver: sqlite
`
	fs := Flags("test")
	req.NoError(fs.Parse([]string{"--config", writeConfig(t, body)}))
	_, err := Load(fs)
	req.Error(err)

	fs = Flags("test")
	req.NoError(fs.Parse([]string{"--config", writeConfig(t, body+"  sqlite:\n    path: data/test.db\n")}))
	cfg, err := Load(fs)
	req.NoError(err)
	req.Equal(StoreSqlite, cfg.Store.Driver)
	req.Equal("data/test.db", cfg.Store.Sqlite.Path)
}
