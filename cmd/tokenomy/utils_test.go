// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/tokenomy/genesis"
	"github.com/vechain/tokenomy/logdb"
	"github.com/vechain/tokenomy/lvldb"
	tokenomyrt "github.com/vechain/tokenomy/runtime"
	"github.com/vechain/tokenomy/state"
)

func newContext(t *testing.T, args ...string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range []cli.Flag{genesisFlag, launchTimeFlag, dataDirFlag, persistFlag, cacheFlag} {
		f.Apply(set)
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(nil, set, nil)
}

func TestSelectGenesis(t *testing.T) {
	gene, custom, err := selectGenesis(newContext(t, "-launch-time", "1700000000"))
	require.NoError(t, err)
	assert.Equal(t, "devnet", gene.Name())
	assert.Equal(t, uint64(1_700_000_000), custom.Vesting.StartTime)

	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: filenet
administrator: 0x00000000000000000000000000000061646d696e
accounts: []
`), 0o600))
	gene, _, err = selectGenesis(newContext(t, "-genesis", path))
	require.NoError(t, err)
	assert.Equal(t, "filenet", gene.Name())

	_, _, err = selectGenesis(newContext(t, "-genesis", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestOpenDatabases(t *testing.T) {
	gene := genesis.NewDevnet(1_700_000_000)

	mainDB, logDB, dir, err := openDatabases(newContext(t), gene)
	require.NoError(t, err)
	assert.Equal(t, "Memory", dir)
	mainDB.Close()
	logDB.Close()

	dataDir := t.TempDir()
	mainDB, logDB, dir, err = openDatabases(newContext(t, "-persist", "-data-dir", dataDir), gene)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "instance-devnet"), dir)
	assert.DirExists(t, filepath.Join(dir, "main.db"))
	mainDB.Close()
	logDB.Close()
}

func TestRequestBodyLimit(t *testing.T) {
	handler := requestBodyLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}")))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(make([]byte, 300*1024))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestWriteStartupMessage(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	logDB, err := logdb.NewMem()
	require.NoError(t, err)
	defer logDB.Close()

	gene := genesis.NewDevnet(1_700_000_000)
	rt := tokenomyrt.New(state.NewStater(db), logDB).SetClock(func() uint64 { return 1_700_000_000 })
	_, err = gene.Apply(context.Background(), rt)
	require.NoError(t, err)

	var buf bytes.Buffer
	writeStartupMessage(&buf, gene, rt, "Memory", "http://localhost:8669/", "", "")
	out := buf.String()
	assert.Contains(t, out, "devnet")
	assert.Contains(t, out, gene.Administrator().String())
	assert.Contains(t, out, "#1 @2023-11-14T22:13:20Z")
	assert.Contains(t, out, "Metrics       [ n/a ]")
}

func TestNormalizeCacheSize(t *testing.T) {
	assert.Equal(t, 16, normalizeCacheSize(1))
	assert.LessOrEqual(t, normalizeCacheSize(1<<30), 1<<30)
}
