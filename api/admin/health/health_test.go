// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHead struct {
	seq, time uint64
	err       error
}

func (f *fakeHead) Head() (uint64, uint64, error) { return f.seq, f.time, f.err }

type fakeIndex uint64

func (f fakeIndex) NewestSeq() (uint64, error) { return uint64(f), nil }

func getHealth(t *testing.T, h *Health) (int, *Status) {
	router := mux.NewRouter()
	h.Mount(router, "/admin/health")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/health", nil))

	var st Status
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &st))
	return rr.Code, &st
}

func TestHealthy(t *testing.T) {
	code, st := getHealth(t, New(&fakeHead{seq: 7, time: 100}, fakeIndex(5)))
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, st.Healthy)
	assert.Equal(t, uint64(7), st.HeadSeq)
	assert.Equal(t, uint64(100), st.HeadTime)
	assert.Equal(t, uint64(5), st.IndexedSeq)

	code, st = getHealth(t, New(&fakeHead{seq: 1}, nil))
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, st.Healthy)
}

func TestUnhealthy(t *testing.T) {
	code, st := getHealth(t, New(&fakeHead{err: errors.New("leveldb: closed")}, nil))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, st.Healthy)
	assert.Equal(t, "leveldb: closed", st.ErrorString)
}
