// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestBytes32MarshalUnmarshal(t *testing.T) {
	originalHex := `"0x00000000000000000000000000000000000000000000000000006d6173746572"`

	var b Bytes32
	err := json.Unmarshal([]byte(originalHex), &b)
	assert.NoError(t, err)
	assert.Equal(t, BytesToBytes32([]byte("master")), b)

	out, err := json.Marshal(b)
	assert.NoError(t, err)
	assert.Equal(t, originalHex, string(out))

	out, err = json.Marshal(&b)
	assert.NoError(t, err)
	assert.Equal(t, originalHex, string(out))
}

func TestParseBytes32(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"with prefix", "0x" + "11" + "00000000000000000000000000000000000000000000000000000000000000", false},
		{"without prefix", "11" + "00000000000000000000000000000000000000000000000000000000000000", false},
		{"bad prefix", "1x" + "11" + "00000000000000000000000000000000000000000000000000000000000000", true},
		{"short", "0x1234", true},
		{"not hex", "0x" + "zz" + "00000000000000000000000000000000000000000000000000000000000000", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes32(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAddressText(t *testing.T) {
	addr := BytesToAddress([]byte("alice"))
	assert.False(t, addr.IsZero())
	assert.True(t, NullAddress.IsZero())

	parsed, err := ParseAddress(addr.String())
	assert.NoError(t, err)
	assert.Equal(t, addr, parsed)

	_, err = ParseAddress("0x1234")
	assert.EqualError(t, err, "invalid length")

	var doc struct {
		Owner Address `yaml:"owner" json:"owner"`
	}
	err = yaml.Unmarshal([]byte("owner: "+addr.String()), &doc)
	assert.NoError(t, err)
	assert.Equal(t, addr, doc.Owner)

	out, err := json.Marshal(doc)
	assert.NoError(t, err)
	assert.Equal(t, `{"owner":"`+addr.String()+`"}`, string(out))
}

func TestBlake2b(t *testing.T) {
	a := Blake2b([]byte("foo"), []byte("bar"))
	b := Blake2b([]byte("foobar"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, Blake2b([]byte("foo")), b)
}
