package codec_test

import (
	"testing"

	"github.com/hupe1980/simplehnsw/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func TestByName(t *testing.T) {
	tests := []struct {
		name     string
		wantName string
		wantOK   bool
	}{
		{"json", "json", true},
		{"go-json", "go-json", true},
		{"unknown", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := codec.ByName(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantName, c.Name())
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	for _, c := range []codec.Codec{codec.JSON{}, codec.GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			in := sample{Name: "x", Value: 1.5}

			data, err := c.Marshal(in)
			require.NoError(t, err)

			var out sample
			require.NoError(t, c.Unmarshal(data, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestMustMarshalPanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		codec.MustMarshal(codec.JSON{}, make(chan int))
	})
}
