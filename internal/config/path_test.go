package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestReadPathCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []r2.Vec
		wantErr error
	}{
		{
			name:  "simple",
			input: "x,y\n1,2\n3.5,4\n",
			want:  []r2.Vec{{X: 1, Y: 2}, {X: 3.5, Y: 4}},
		},
		{
			name:  "reordered columns with extras",
			input: "label, Y, X\na, 2, 1\nb, 4, 3\n",
			want:  []r2.Vec{{X: 1, Y: 2}, {X: 3, Y: 4}},
		},
		{
			name:  "header only",
			input: "x,y\n",
			want:  nil,
		},
		{
			name:    "missing y column",
			input:   "x,z\n1,2\n",
			wantErr: ErrMissingColumns,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: ErrMissingColumns,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadPathCSV(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadPathCSVBadNumber(t *testing.T) {
	_, err := ReadPathCSV(strings.NewReader("x,y\n1,2\n3,abc\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestLoadPathCSV(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "path.csv")
	require.NoError(t, os.WriteFile(p, []byte("x,y\n2,2\n18,18\n"), 0644))

	got, err := LoadPathCSV(p)
	require.NoError(t, err)
	assert.Equal(t, []r2.Vec{{X: 2, Y: 2}, {X: 18, Y: 18}}, got)

	_, err = LoadPathCSV(filepath.Join(dir, "path.txt"))
	assert.Error(t, err, "non-.csv extension should be rejected")

	_, err = LoadPathCSV(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}
