package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-d", "postgres://db", "-a", ":50051"},
			allowed: []string{"-d"},
			want:    []string{"-d", "postgres://db"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=asklee.json", "-a", ":50051"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=asklee.json"},
		},
		{
			name:    "order preserved",
			args:    []string{"-l", "debug", "-x", "1", "-a", ":9000"},
			allowed: []string{"-a", "-l"},
			want:    []string{"-l", "debug", "-a", ":9000"},
		},
		{
			name:    "unknown flags ignored",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "dangling flag kept",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next flag is not a value",
			args:    []string{"-c", "-a", ":1"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "empty",
			args:    []string{},
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"asklee", "-a", ":1", "-c", "/etc/asklee.json"}
	assert.Equal(t, "/etc/asklee.json", ConfigFileFlag())

	os.Args = []string{"asklee", "-config=other.json"}
	assert.Equal(t, "other.json", ConfigFileFlag())

	os.Args = []string{"asklee", "-a", ":1"}
	assert.Equal(t, "", ConfigFileFlag())
}
