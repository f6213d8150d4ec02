package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"comma string", "Alice, Bob ,Carol", []string{"Alice", "Bob", "Carol"}},
		{"empty tokens dropped", " ,Alice,, ,Bob, ", []string{"Alice", "Bob"}},
		{"nil", nil, []string{}},
		{"empty string", "", []string{}},
		{"string list", []any{"Alice", " Bob "}, []string{"Alice", "Bob"}},
		{"list element kept whole", []any{"Research, Development", "Carol"}, []string{"Research, Development", "Carol"}},
		{"typed list", []string{"x", "", "y"}, []string{"x", "y"}},
		{"unsupported type", 42, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitList(tt.in))
		})
	}
}

func TestCleanName(t *testing.T) {
	assert.Equal(t, "Jane Doe [SNet]", CleanName("  Jane   Doe\t[SNet] "))
	assert.Equal(t, "", CleanName("   "))
}

func TestNameKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jane Doe", "jane doe"},
		{"  jane   DOE ", "jane doe"},
		{"Jane Doe [SingularityNET]", "jane doe"},
		{"Jane Doe (ambassador)", "jane doe"},
		{"[bot]", "[bot]"},
		{"Jane [x] Doe", "jane [x] doe"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NameKey(tt.in))
		})
	}
}

func TestTopicKey(t *testing.T) {
	assert.Equal(t, "governance", TopicKey(" Governance "))
	assert.Equal(t, "ai ethics", TopicKey("AI  Ethics"))
}

func TestDedupe(t *testing.T) {
	got := Dedupe([]string{"Governance", "budget", "governance", "", "Budget", "Tokenomics"}, TopicKey)
	assert.Equal(t, []string{"Governance", "budget", "Tokenomics"}, got)
}
