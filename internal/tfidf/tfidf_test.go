package tfidf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single characters dropped", "C++ and Node.js", []string{"and", "node", "js"}},
		{"lower-cased", "Kubernetes AWS", []string{"kubernetes", "aws"}},
		{"underscore and digits are word characters", "snake_case v2 3", []string{"snake_case", "v2"}},
		{"unicode letters", "café señor", []string{"café", "señor"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}

func TestTermsRemoveStopWordsBeforeBigrams(t *testing.T) {
	v := NewVectorizer()
	assert.Equal(t,
		[]string{"python", "docker", "python docker"},
		v.Terms("python and the docker"))
}

func TestSimilarity(t *testing.T) {
	t.Run("identical", func(t *testing.T) {
		text := "senior python engineer building distributed systems on kubernetes"
		got, err := Similarity(text, text)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, got, 1e-9)
	})

	t.Run("disjoint", func(t *testing.T) {
		got, err := Similarity("python django postgres", "swift xcode ios")
		require.NoError(t, err)
		assert.Equal(t, 0.0, got)
	})

	t.Run("one shared term", func(t *testing.T) {
		// python has idf 1, the other terms ln(3/2)+1
		got, err := Similarity("python docker", "python kubernetes")
		require.NoError(t, err)
		assert.InDelta(t, 0.20199, got, 1e-4)
	})

	t.Run("only stop words", func(t *testing.T) {
		got, err := Similarity("the and of", "a an it")
		assert.ErrorIs(t, err, ErrEmptyVocabulary)
		assert.Equal(t, 0.0, got)
	})

	t.Run("one side empty", func(t *testing.T) {
		got, err := Similarity("python developer", "")
		require.NoError(t, err)
		assert.Equal(t, 0.0, got)
	})
}

func TestFitTransformLimitsFeatures(t *testing.T) {
	v := NewVectorizer()
	v.MaxFeatures = 2
	v.MaxN = 1

	m, err := v.FitTransform([]string{"alpha alpha beta", "alpha gamma gamma delta"})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "gamma"}, m.Vocabulary)
	require.Len(t, m.Vectors, 2)
	for _, vec := range m.Vectors {
		assert.Len(t, vec, 2)
	}
}

func TestFitTransformNormalizesVectors(t *testing.T) {
	m, err := NewVectorizer().FitTransform([]string{"golang services", "golang tooling golang"})
	require.NoError(t, err)
	for _, vec := range m.Vectors {
		var sum float64
		for _, x := range vec {
			sum += x * x
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func BenchmarkSimilarity(b *testing.B) {
	resume := strings.Repeat("designed distributed billing services in go and postgres on kubernetes ", 50)
	job := strings.Repeat("we need a backend engineer with kubernetes postgres and observability experience ", 30)
	for b.Loop() {
		_, _ = Similarity(resume, job)
	}
}
