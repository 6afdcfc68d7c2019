package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(file, []byte("hello"), 0600))

	assert.NoError(t, ValidateInputFile(file))
	assert.ErrorContains(t, ValidateInputFile(""), "cannot be empty")
	assert.ErrorContains(t, ValidateInputFile(filepath.Join(dir, "missing.txt")), "does not exist")
	assert.ErrorContains(t, ValidateInputFile(dir), "is a directory")
}

func TestValidateOutputFileCreatesDirectory(t *testing.T) {
	out := filepath.Join(t.TempDir(), "reports", "nested", "r.pdf")
	require.NoError(t, ValidateOutputFile(out))

	info, err := os.Stat(filepath.Dir(out))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.NoError(t, ValidateOutputFile(""))
}

func TestFormatFileSize(t *testing.T) {
	tests := map[int64]string{
		512:      "512 B",
		1024:     "1.0 KB",
		1536:     "1.5 KB",
		16 << 20: "16.0 MB",
	}
	for size, want := range tests {
		assert.Equal(t, want, FormatFileSize(size))
	}
}

func TestOutputFormatFromFile(t *testing.T) {
	assert.Equal(t, "pdf", OutputFormatFromFile("out/Report.PDF"))
	assert.Equal(t, "markdown", OutputFormatFromFile("r.md"))
	assert.Equal(t, "json", OutputFormatFromFile("r.json"))
	assert.Equal(t, "text", OutputFormatFromFile("r.txt"))
	assert.Equal(t, "", OutputFormatFromFile("r.html"))
	assert.True(t, HasExtension("CV.Docx", []string{".docx"}))
	assert.False(t, HasExtension("cv", []string{".docx"}))
}
