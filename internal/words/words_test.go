package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeList(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad_EmbeddedDefaults(t *testing.T) {
	d, err := Load("", "")
	require.NoError(t, err)

	answers, accepted := d.Counts()
	assert.Greater(t, answers, 100)
	assert.Greater(t, accepted, answers)

	assert.True(t, d.IsAnswer("crane"))
	assert.True(t, d.IsAccepted("CRANE"), "answers are accepted, case-insensitively")
	assert.True(t, d.IsAccepted("algae"), "extras are accepted")
	assert.False(t, d.IsAnswer("algae"), "extras are not answers")
	assert.False(t, d.IsAccepted("zzzzz"))
}

func TestLoad_BothFiles(t *testing.T) {
	ans := writeList(t, "answers.txt", "Crane\nslate\n\n# comment\ntoolong\nab1de\n")
	ext := writeList(t, "extras.txt", "algae\nEERIE\n")

	d, err := Load(ans, ext)
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate"}, d.Answers())
	assert.True(t, d.IsAccepted("eerie"))
	assert.False(t, d.IsAnswer("eerie"))

	answers, accepted := d.Counts()
	assert.Equal(t, 2, answers)
	assert.Equal(t, 4, accepted)
}

func TestLoad_OnlyAllowedFileServesBoth(t *testing.T) {
	ext := writeList(t, "allowed.txt", "crane\nslate\n")
	d, err := Load("", ext)
	require.NoError(t, err)
	assert.True(t, d.IsAnswer("slate"))
	assert.True(t, d.IsAccepted("crane"))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"), filepath.Join(t.TempDir(), "missing2.txt"))
	assert.Error(t, err)

	empty := writeList(t, "empty.txt", "# nothing here\n")
	_, err = Load(empty, empty)
	assert.ErrorIs(t, err, ErrNoAnswers)
}

func TestNew_DeduplicatesAnswers(t *testing.T) {
	d, err := New([]string{"crane", "CRANE", " crane "}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"crane"}, d.Answers())
}

func TestPickSecret_ComesFromAnswers(t *testing.T) {
	d, err := New([]string{"crane", "slate", "abide"}, []string{"algae"})
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		assert.True(t, d.IsAnswer(d.PickSecret()))
	}
}

func TestAnswer_Wraps(t *testing.T) {
	d, err := New([]string{"crane", "slate", "abide"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "crane", d.Answer(0))
	assert.Equal(t, "abide", d.Answer(2))
	assert.Equal(t, "crane", d.Answer(3))
	assert.Equal(t, "abide", d.Answer(-1))
}
