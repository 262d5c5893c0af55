package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careerpath/internal/types"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	matchInterests = nil
	exportPosition, exportSaveCopy = "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(bytes.NewBufferString(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestMatchCommand(t *testing.T) {
	out, err := execute(t, "", "match",
		"-i", "Natural language processing",
		"-i", "Deep learning and neural networks")
	require.NoError(t, err)
	assert.Contains(t, out, "1. NLP Engineer (2 interest matches)")
}

func TestMatchCommand_Errors(t *testing.T) {
	_, err := execute(t, "", "match")
	assert.Error(t, err)

	_, err = execute(t, "", "match", "-i", "Knitting")
	assert.ErrorContains(t, err, `unknown interest "Knitting"`)
}

func TestInterestsCommand(t *testing.T) {
	out, err := execute(t, "", "interests")
	require.NoError(t, err)
	assert.Contains(t, out, "Computer vision and image recognition\n")
}

func TestCareersCommand(t *testing.T) {
	out, err := execute(t, "", "careers")
	require.NoError(t, err)
	assert.Contains(t, out, "CAREER PATHS")
	assert.Contains(t, out, "ml-engineer")

	out, err = execute(t, "", "careers", "ml-engineer")
	require.NoError(t, err)
	assert.Contains(t, out, "OpenAI")
}

func TestLearnCommand(t *testing.T) {
	out, err := execute(t, "", "learn", "data-scientist")
	require.NoError(t, err)
	assert.Contains(t, out, "Overall progress: 50%")
}

func TestTipCommand(t *testing.T) {
	out, err := execute(t, "", "tip", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "action verbs")

	_, err = execute(t, "", "tip", "9")
	assert.Error(t, err)
}

func writeResume(t *testing.T, r *types.Resume) string {
	t.Helper()
	data, err := json.Marshal(r)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestFeedbackCommand(t *testing.T) {
	r := types.NewResume()
	r.PersonalInfo.Name = "Ada"
	path := writeResume(t, r)

	out, err := execute(t, "", "feedback", path)
	require.NoError(t, err)
	assert.Contains(t, out, "You have 0 skills listed.")
}

func TestExportCommand_FallbackWithoutPrinter(t *testing.T) {
	r := types.NewResume()
	r.PersonalInfo.Name = "Ada Lovelace"
	r.Skills = []string{"Python"}
	path := writeResume(t, r)

	t.Setenv("CAREERPATH_EXPORT_DISABLE_PDF", "true")
	out, err := execute(t, "", "export", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace.html")
	assert.Contains(t, out, "Printing was unavailable")

	_, err = os.Stat("Ada Lovelace.html")
	assert.NoError(t, err)
}

func TestExportCommand_NoDraft(t *testing.T) {
	_, err := execute(t, "", "export")
	assert.ErrorContains(t, err, "no saved draft")
}

func TestChatCommand(t *testing.T) {
	t.Setenv("CAREERPATH_ASSISTANT_DELAY", "0s")
	out, err := execute(t, "How do I stand out?\n\n", "chat")
	require.NoError(t, err)
	assert.Contains(t, out, "assistant> ")
	assert.Contains(t, out, "you> ")
}
