package aivoice_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmett/aivoice/internal/aivoice"
	"github.com/emmett/aivoice/internal/aivoice/mock"
)

func newControl(t *testing.T) (*aivoice.Control, *mock.Dispatcher) {
	t.Helper()
	d := mock.NewDispatcher()
	ctrl, err := aivoice.New(
		aivoice.WithEditorDir(`C:\AIVoiceEditor`),
		aivoice.WithLoader(d.Loader()),
		aivoice.WithFileCheck(mock.AnyFile),
	)
	require.NoError(t, err)
	d.Reset()
	return ctrl, d
}

func TestNew_LibraryMissingDefaultPath(t *testing.T) {
	t.Setenv("ProgramW6432", `C:\Program Files`)

	var checked string
	d := mock.NewDispatcher()
	_, err := aivoice.New(
		aivoice.WithLoader(d.Loader()),
		aivoice.WithFileCheck(func(p string) bool { checked = p; return false }),
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, aivoice.ErrLibraryNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, `C:\Program Files\AI\AIVoice\AIVoiceEditor\AI.Talk.Editor.Api.dll`, checked)
	assert.Empty(t, d.LoadedRefs, "loader must not run when the library is missing")

	var nf *aivoice.LibraryNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, checked, nf.Path)
}

func TestNew_LibraryMissingExplicitPath(t *testing.T) {
	dir := t.TempDir()
	d := mock.NewDispatcher()

	_, err := aivoice.New(aivoice.WithEditorDir(dir), aivoice.WithLoader(d.Loader()))

	assert.ErrorIs(t, err, aivoice.ErrLibraryNotFound)
	assert.Empty(t, d.LoadedRefs)
}

func TestNew_ExistingLibraryOnDisk(t *testing.T) {
	// The separator is always a backslash, so on other platforms the
	// library path is a single file name inside the parent directory.
	parent := t.TempDir()
	dir := filepath.Join(parent, "editor")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(dir+`\`+aivoice.LibraryFile, nil, 0o644))

	d := mock.NewDispatcher()
	ctrl, err := aivoice.New(aivoice.WithEditorDir(dir), aivoice.WithLoader(d.Loader()))

	require.NoError(t, err)
	assert.Equal(t, dir+`\`, ctrl.EditorDir())
	assert.Equal(t, []string{dir + `\AI.Talk.Editor.Api`}, d.LoadedRefs)
}

func TestNew_NormalizesTrailingSeparator(t *testing.T) {
	tests := []struct {
		name string
		dir  string
	}{
		{name: "no trailing separator", dir: `D:\MyApps\AIVoice\AIVoiceEditor`},
		{name: "trailing separator", dir: `D:\MyApps\AIVoice\AIVoiceEditor\`},
		{name: "repeated separators", dir: `D:\MyApps\AIVoice\AIVoiceEditor\\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var checked []string
			d := mock.NewDispatcher()

			ctrl, err := aivoice.New(
				aivoice.WithEditorDir(tt.dir),
				aivoice.WithLoader(d.Loader()),
				aivoice.WithFileCheck(func(p string) bool { checked = append(checked, p); return true }),
			)

			require.NoError(t, err)
			assert.Equal(t, []string{`D:\MyApps\AIVoice\AIVoiceEditor\AI.Talk.Editor.Api.dll`}, checked)
			assert.Equal(t, []string{`D:\MyApps\AIVoice\AIVoiceEditor\AI.Talk.Editor.Api`}, d.LoadedRefs)
			assert.Equal(t, `D:\MyApps\AIVoice\AIVoiceEditor\`, ctrl.EditorDir())
		})
	}
}

func TestNew_LoaderErrorPropagates(t *testing.T) {
	loadErr := errors.New("class not registered")

	_, err := aivoice.New(
		aivoice.WithEditorDir(`C:\x`),
		aivoice.WithFileCheck(mock.AnyFile),
		aivoice.WithLoader(aivoice.LoaderFunc(func(string) (aivoice.Dispatcher, error) { return nil, loadErr })),
	)

	assert.ErrorIs(t, err, loadErr)
}

func TestResolveEditorDir_Default(t *testing.T) {
	t.Setenv("ProgramW6432", `C:\Program Files`)
	assert.Equal(t, `C:\Program Files\AI\AIVoice\AIVoiceEditor\`, aivoice.ResolveEditorDir(""))
}

func TestControl_Close(t *testing.T) {
	ctrl, d := newControl(t)

	require.NoError(t, ctrl.Close())
	require.NoError(t, ctrl.Close())
	assert.True(t, d.Closed)

	_, err := ctrl.Text()
	assert.ErrorIs(t, err, aivoice.ErrClosed)
	assert.ErrorIs(t, ctrl.Play(), aivoice.ErrClosed)
	assert.Empty(t, d.Accesses)
}
