package dump

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindBaseFilesOnePerRepository(t *testing.T) {
	fs := setupDir(t,
		"beta.000000-000300.svndmp",
		"alpha.000000-000120.svndmp",
		"alpha.000000-000050.svndmp",
		"alpha.000121-000200.svndmp",
		"beta.000000-000010.svndmp.gz",
	)

	bases, err := FindBaseFiles(fs, DefaultLayout(), testDir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		testDir + "/alpha.000000-000050.svndmp",
		testDir + "/beta.000000-000010.svndmp.gz",
	}, bases)
}

func TestFindBaseFilesIgnoresOtherFiles(t *testing.T) {
	fs := setupDir(t, "README", "r.000051-000060.svndmp", "backup.log")
	require.NoError(t, fs.Mkdir(testDir+"/r.000000-000001.svndmp.d", 0700))

	bases, err := FindBaseFiles(fs, DefaultLayout(), testDir)
	require.NoError(t, err)
	assert.Empty(t, bases)
}

func TestFindBaseFilesMalformed(t *testing.T) {
	fs := setupDir(t, "r.000000-000050.svndmp", "r.0000-.svndmp")

	_, err := FindBaseFiles(fs, DefaultLayout(), testDir)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
}

func TestFindBaseFilesMissingDir(t *testing.T) {
	_, err := FindBaseFiles(afero.NewMemMapFs(), DefaultLayout(), "/nowhere")
	assert.Error(t, err)
}
