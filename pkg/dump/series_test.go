package dump

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDir = "/dumps"

func setupDir(t *testing.T, names ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(testDir, 0700))
	for _, name := range names {
		require.NoError(t, afero.WriteFile(fs, testDir+"/"+name, []byte("SVN-fs-dump-format-version: 2\n"+name), 0600))
	}
	return fs
}

func TestFindOverlappedSubset(t *testing.T) {
	overlapped, err := FindOverlapped(DefaultLayout(), []string{
		"r.000000-000050.svndmp",
		"r.000000-000120.svndmp",
		"r.000121-000200.svndmp",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"r.000000-000050.svndmp"}, overlapped)
}

func TestFindOverlappedDuplicateKept(t *testing.T) {
	overlapped, err := FindOverlapped(DefaultLayout(), []string{
		"r.000000-000100.svndmp",
		"r.000000-000100.svndmp.gz",
	})
	require.NoError(t, err)
	assert.Empty(t, overlapped)
}

func TestFindOverlappedIdenticalNames(t *testing.T) {
	overlapped, err := FindOverlapped(DefaultLayout(), []string{
		"r.000000-000100.svndmp",
		"r.000000-000100.svndmp",
	})
	require.NoError(t, err)
	assert.Empty(t, overlapped)
}

func TestFindOverlappedSameStart(t *testing.T) {
	series := []string{
		"r.000000-000300.svndmp",
		"r.000000-000010.svndmp",
		"r.000000-000200.svndmp",
		"r.000000-000100.svndmp",
	}
	overlapped, err := FindOverlapped(DefaultLayout(), series)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"r.000000-000010.svndmp",
		"r.000000-000100.svndmp",
		"r.000000-000200.svndmp",
	}, overlapped)
}

func TestFindOverlappedGroupsIndependent(t *testing.T) {
	overlapped, err := FindOverlapped(DefaultLayout(), []string{
		"r.000301-000400.svndmp",
		"r.000000-000300.svndmp",
		"r.000301-000350.svndmp",
		"r.000000-000100.svndmp",
		"r.000401-000410.svndmp",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"r.000000-000100.svndmp",
		"r.000301-000350.svndmp",
	}, overlapped)
}

func TestFindOverlappedEmpty(t *testing.T) {
	overlapped, err := FindOverlapped(DefaultLayout(), nil)
	require.NoError(t, err)
	assert.Empty(t, overlapped)
}

func TestFindOverlappedMalformed(t *testing.T) {
	_, err := FindOverlapped(DefaultLayout(), []string{"r.000000-000100.svndmp", "r.junk.svndmp"})
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "r.junk.svndmp", perr.Name)
}

func TestExpandSeriesFromName(t *testing.T) {
	fs := setupDir(t,
		"r.000000-000050.svndmp",
		"r.000000-000120.svndmp.gz",
		"r.000121-000200.svndmp",
		"r.x.000000-000010.svndmp",
		"other.000000-000010.svndmp",
		"r.notes.txt",
	)

	series, err := ExpandSeries(fs, DefaultLayout(), testDir+"/r.000121-000200.svndmp")
	require.NoError(t, err)
	assert.Equal(t, []string{
		testDir + "/r.000000-000050.svndmp",
		testDir + "/r.000000-000120.svndmp.gz",
		testDir + "/r.000121-000200.svndmp",
	}, series)
}

func TestExpandSeriesFromPattern(t *testing.T) {
	fs := setupDir(t,
		"r.000000-000050.svndmp",
		"r.000051-000060.svndmp",
		"other.000000-000010.svndmp",
	)

	series, err := ExpandSeries(fs, DefaultLayout(), testDir+"/r.*-000060.svndmp")
	require.NoError(t, err)
	assert.Equal(t, []string{
		testDir + "/r.000000-000050.svndmp",
		testDir + "/r.000051-000060.svndmp",
	}, series)
}

func TestExpandSeriesNoMatch(t *testing.T) {
	fs := setupDir(t, "r.000000-000050.svndmp")

	_, err := ExpandSeries(fs, DefaultLayout(), testDir+"/q.*")
	require.Error(t, err)
	assert.Equal(t, ErrNoMatch, errors.Cause(err))
}

func TestExpandSeriesList(t *testing.T) {
	series, err := ExpandSeries(afero.NewMemMapFs(), DefaultLayout(), "r.000051-000060.svndmp", "r.000000-000050.svndmp")
	require.NoError(t, err)
	assert.Equal(t, []string{"r.000000-000050.svndmp", "r.000051-000060.svndmp"}, series)
}

func TestExpandSeriesMalformedMember(t *testing.T) {
	fs := setupDir(t, "r.000000-000050.svndmp", "r.broken.svndmp")

	_, err := ExpandSeries(fs, DefaultLayout(), testDir+"/r.000000-000050.svndmp")
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
}

func TestExpandSeriesSkipsNonDumpMatches(t *testing.T) {
	fs := setupDir(t, "r.000000-000050.svndmp", "r.000121-000200.svndmp~", "r.000000-000120.svndmp")

	series, err := ExpandSeries(fs, DefaultLayout(), testDir+"/r.000000-000050.svndmp")
	require.NoError(t, err)
	assert.Equal(t, []string{
		testDir + "/r.000000-000050.svndmp",
		testDir + "/r.000000-000120.svndmp",
	}, series)
}

func TestExpandSeriesSkipsDirectories(t *testing.T) {
	fs := setupDir(t, "r.000000-000050.svndmp", "r.000000-000120.svndmp")
	require.NoError(t, fs.Mkdir(testDir+"/r.000000-000010.svndmp.d", 0700))

	series, err := ExpandSeries(fs, DefaultLayout(), testDir+"/r.000000-000050.svndmp")
	require.NoError(t, err)
	assert.Equal(t, []string{
		testDir + "/r.000000-000050.svndmp",
		testDir + "/r.000000-000120.svndmp",
	}, series)
}

func TestExpandSeriesLiteralMetacharacters(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := "/backups/svn[1]"
	require.NoError(t, fs.MkdirAll(dir, 0700))
	for _, name := range []string{"a[b].000000-000050.svndmp", "a[b].000051-000060.svndmp", "ab.000000-000010.svndmp"} {
		require.NoError(t, afero.WriteFile(fs, dir+"/"+name, []byte(name), 0600))
	}

	series, err := ExpandSeries(fs, DefaultLayout(), dir+"/a[b].000051-000060.svndmp")
	require.NoError(t, err)
	assert.Equal(t, []string{
		dir + "/a[b].000000-000050.svndmp",
		dir + "/a[b].000051-000060.svndmp",
	}, series)

	series, err = ExpandSeries(fs, DefaultLayout(), dir+"/ab.*")
	require.NoError(t, err)
	assert.Equal(t, []string{dir + "/ab.000000-000010.svndmp"}, series)
}
