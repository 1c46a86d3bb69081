package conda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	var cases = []struct {
		in  string
		out Location
	}{
		{
			"https://conda.anaconda.org/conda-forge/osx-arm64/ca-certificates-2025.1.31-hf0a4a13_0.conda",
			Location{
				Platform: PlatformOsxArm64,
				Name:     "ca-certificates",
				Version:  "2025.1.31",
				Build:    "hf0a4a13_0",
				Filename: "ca-certificates-2025.1.31-hf0a4a13_0.conda",
			},
		},
		{
			"https://conda.anaconda.org/conda-forge/osx-64/bzip2-1.0.8-hfdf4475_7.conda",
			Location{
				Platform: PlatformOsx64,
				Name:     "bzip2",
				Version:  "1.0.8",
				Build:    "hfdf4475_7",
				Filename: "bzip2-1.0.8-hfdf4475_7.conda",
			},
		},
		{
			"https://conda.anaconda.org/conda-forge/noarch/python_abi-3.12-5_cp312.tar.bz2",
			Location{
				Platform: PlatformNoArch,
				Name:     "python_abi",
				Version:  "3.12",
				Build:    "5_cp312",
				Filename: "python_abi-3.12-5_cp312.tar.bz2",
			},
		},
		{
			"https://conda.anaconda.org/conda-forge/linux-64/libgcc-ng-14.2.0-h69a702a_2.conda?foo=bar",
			Location{
				Platform: PlatformLinux64,
				Name:     "libgcc-ng",
				Version:  "14.2.0",
				Build:    "h69a702a_2",
				Filename: "libgcc-ng-14.2.0-h69a702a_2.conda",
			},
		},
		{
			"/opt/channel/win-64/vc14_runtime-14.42.34433-he29a5d6_23.conda",
			Location{
				Platform: PlatformWin64,
				Name:     "vc14_runtime",
				Version:  "14.42.34433",
				Build:    "he29a5d6_23",
				Filename: "vc14_runtime-14.42.34433-he29a5d6_23.conda",
			},
		},
	}

	for _, tt := range cases {
		t.Run(tt.in, func(t *testing.T) {
			out, err := ParseLocation(tt.in)
			require.NoError(t, err)
			assert.EqualValues(t, tt.out, out)
		})
	}
}

func TestParseLocation_UnknownPlatform(t *testing.T) {
	var cases = []struct {
		in  string
		bad string
	}{
		{"https://conda.anaconda.org/conda-forge/linux-65/foo-1.0-0.conda", "linux-65"},
		{"https://conda.anaconda.org/conda-forge/foo-1.0-0.conda", "conda-forge"},
		{"foo-1.0-0.conda", ""},
	}

	for _, tt := range cases {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseLocation(tt.in)
			assert.ErrorIs(t, err, ErrUnknownPlatform)
			assert.ErrorContains(t, err, `"`+tt.bad+`"`)
		})
	}
}

func TestParsePlatform(t *testing.T) {
	for p := range knownPlatforms {
		t.Run(string(p), func(t *testing.T) {
			out, err := ParsePlatform(string(p))
			require.NoError(t, err)
			assert.EqualValues(t, p, out)

			// parsing the result again yields the same value
			again, err := ParsePlatform(string(out))
			require.NoError(t, err)
			assert.EqualValues(t, out, again)
		})
	}

	_, err := ParsePlatform("solaris-64")
	assert.ErrorIs(t, err, ErrUnknownPlatform)
	assert.ErrorContains(t, err, "solaris-64")
}

func TestSplitFilename(t *testing.T) {
	var cases = []struct {
		in      string
		name    string
		version string
		build   string
	}{
		{"ca-certificates-2025.1.31-hf0a4a13_0.conda", "ca-certificates", "2025.1.31", "hf0a4a13_0"},
		{"pip-25.0.1-pyh8b19718_0.conda", "pip", "25.0.1", "pyh8b19718_0"},
		{"_libgcc_mutex-0.1-conda_forge.tar.bz2", "_libgcc_mutex", "0.1", "conda_forge"},
		{"foo", "foo", "", ""},
		{"foo-bar", "foo", "", "bar"},
	}

	for _, tt := range cases {
		t.Run(tt.in, func(t *testing.T) {
			name, version, build := SplitFilename(tt.in)
			assert.EqualValues(t, tt.name, name)
			assert.EqualValues(t, tt.version, version)
			assert.EqualValues(t, tt.build, build)
		})
	}
}
