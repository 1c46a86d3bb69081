package conda

import (
	"fmt"
	"net/url"
	"strings"

	"go.trai.ch/zerr"
)

// ParsePlatform checks that s is one of the known conda
// platforms.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(s)
	if _, ok := knownPlatforms[p]; !ok {
		return "", zerr.With(fmt.Errorf("%w: %q", ErrUnknownPlatform, s), "platform", s)
	}
	return p, nil
}

// ParseLocation extracts the platform, name, version and filename
// from a conda package URL or path.
//
// https://conda.anaconda.org/conda-forge/osx-arm64/ca-certificates-2025.1.31-hf0a4a13_0.conda
func ParseLocation(location string) (Location, error) {
	segments := strings.Split(strings.TrimSuffix(locationPath(location), "/"), "/")
	filename := segments[len(segments)-1]

	var subdir string
	if len(segments) > 1 {
		subdir = segments[len(segments)-2]
	}
	platform, err := ParsePlatform(subdir)
	if err != nil {
		return Location{}, zerr.With(err, "location", location)
	}

	name, version, build := SplitFilename(filename)
	return Location{
		Platform: platform,
		Name:     name,
		Version:  version,
		Build:    build,
		Filename: filename,
	}, nil
}

// SplitFilename splits a package archive name into its
// name, version and build string. Names may contain dashes so
// the split happens from the right.
func SplitFilename(filename string) (name, version, build string) {
	stem := TrimArchiveExt(filename)

	i := strings.LastIndex(stem, "-")
	if i < 0 {
		return stem, "", ""
	}
	build = stem[i+1:]
	stem = stem[:i]

	i = strings.LastIndex(stem, "-")
	if i < 0 {
		return stem, "", build
	}
	return stem[:i], stem[i+1:], build
}

// TrimArchiveExt removes a known package archive suffix.
func TrimArchiveExt(filename string) string {
	for _, ext := range []string{ExtConda, ExtTarBz2} {
		if strings.HasSuffix(filename, ext) {
			return strings.TrimSuffix(filename, ext)
		}
	}
	return filename
}

// locationPath drops the scheme, host, query and fragment
// of a location if it parses as a URL.
func locationPath(location string) string {
	location = strings.ReplaceAll(location, "\\", "/")
	uri, err := url.Parse(location)
	if err != nil || uri.Path == "" {
		return location
	}
	return uri.Path
}
