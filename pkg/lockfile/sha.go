package lockfile

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	v1 "github.com/basnijholt/pixi-to-conda-lock/pkg/api/v1"
	"github.com/gowebpki/jcs"
)

type hashInput struct {
	Channels []v1.Channel `json:"channels"`
	Platform string       `json:"platform"`
}

// ContentHash fingerprints the channels of an environment for
// each platform. The digest is a SHA256 over the RFC 8785 canonical
// JSON form so that it is stable across runs.
func ContentHash(channels []v1.Channel, platforms []string) (map[string]string, error) {
	// nil and empty lists must hash the same
	normalised := make([]v1.Channel, len(channels))
	for i, c := range channels {
		normalised[i] = v1.Channel{URL: c.URL, UsedEnvVars: c.UsedEnvVars}
		if normalised[i].UsedEnvVars == nil {
			normalised[i].UsedEnvVars = []string{}
		}
	}

	out := make(map[string]string, len(platforms))
	for _, p := range platforms {
		data, err := json.Marshal(hashInput{
			Channels: normalised,
			Platform: p,
		})
		if err != nil {
			return nil, fmt.Errorf("marshalling hash input: %w", err)
		}
		canonical, err := jcs.Transform(data)
		if err != nil {
			return nil, fmt.Errorf("canonicalising hash input: %w", err)
		}
		h := sha256.Sum256(canonical)
		out[p] = hex.EncodeToString(h[:])
	}
	return out, nil
}
